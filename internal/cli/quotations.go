package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

func (c *CLI) quotationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quotations",
		Aliases: []string{"q"},
		Short:   "List and inspect quotations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every quotation with its item count and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := c.Quotations.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(all) == 0 {
				c.printInfo("no quotations")
				return nil
			}

			rows := make([][]string, len(all))
			for i, q := range all {
				rows[i] = []string{
					strconv.FormatInt(q.ID(), 10),
					displayCell(q.Quotation["customer_name"]),
					strconv.Itoa(len(q.Items)),
					q.Total,
				}
			}

			c.printTable([]string{"ID", "CUSTOMER", "ITEMS", "TOTAL"}, rows)

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <quotation-id>",
		Short: "Show a quotation's fields and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], false)
			if err != nil {
				return err
			}

			q, err := c.Quotations.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			c.printTitle(fmt.Sprintf("Quotation %d", q.ID()))
			for _, k := range slices.Sorted(maps.Keys(q.Quotation)) {
				c.printKeyValue(layout.FormatLabel(k), displayCell(q.Quotation[k]))
			}

			c.println("")
			c.printItems(q.Items)
			c.printKeyValue("Total", q.Total)

			return nil
		},
	})

	return cmd
}

func (c *CLI) printItems(items []domain.Row) {
	if len(items) == 0 {
		c.printInfo("no items")
		return
	}

	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{
			strconv.FormatInt(it.ID(), 10),
			displayCell(it["sample_activity"]),
			displayCell(it["qty"]),
			displayCell(it["unit_rate"]),
			displayCell(it["total_cost"]),
		}
	}

	c.printTable([]string{"ID", "DESCRIPTION", "QTY", "UNIT RATE", "TOTAL"}, rows)
}

func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [quotation-id]",
		Short: "List the blocks that can be placed on a layout",
		Long:  "List the palette for a quotation: one field block per quotation column followed by the special blocks. Without an id only the special blocks are listed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if len(args) == 1 {
				var err error
				if id, err = parseID(args[0], true); err != nil {
					return err
				}
			}

			templates, err := c.Quotations.Templates(cmd.Context(), id)
			if err != nil {
				return err
			}

			rows := make([][]string, len(templates))
			for i, t := range templates {
				rows[i] = []string{t.TemplateID, string(t.Kind), string(t.Category), t.Label, t.InitialValue}
			}

			c.printTable([]string{"TEMPLATE", "TYPE", "CATEGORY", "LABEL", "VALUE"}, rows)

			return nil
		},
	}
}

func (c *CLI) previewCommand() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "preview <quotation-id>",
		Short: "Render a layout against a quotation's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], false)
			if err != nil {
				return err
			}

			sc, err := layout.ParseScope(scope)
			if err != nil {
				return err
			}

			blocks, err := c.Quotations.Preview(cmd.Context(), id, sc)
			if err != nil {
				return err
			}

			if len(blocks) == 0 {
				c.printWarning("layout is empty")
				return nil
			}

			for _, pb := range blocks {
				c.printPreviewBlock(pb)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", string(layout.ScopeQuotation), "layout to render: quotation or global")

	return cmd
}

func (c *CLI) printPreviewBlock(pb layout.PreviewBlock) {
	kind := layout.Kind(displayCell(pb.Block[layout.KeyType]))

	switch kind {
	case layout.KindDivider:
		c.println(StyleDim.Render("────────────────────────────────"))
	case layout.KindTable:
		rows := make([][]string, len(pb.Rows))
		for i, r := range pb.Rows {
			rows[i] = []string{strconv.Itoa(r.SlNo), r.Description, r.Qty, r.UnitRate, r.TotalCost}
		}
		c.printTable([]string{"SL", "DESCRIPTION", "QTY", "UNIT RATE", "TOTAL"}, rows)
	case layout.KindTotal:
		c.printKeyValue(displayCell(pb.Block[layout.PropLabel]), pb.Total)
	case layout.KindHeader:
		c.printTitle(displayCell(pb.Block[layout.PropValue]))
	case layout.KindField:
		c.printKeyValue(displayCell(pb.Block[layout.PropLabel]), displayCell(pb.Block[layout.PropValue]))
	case layout.KindImage:
		c.println(StyleDim.Render(fmt.Sprintf("[image %vx%v]", pb.Block[layout.PropWidth], pb.Block[layout.PropHeight])))
	default:
		c.println(displayCell(pb.Block[layout.PropValue]))
	}
}

func parseID(s string, allowZero bool) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 || (id == 0 && !allowZero) {
		return 0, domain.NewValidationError("quotationId", fmt.Sprintf("%q is not a valid quotation id", s))
	}

	return id, nil
}

func displayCell(v any) string {
	if v == nil {
		return "-"
	}

	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return fmt.Sprint(v)
}
