package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// maxImageBytes bounds images embedded with "layout image".
const maxImageBytes = 5 << 20

func (c *CLI) layoutCommand() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show and edit a quotation layout or the global template",
		Long: `Every edit opens the stored layout, applies one change and saves it.
Address a quotation's layout by its id, or the shared template with --global.`,
	}

	cmd.PersistentFlags().BoolVar(&global, "global", false, "edit the global template instead of a quotation layout")

	var at int

	add := &cobra.Command{
		Use:   "add [quotation-id] <template-id>",
		Short: "Place a block from the palette",
		Args:  keyArgs(&global, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, rest, err := resolveKey(global, args)
			if err != nil {
				return err
			}

			var pos *int
			if cmd.Flags().Changed("at") {
				pos = &at
			}

			return c.edit(cmd.Context(), target, func(s *app.Session) error {
				b, err := s.Insert(rest[0], pos)
				if err != nil {
					return err
				}

				c.printSuccess("added %s %s", b.Kind, StyleNumber.Render(b.InstanceID))

				return nil
			})
		},
	}
	add.Flags().IntVar(&at, "at", 0, "insert position; appends when omitted")

	cmd.AddCommand(
		c.layoutShowCommand(&global),
		add,
		&cobra.Command{
			Use:   "move [quotation-id] <block-id> <index>",
			Short: "Move a block to a new position",
			Args:  keyArgs(&global, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				target, rest, err := resolveKey(global, args)
				if err != nil {
					return err
				}

				index, err := strconv.Atoi(rest[1])
				if err != nil {
					return domain.NewValidationError("index", fmt.Sprintf("%q is not a number", rest[1]))
				}

				return c.edit(cmd.Context(), target, func(s *app.Session) error {
					if s.Reorder(rest[0], index) {
						c.printSuccess("moved %s to %d", rest[0], index)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove [quotation-id] <block-id>",
			Short: "Remove a block",
			Args:  keyArgs(&global, 1),
			RunE: func(cmd *cobra.Command, args []string) error {
				target, rest, err := resolveKey(global, args)
				if err != nil {
					return err
				}

				return c.edit(cmd.Context(), target, func(s *app.Session) error {
					if s.Remove(rest[0]) {
						c.printSuccess("removed %s", rest[0])
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set [quotation-id] <block-id> <property> <value>",
			Short: "Set one block property, e.g. fontSize 18",
			Args:  keyArgs(&global, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				target, rest, err := resolveKey(global, args)
				if err != nil {
					return err
				}

				return c.edit(cmd.Context(), target, func(s *app.Session) error {
					changed, err := s.UpdateProperty(rest[0], rest[1], rest[2])
					if err != nil {
						return err
					}

					if changed {
						c.printSuccess("%s.%s updated", rest[0], rest[1])
					}

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "image [quotation-id] <block-id> <file>",
			Short: "Embed an image file into an image block",
			Args:  keyArgs(&global, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				target, rest, err := resolveKey(global, args)
				if err != nil {
					return err
				}

				uri, err := imageDataURI(rest[1])
				if err != nil {
					return err
				}

				return c.edit(cmd.Context(), target, func(s *app.Session) error {
					changed, err := s.UpdateProperty(rest[0], layout.PropValue, uri)
					if err != nil {
						return err
					}

					if changed {
						c.printSuccess("image set on %s", rest[0])
					}

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear [quotation-id]",
			Short: "Delete the stored layout",
			Args:  keyArgs(&global, 0),
			RunE: func(cmd *cobra.Command, args []string) error {
				target, _, err := resolveKey(global, args)
				if err != nil {
					return err
				}

				if err := c.Layouts.Delete(cmd.Context(), target.key); err != nil {
					return err
				}

				c.printSuccess("deleted layout %s", target.key)

				return nil
			},
		},
	)

	return cmd
}

func (c *CLI) layoutShowCommand(global *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show [quotation-id]",
		Short: "List the blocks of a layout in order",
		Args:  keyArgs(global, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := resolveKey(*global, args)
			if err != nil {
				return err
			}

			doc, err := c.Layouts.Load(cmd.Context(), target.key)
			if err != nil {
				return err
			}

			c.printTitle("Layout " + target.key.String())

			if doc.Len() == 0 {
				c.printInfo("no blocks")
				return nil
			}

			blocks := doc.Blocks()
			rows := make([][]string, len(blocks))
			for i, b := range blocks {
				rows[i] = []string{strconv.Itoa(i), b.InstanceID, string(b.Kind), b.DisplayLabel(), summarize(b)}
			}

			c.printTable([]string{"#", "BLOCK", "TYPE", "LABEL", "VALUE"}, rows)

			return nil
		},
	}
}

// edit opens a session on target, applies fn and saves when fn changed
// anything. A failed save leaves nothing behind; the edit is reported lost.
func (c *CLI) edit(ctx context.Context, target layoutTarget, fn func(*app.Session) error) error {
	palette, err := c.Quotations.Templates(ctx, target.quotationID)
	if err != nil {
		return err
	}

	s, err := app.OpenSession(ctx, c.Layouts, target.key, palette, c.slogger())
	if err != nil {
		return err
	}

	if err := fn(s); err != nil {
		return err
	}

	if !s.Dirty() {
		c.printInfo("nothing changed")
		return nil
	}

	if err := s.Save(ctx); err != nil {
		c.printWarning("edit not saved")
		return err
	}

	c.Logger.Debug("layout saved", "key", target.key.String(), "blocks", s.Len(), "revision", s.Revision())

	return nil
}

type layoutTarget struct {
	key         layout.Key
	quotationID int64
}

// keyArgs accepts n arguments after the quotation id, or exactly n with
// --global.
func keyArgs(global *bool, n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if *global {
			return cobra.ExactArgs(n)(cmd, args)
		}

		return cobra.ExactArgs(n+1)(cmd, args)
	}
}

func resolveKey(global bool, args []string) (layoutTarget, []string, error) {
	if global {
		return layoutTarget{key: layout.GlobalKey()}, args, nil
	}

	id, err := parseID(args[0], false)
	if err != nil {
		return layoutTarget{}, nil, err
	}

	return layoutTarget{
		key:         layout.QuotationKey(strconv.FormatInt(id, 10)),
		quotationID: id,
	}, args[1:], nil
}

// imageDataURI reads an image file into a base64 data URI.
func imageDataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if info.Size() > maxImageBytes {
		return "", domain.NewValidationError("file", fmt.Sprintf("image is larger than %d bytes", maxImageBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", domain.NewValidationError("file", fmt.Sprintf("%s is %s, not an image", path, mime))
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// summarize shortens a block's value for table output.
func summarize(b layout.Block) string {
	if img, ok := b.Image(); ok {
		if img.Value == "" {
			return "(no image)"
		}
		return fmt.Sprintf("image %dx%d", img.Width, img.Height)
	}

	if b.Props == nil {
		return ""
	}

	v := displayCell(b.Props.Fields()[layout.PropValue])
	if len(v) > 40 {
		v = v[:37] + "..."
	}

	return v
}
