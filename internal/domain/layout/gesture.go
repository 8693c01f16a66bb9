package layout

// State is a gesture controller state.
type State string

// Controller states.
const (
	StateIdle                State = "idle"
	StateDraggingFromPalette State = "dragging-from-palette"
	StateReorderingCanvas    State = "reordering-canvas"
	StateResizingImage       State = "resizing-image"
	StatePanningImage        State = "panning-image"
)

// Zone is what the pointer went down on.
type Zone string

// Pointer-down zones.
const (
	ZonePalette      Zone = "palette"
	ZoneBlockHandle  Zone = "block-handle"
	ZoneBlockBody    Zone = "block-body"
	ZoneImageBody    Zone = "image-body"
	ZoneResizeHandle Zone = "resize-handle"
	ZoneBackground   Zone = "background"
)

// Target identifies the element under the pointer at pointer-down.
type Target struct {
	Zone       Zone
	TemplateID string
	BlockID    string
}

// DropKind classifies where the pointer was released.
type DropKind int

// Drop kinds.
const (
	DropOutside DropKind = iota
	DropOnBlock
	DropOnBackground
)

// DropTarget is where the pointer was released.
type DropTarget struct {
	Kind    DropKind
	BlockID string
}

// OverBlock is a drop onto an existing block.
func OverBlock(id string) DropTarget { return DropTarget{Kind: DropOnBlock, BlockID: id} }

// OverBackground is a drop onto empty canvas.
func OverBackground() DropTarget { return DropTarget{Kind: DropOnBackground} }

// Outside is a drop off any valid target.
func Outside() DropTarget { return DropTarget{Kind: DropOutside} }

// Outcome says what a finished gesture did to the document.
type Outcome string

// Gesture outcomes.
const (
	OutcomeNone      Outcome = "none"
	OutcomeInserted  Outcome = "inserted"
	OutcomeMoved     Outcome = "moved"
	OutcomeResized   Outcome = "resized"
	OutcomePanned    Outcome = "panned"
	OutcomeCancelled Outcome = "cancelled"
)

// GestureResult describes a finished gesture.
type GestureResult struct {
	Gesture State
	Outcome Outcome
	BlockID string
	Index   int
}

// Mutated reports whether the gesture changed the document.
func (r GestureResult) Mutated() bool {
	switch r.Outcome {
	case OutcomeInserted, OutcomeMoved, OutcomeResized, OutcomePanned:
		return true
	default:
		return false
	}
}

// Controller turns pointer events into document edits. Reordering a list
// item, placing a template and moving or resizing an image inside its box
// are separate gestures chosen at pointer-down.
type Controller struct {
	doc     *Document
	palette []BlockTemplate

	state    State
	template BlockTemplate
	blockID  string

	// origin values of the image being resized or panned
	originW, originH int
	originX, originY int
	moved            bool
}

// NewController binds a controller to doc with the given palette.
func NewController(doc *Document, palette []BlockTemplate) *Controller {
	return &Controller{doc: doc, palette: palette, state: StateIdle}
}

// SetPalette replaces the palette, e.g. after the quotation's columns change.
func (c *Controller) SetPalette(palette []BlockTemplate) {
	c.palette = palette
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// PointerDown starts a gesture if the target's guard holds. A second
// pointer-down during a gesture is ignored.
func (c *Controller) PointerDown(t Target) State {
	if c.state != StateIdle {
		return c.state
	}

	switch t.Zone {
	case ZonePalette:
		if tpl, ok := FindTemplate(c.palette, t.TemplateID); ok {
			c.template = tpl
			c.state = StateDraggingFromPalette
		}
	case ZoneBlockHandle, ZoneBlockBody:
		if c.doc.IndexOf(t.BlockID) >= 0 && !c.isSelectedImage(t.BlockID) {
			c.blockID = t.BlockID
			c.state = StateReorderingCanvas
		}
	case ZoneImageBody:
		if img, ok := c.selectedImage(t.BlockID); ok {
			c.blockID = t.BlockID
			c.originX, c.originY = img.ImageX, img.ImageY
			c.state = StatePanningImage
		}
	case ZoneResizeHandle:
		if img, ok := c.selectedImage(t.BlockID); ok {
			c.blockID = t.BlockID
			c.originW, c.originH = img.Width, img.Height
			c.state = StateResizingImage
		}
	}

	return c.state
}

// PointerMove applies the drag delta since pointer-down. Only image resize
// and pan mutate the document while the pointer moves.
func (c *Controller) PointerMove(dx, dy int) bool {
	switch c.state {
	case StateResizingImage:
		c.doc.UpdateProperty(c.blockID, PropWidth, c.originW+dx)
		c.doc.UpdateProperty(c.blockID, PropHeight, c.originH+dy)
	case StatePanningImage:
		c.doc.UpdateProperty(c.blockID, PropImageX, c.originX+dx)
		c.doc.UpdateProperty(c.blockID, PropImageY, c.originY+dy)
	default:
		return false
	}

	c.moved = true

	return true
}

// PointerUp finishes the gesture and returns to idle.
func (c *Controller) PointerUp(drop DropTarget) GestureResult {
	defer c.reset()

	res := GestureResult{Gesture: c.state, Outcome: OutcomeNone, BlockID: c.blockID, Index: -1}

	switch c.state {
	case StateDraggingFromPalette:
		var at *int

		switch drop.Kind {
		case DropOnBlock:
			i := c.doc.IndexOf(drop.BlockID)
			if i < 0 {
				res.Outcome = OutcomeCancelled
				return res
			}
			at = &i
		case DropOnBackground:
		default:
			res.Outcome = OutcomeCancelled
			return res
		}

		b := c.doc.InsertFromTemplate(c.template, at)
		res.Outcome = OutcomeInserted
		res.BlockID = b.InstanceID
		res.Index = c.doc.IndexOf(b.InstanceID)

	case StateReorderingCanvas:
		to := -1
		if drop.Kind == DropOnBlock {
			to = c.doc.IndexOf(drop.BlockID)
		}

		if to < 0 {
			res.Outcome = OutcomeCancelled
			return res
		}

		if c.doc.Reorder(c.blockID, to) {
			res.Outcome = OutcomeMoved
		}

		res.Index = c.doc.IndexOf(c.blockID)

	case StateResizingImage:
		if c.moved {
			res.Outcome = OutcomeResized
		}

		res.Index = c.doc.IndexOf(c.blockID)

	case StatePanningImage:
		if c.moved {
			res.Outcome = OutcomePanned
		}

		res.Index = c.doc.IndexOf(c.blockID)
	}

	return res
}

// Cancel aborts the gesture. Resize and pan restore the original values.
func (c *Controller) Cancel() GestureResult {
	defer c.reset()

	res := GestureResult{Gesture: c.state, Outcome: OutcomeCancelled, BlockID: c.blockID, Index: -1}

	switch c.state {
	case StateIdle:
		res.Outcome = OutcomeNone
	case StateResizingImage:
		c.doc.UpdateProperty(c.blockID, PropWidth, c.originW)
		c.doc.UpdateProperty(c.blockID, PropHeight, c.originH)
	case StatePanningImage:
		c.doc.UpdateProperty(c.blockID, PropImageX, c.originX)
		c.doc.UpdateProperty(c.blockID, PropImageY, c.originY)
	}

	return res
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.template = BlockTemplate{}
	c.blockID = ""
	c.originW, c.originH, c.originX, c.originY = 0, 0, 0, 0
	c.moved = false
}

func (c *Controller) isSelectedImage(id string) bool {
	_, ok := c.selectedImage(id)
	return ok
}

func (c *Controller) selectedImage(id string) (*ImageProps, bool) {
	if id == "" || c.doc.SelectedID() != id {
		return nil, false
	}

	b, ok := c.doc.Get(id)
	if !ok {
		return nil, false
	}

	return b.Image()
}
