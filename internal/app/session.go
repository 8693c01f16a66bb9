package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// LayoutBackend loads and saves layouts for an editing session. It is
// implemented by LayoutService in-process and by the layout API client
// remotely.
type LayoutBackend interface {
	Load(ctx context.Context, key layout.Key) (*layout.Document, error)
	Save(ctx context.Context, key layout.Key, blocks []layout.Block) error
}

// SaveResult reports the outcome of one save.
type SaveResult struct {
	// Revision is the edit revision that was saved.
	Revision uint64
	Err      error
}

// Session is one editor bound to exactly one layout key for its lifetime.
// Edits are never blocked by a save in flight and never rolled back when a
// save fails; the session stays dirty instead.
type Session struct {
	mu sync.Mutex

	key     layout.Key
	doc     *layout.Document
	ctrl    *layout.Controller
	palette []layout.BlockTemplate
	backend LayoutBackend
	logger  *slog.Logger

	revision uint64
	saved    uint64
	dirty    bool
	lastErr  error

	inflight sync.WaitGroup
}

// OpenSession loads the layout for key and binds a session to it.
func OpenSession(
	ctx context.Context,
	backend LayoutBackend,
	key layout.Key,
	palette []layout.BlockTemplate,
	logger *slog.Logger,
) (*Session, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	doc, err := backend.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open layout %s: %w", key, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		key:     key,
		doc:     doc,
		ctrl:    layout.NewController(doc, palette),
		palette: palette,
		backend: backend,
		logger:  logger.With(slog.String("component", "app.Session"), slog.String("layout", key.String())),
	}, nil
}

// Key returns the layout key the session was opened with.
func (s *Session) Key() layout.Key { return s.key }

// Blocks returns a copy of the current blocks.
func (s *Session) Blocks() []layout.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Blocks()
}

// Len returns the number of blocks.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Len()
}

// Revision counts edits since the session opened.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revision
}

// Dirty reports whether there are edits that no successful save covers.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dirty
}

// LastSaveError returns the error of the most recent failed save, cleared
// by the next successful one.
func (s *Session) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// Palette returns the templates available to Insert.
func (s *Session) Palette() []layout.BlockTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]layout.BlockTemplate(nil), s.palette...)
}

// SetPalette replaces the palette.
func (s *Session) SetPalette(palette []layout.BlockTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.palette = palette
	s.ctrl.SetPalette(palette)
}

// Insert places a new block from the palette template templateID.
func (s *Session) Insert(templateID string, at *int) (layout.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, ok := layout.FindTemplate(s.palette, templateID)
	if !ok {
		return layout.Block{}, domain.NewNotFoundError("template", templateID)
	}

	b := s.doc.InsertFromTemplate(tpl, at)
	s.touch()

	return b, nil
}

// Reorder moves a block. Unknown ids are ignored.
func (s *Session) Reorder(id string, target int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.touchIf(s.doc.Reorder(id, target))
}

// Remove deletes a block. Unknown ids are ignored.
func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.touchIf(s.doc.Remove(id))
}

// UpdateProperty sets one property. Image values other than data URIs are
// rejected with layout.ErrInvalidImage.
func (s *Session) UpdateProperty(id, key string, value any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.doc.Get(id); ok && b.Kind == layout.KindImage && key == layout.PropValue {
		if err := layout.CheckImageValue(value); err != nil {
			return false, err
		}
	}

	return s.touchIf(s.doc.UpdateProperty(id, key, value)), nil
}

// Select selects a block. Selection is not an edit.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Select(id)
}

// ClearSelection clears the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.ClearSelection()
}

// Selected returns the selected block.
func (s *Session) Selected() (layout.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Selected()
}

// GestureState returns the controller state.
func (s *Session) GestureState() layout.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ctrl.State()
}

// PointerDown starts a gesture.
func (s *Session) PointerDown(t layout.Target) layout.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ctrl.PointerDown(t)
}

// PointerMove applies a drag delta.
func (s *Session) PointerMove(dx, dy int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.touchIf(s.ctrl.PointerMove(dx, dy))
}

// PointerUp finishes a gesture.
func (s *Session) PointerUp(drop layout.DropTarget) layout.GestureResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.ctrl.PointerUp(drop)
	s.touchIf(res.Mutated())

	return res
}

// CancelGesture aborts a gesture. A cancelled resize or pan restores the
// original values, which is itself an edit.
func (s *Session) CancelGesture() layout.GestureResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.ctrl.State()
	res := s.ctrl.Cancel()
	s.touchIf(state == layout.StateResizingImage || state == layout.StatePanningImage)

	return res
}

// SaveAsync snapshots the document and saves it in the background. The
// returned channel yields exactly one result and is then closed. Edits may
// continue while the save runs.
func (s *Session) SaveAsync(ctx context.Context) <-chan SaveResult {
	s.mu.Lock()
	blocks := s.doc.Blocks()
	rev := s.revision
	s.mu.Unlock()

	out := make(chan SaveResult, 1)

	s.inflight.Go(func() {
		err := s.backend.Save(ctx, s.key, blocks)
		s.finishSave(ctx, rev, len(blocks), err)

		out <- SaveResult{Revision: rev, Err: err}
		close(out)
	})

	return out
}

// Save saves and waits for the result.
func (s *Session) Save(ctx context.Context) error {
	return (<-s.SaveAsync(ctx)).Err
}

// Wait blocks until every save started so far has finished.
func (s *Session) Wait() {
	s.inflight.Wait()
}

func (s *Session) finishSave(ctx context.Context, rev uint64, blocks int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		s.logger.WarnContext(ctx, "layout save failed; edits kept locally",
			slog.Uint64("revision", rev),
			slog.Any("error", err),
		)

		return
	}

	s.lastErr = nil
	s.saved = max(s.saved, rev)

	// An edit made while the save ran keeps the session dirty.
	if s.revision == s.saved {
		s.dirty = false
	}

	s.logger.DebugContext(ctx, "layout saved",
		slog.Uint64("revision", rev),
		slog.Int("blocks", blocks),
	)
}

func (s *Session) touch() {
	s.revision++
	s.dirty = true
}

func (s *Session) touchIf(changed bool) bool {
	if changed {
		s.touch()
	}

	return changed
}
