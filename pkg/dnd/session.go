package dnd

import "context"

// DragState holds the transient drag of a single pointer.
type DragState interface {
	DragStart(p Payload)
	SetDropTarget(t Target)
	DragEnd()
	Payload() Payload
	DropTarget() Target
}

// Session follows one drag from start to drop.
type Session struct {
	Engine *Engine
	State  DragState
}

// Start records p as the dragged payload.
func (s *Session) Start(p Payload) {
	s.State.DragStart(p)
}

// Hover records the zone under the pointer. A nil target clears it.
func (s *Session) Hover(t Target) {
	s.State.SetDropTarget(t)
}

// End clears the drag and reconciles the payload onto target. With no drag
// in progress End does nothing.
func (s *Session) End(ctx context.Context, target Target) (Outcome, error) {
	p := s.State.Payload()
	s.State.DragEnd()
	if p == nil {
		return noop(ReasonNoTarget), nil
	}
	return s.Engine.Drop(ctx, p, target)
}

// Cancel abandons the drag without touching the store.
func (s *Session) Cancel() {
	s.State.DragEnd()
}
