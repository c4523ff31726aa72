// Package uistate holds the transient interaction state of a planner view:
// the active drag, selection, open modal and sidebar. Nothing here is
// persisted.
package uistate

import (
	"maps"
	"sync"

	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/week"
)

// ModalKind names a dialog.
type ModalKind string

const (
	ModalNone     ModalKind = ""
	ModalNewRole  ModalKind = "new-role"
	ModalEditRole ModalKind = "edit-role"
	ModalNewGoal  ModalKind = "new-goal"
	ModalEditGoal ModalKind = "edit-goal"
	ModalNewWeek  ModalKind = "new-week"
)

// State is safe for concurrent use.
type State struct {
	mu sync.RWMutex

	payload dnd.Payload
	target  dnd.Target

	selected string

	modal        ModalKind
	modalContext map[string]string

	sidebarCollapsed bool
	navigating       bool
}

var _ dnd.DragState = (*State)(nil)

// New returns an idle state.
func New() *State {
	return &State{}
}

// DragStart begins a drag of p, clearing any stale target.
func (s *State) DragStart(p dnd.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = p
	s.target = nil
}

// SetDropTarget records the zone under the pointer.
func (s *State) SetDropTarget(t dnd.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = t
}

// DragEnd clears the drag.
func (s *State) DragEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	s.target = nil
}

func (s *State) Dragging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload != nil
}

func (s *State) Payload() dnd.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload
}

func (s *State) DropTarget() dnd.Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

// IsDraggingKind reports whether a payload of kind k is being dragged.
func (s *State) IsDraggingKind(k dnd.Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload != nil && s.payload.Kind() == k
}

// IsDropTargetActive reports whether the hovered target is zone z on day.
// For the time grid a non-nil slot must match as well.
func (s *State) IsDropTargetActive(z dnd.Zone, day week.Day, slot *week.Slot) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.target == nil || s.target.Zone() != z || s.target.DayIndex() != day {
		return false
	}
	if slot == nil {
		return true
	}
	grid, ok := s.target.(dnd.TimeGridZone)
	return ok && grid.Slot == *slot
}

// Select marks id as the selected entity, replacing any previous selection.
func (s *State) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

func (s *State) ClearSelection() {
	s.Select("")
}

func (s *State) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *State) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return id != "" && s.selected == id
}

// OpenModal shows kind with a copy of ctx, e.g. {"roleId": "..."}.
func (s *State) OpenModal(kind ModalKind, ctx map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = kind
	s.modalContext = maps.Clone(ctx)
}

func (s *State) CloseModal() {
	s.OpenModal(ModalNone, nil)
}

// Modal returns the open modal and a copy of its context.
func (s *State) Modal() (ModalKind, map[string]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modal, maps.Clone(s.modalContext)
}

func (s *State) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarCollapsed = !s.sidebarCollapsed
}

func (s *State) SetSidebarCollapsed(collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarCollapsed = collapsed
}

func (s *State) SidebarCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarCollapsed
}

// SetNavigating flags a week switch in progress.
func (s *State) SetNavigating(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigating = v
}

func (s *State) Navigating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.navigating
}
