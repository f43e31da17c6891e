package mediasync

import (
	"strings"
	"sync"
	"time"
)

const (
	// anticipation offsets the scroll reference point below the true
	// scroll top so the media switch leads the heading crossing the
	// viewport top instead of lagging it.
	anticipation = 300.0
	// swapDelay is the cross-fade delay before an active item is replaced.
	swapDelay = 150 * time.Millisecond
	// settleDelay gives layout time to settle before the initial
	// computation on mount.
	settleDelay = 100 * time.Millisecond
)

// Heading is one visible level-2 heading with its vertical position.
type Heading struct {
	Text string
	Top  float64
}

// Viewport abstracts the rendered document: the ordered visible headings
// and the current scroll position. Visibility filtering (layouts that
// render the content twice for responsive breakpoints) is the viewport's
// concern.
type Viewport interface {
	Headings() []Heading
	ScrollTop() float64
}

// Sync tracks which single media item is active for the current scroll
// position. It is a three-state machine: no active item, settled on an
// item, or transitioning between two.
type Sync struct {
	vp    Viewport
	clock Clock

	mu sync.Mutex
	// byHeading binds trimmed heading text to an item; duplicates keep the
	// first occurrence.
	byHeading     map[string]*SectionMedia
	active        *SectionMedia
	transitioning bool
}

// NewSync creates a synchronizer over the given viewport and media list.
func NewSync(vp Viewport, items []SectionMedia) *Sync {
	return newSync(vp, items, realClock{})
}

func newSync(vp Viewport, items []SectionMedia, clock Clock) *Sync {
	byHeading := make(map[string]*SectionMedia, len(items))
	for i := range items {
		key := strings.TrimSpace(items[i].Heading)
		if _, ok := byHeading[key]; !ok {
			byHeading[key] = &items[i]
		}
	}
	return &Sync{vp: vp, clock: clock, byHeading: byHeading}
}

// Mount schedules the initial computation so the correct item is shown
// without waiting for a scroll event.
func (s *Sync) Mount() {
	s.clock.AfterFunc(settleDelay, s.Refresh)
}

// Refresh recomputes the active item from the viewport's current state.
// Call it from the scroll handler and whenever the document changes.
func (s *Sync) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.candidate()
	if candidate == s.active {
		return
	}

	if s.active == nil {
		// Nothing showing yet: swap immediately.
		s.active = candidate
		return
	}

	// A pending swap is deliberately not cancelled when a newer one is
	// scheduled; the most recent timer to fire wins. See DESIGN.md.
	s.transitioning = true
	s.clock.AfterFunc(swapDelay, func() {
		s.mu.Lock()
		s.active = candidate
		s.transitioning = false
		s.mu.Unlock()
	})
}

// candidate finds the media item for the current section: the nearest
// heading at or above the reference point, walking backward toward the
// document start until a bound heading is found. Caller holds s.mu.
func (s *Sync) candidate() *SectionMedia {
	headings := s.vp.Headings()
	ref := s.vp.ScrollTop() + anticipation

	current := -1
	for i, h := range headings {
		if h.Top <= ref {
			current = i
		}
	}
	for i := current; i >= 0; i-- {
		if item, ok := s.byHeading[strings.TrimSpace(headings[i].Text)]; ok {
			return item
		}
	}
	return nil
}

// Active returns the currently displayed item, nil when none.
func (s *Sync) Active() *SectionMedia {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Transitioning reports whether a delayed swap is pending.
func (s *Sync) Transitioning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitioning
}
