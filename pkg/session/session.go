// Package session holds the client-side application state: one surface
// per top-level view, the active tab, and the parking counters. A
// Session is built once at startup and owned by the UI loop; every
// method assumes that single-goroutine ownership, so there is no locking
// here.
package session

import (
	"fmt"
	"time"
)

// Phase is the visual state of one surface. Exactly one phase is active
// at a time and entering a phase wipes the traces of the previous one.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// View identifies one top-level tab of the dashboard.
type View int

const (
	ViewCurrent View = iota
	ViewCoords
	ViewForecast
	ViewDetect
)

const viewCount = 4

func (v View) String() string {
	switch v {
	case ViewCurrent:
		return "current"
	case ViewCoords:
		return "coords"
	case ViewForecast:
		return "forecast"
	case ViewDetect:
		return "detect"
	}
	return "unknown"
}

// Next returns the tab to the right, wrapping around.
func (v View) Next() View { return (v + 1) % viewCount }

// Prev returns the tab to the left, wrapping around.
func (v View) Prev() View { return (v + viewCount - 1) % viewCount }

// Views returns every view in display order.
func Views() []View {
	return []View{ViewCurrent, ViewCoords, ViewForecast, ViewDetect}
}

// Surface is the state holder behind one top-level view: the visual
// phase, the payload or message to show, and the bookkeeping that keeps
// at most one request in flight.
//
// Every request is stamped with a generation token by Begin. A reply
// settles the surface only when it carries the latest token; an older
// reply still releases the in-flight slot but leaves the visuals alone,
// which is what drops responses that were superseded by Clear.
type Surface struct {
	phase    Phase
	payload  any
	message  string
	gen      uint64
	inflight bool
}

// Phase returns the current visual phase.
func (s *Surface) Phase() Phase { return s.phase }

// Payload returns the result payload; meaningful in PhaseResult.
func (s *Surface) Payload() any { return s.payload }

// Message returns the error text; meaningful in PhaseError.
func (s *Surface) Message() string { return s.message }

// Busy reports whether a request is unsettled. Submission stays blocked
// while true, even after Clear returned the visuals to idle.
func (s *Surface) Busy() bool { return s.inflight }

// Begin moves the surface to Loading and stamps a generation token for
// the outgoing request. It reports false, leaving everything untouched,
// while an earlier request is still unsettled.
func (s *Surface) Begin() (uint64, bool) {
	if s.inflight {
		return 0, false
	}
	s.inflight = true
	s.gen++
	s.phase = PhaseLoading
	s.payload = nil
	s.message = ""
	return s.gen, true
}

// Resolve settles the request stamped gen with its payload. It reports
// whether the payload was applied; a superseded or duplicate reply is
// dropped, though a superseded one still releases the in-flight slot.
func (s *Surface) Resolve(gen uint64, payload any) bool {
	if !s.settle(gen) {
		return false
	}
	s.phase = PhaseResult
	s.payload = payload
	s.message = ""
	return true
}

// Fail settles the request stamped gen with an error message, under the
// same staleness rules as Resolve.
func (s *Surface) Fail(gen uint64, message string) bool {
	if !s.settle(gen) {
		return false
	}
	s.phase = PhaseError
	s.payload = nil
	s.message = message
	return true
}

func (s *Surface) settle(gen uint64) bool {
	if !s.inflight {
		return false
	}
	s.inflight = false
	return gen == s.gen
}

// Reject shows a validation failure for input that never produced a
// request. It is ignored while a request is in flight, matching the
// disabled submit control.
func (s *Surface) Reject(message string) {
	if s.inflight {
		return
	}
	s.phase = PhaseError
	s.payload = nil
	s.message = message
}

// Clear returns the surface to Idle. If a request is in flight its
// eventual reply is dropped on arrival, but the surface stays busy until
// that reply settles, so submission is still blocked.
func (s *Surface) Clear() {
	s.gen++
	s.phase = PhaseIdle
	s.payload = nil
	s.message = ""
}

// dismissError is the tab-switch rule: leaving a view wipes its error
// and nothing else.
func (s *Surface) dismissError() {
	if s.phase == PhaseError {
		s.phase = PhaseIdle
		s.message = ""
	}
}

// VehicleFee is what the parking service charges per detected vehicle.
const VehicleFee = 30.00

// Session is the whole client-side application state.
type Session struct {
	active   View
	surfaces [viewCount]Surface
	vehicles int
	revenue  float64
	tokens   uint64
}

// New returns a Session with every view idle and Current active.
func New() *Session {
	return &Session{}
}

// Active returns the selected top-level view.
func (s *Session) Active() View { return s.active }

// Surface returns the state holder of the given view.
func (s *Session) Surface(v View) *Surface { return &s.surfaces[v] }

// ActiveSurface returns the state holder of the selected view.
func (s *Session) ActiveSurface() *Surface { return &s.surfaces[s.active] }

// SwitchTo activates a view. A shown error on the view being left is
// dismissed back to Idle; sibling results and in-flight requests are
// untouched.
func (s *Session) SwitchTo(v View) {
	if v == s.active {
		return
	}
	s.surfaces[s.active].dismissError()
	s.active = v
}

// RecordDetection bumps the running totals for one successful detection.
func (s *Session) RecordDetection() {
	s.vehicles++
	s.revenue += VehicleFee
}

// Vehicles returns how many plates were detected this session.
func (s *Session) Vehicles() int { return s.vehicles }

// Revenue returns the total fees collected this session.
func (s *Session) Revenue() float64 { return s.revenue }

// NextCacheToken returns a fresh cache-busting token for artifact URLs.
// The counter keeps tokens unique even within one millisecond.
func (s *Session) NextCacheToken() string {
	s.tokens++
	return fmt.Sprintf("%d.%d", time.Now().UnixMilli(), s.tokens)
}
