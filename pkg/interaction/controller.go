package interaction

import (
	"math"
	"time"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/observability"
)

// DefaultDragThreshold is the cumulative |Δx|+|Δy| a pressed pointer must
// exceed before the gesture is classified as a drag.
const DefaultDragThreshold = 3.0

// Pointer event names used in errors and hooks.
const (
	EventPointerDown   = "pointer-down"
	EventPointerMove   = "pointer-move"
	EventPointerUp     = "pointer-up"
	EventPointerCancel = "pointer-cancel"
	EventToggle        = "toggle"
)

// Config holds the construction-time settings of a Controller.
type Config struct {
	// Draggable enables drag-to-reposition. When false the controller is a
	// plain toggle and never leaves PhaseIdle.
	Draggable bool

	// DragThreshold is the movement that turns a press into a drag.
	// Negative or NaN values fall back to DefaultDragThreshold.
	DragThreshold float64

	// State selects the open-flag authority. Nil means Uncontrolled{Open: false}.
	State OpenState

	// InitialOffset is the starting displacement of the widget from its anchor.
	InitialOffset layout.Offset
}

// Option configures optional Controller behaviour.
type Option func(*Controller)

// WithOnToggle registers the callback fired with the requested open value.
func WithOnToggle(fn func(open bool)) Option {
	return func(c *Controller) { c.onToggle = fn }
}

// WithOnPositionChange registers the callback fired with the committed
// widget offset after a drag.
func WithOnPositionChange(fn func(x, y float64)) Option {
	return func(c *Controller) { c.onPosition = fn }
}

// WithClock replaces time.Now as the source of gesture timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithID names the controller in observability hooks.
func WithID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// Controller is the interaction state machine of one widget instance.
// It is not safe for concurrent use; deliver events from a single goroutine.
type Controller struct {
	id        string
	draggable bool
	threshold float64
	state     OpenState
	offset    layout.Offset // committed drag offset

	phase     Phase
	pressed   bool          // a pointer-down is awaiting its up or cancel
	origin    layout.Offset // press position
	last      layout.Offset // most recent pointer position
	startedAt time.Time     // strictly increasing across gestures
	seq       uint64        // gesture counter

	now        func() time.Time
	onToggle   func(bool)
	onPosition func(x, y float64)
}

// New creates a controller in PhaseIdle.
func New(cfg Config, opts ...Option) *Controller {
	threshold := cfg.DragThreshold
	if threshold < 0 || math.IsNaN(threshold) {
		threshold = DefaultDragThreshold
	}
	state := cfg.State
	if state == nil {
		state = Uncontrolled{}
	}
	c := &Controller{
		draggable: cfg.Draggable,
		threshold: threshold,
		state:     state,
		offset:    cfg.InitialOffset,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Events
// =============================================================================

// PointerDown starts a gesture at (x, y).
func (c *Controller) PointerDown(x, y float64) error {
	if c.pressed {
		return c.ignore(EventPointerDown)
	}
	start := c.now()
	if !start.After(c.startedAt) {
		start = c.startedAt.Add(time.Nanosecond)
	}
	c.seq++
	c.startedAt = start
	c.origin = layout.Offset{X: x, Y: y}
	c.last = c.origin
	c.pressed = true
	if c.draggable {
		c.phase = PhasePressed
	}
	return nil
}

// PointerMove tracks the pointer while a gesture is in flight.
// Non-draggable controllers accept but ignore movement.
func (c *Controller) PointerMove(x, y float64) error {
	if !c.pressed {
		return c.ignore(EventPointerMove)
	}
	if c.draggable {
		c.track(x, y)
	}
	return nil
}

// PointerUp completes the gesture. The up position counts as a final move,
// then a drag commits its offset and a press resolves to a toggle.
func (c *Controller) PointerUp(x, y float64) error {
	if !c.pressed {
		return c.ignore(EventPointerUp)
	}
	if c.draggable {
		c.track(x, y)
	}

	dragged := c.phase == PhaseDragging
	delta := c.last.Sub(c.origin)
	elapsed := c.now().Sub(c.startedAt)
	c.reset()

	if dragged {
		c.offset = c.offset.Add(delta)
		observability.Interaction().OnGestureResolved(c.id, string(OutcomePosition), elapsed)
		if c.onPosition != nil {
			c.onPosition(c.offset.X, c.offset.Y)
		}
		return nil
	}

	observability.Interaction().OnGestureResolved(c.id, string(OutcomeToggle), elapsed)
	c.RequestToggle()
	return nil
}

// PointerCancel abandons the in-flight gesture without emitting anything.
// Cancelling with no gesture in flight is a no-op.
func (c *Controller) PointerCancel() {
	if !c.pressed {
		return
	}
	elapsed := c.now().Sub(c.startedAt)
	c.reset()
	observability.Interaction().OnGestureResolved(c.id, string(OutcomeCancel), elapsed)
}

// RequestToggle asks for the open flag to flip and reports whether a toggle
// fired. It is suppressed while dragging. In controlled mode the callback
// receives the requested value but the flag changes only through SetOpen.
func (c *Controller) RequestToggle() bool {
	if c.phase == PhaseDragging {
		observability.Interaction().OnEventIgnored(c.id, EventToggle, c.phase.String())
		return false
	}
	next := !c.state.IsOpen()
	if _, ok := c.state.(Uncontrolled); ok {
		c.state = Uncontrolled{Open: next}
	}
	if c.onToggle != nil {
		c.onToggle(next)
	}
	return true
}

// SetOpen is the external authority's write path in controlled mode.
// Uncontrolled controllers reject it with errors.ErrCodeUnsupported.
func (c *Controller) SetOpen(open bool) error {
	if _, ok := c.state.(Controlled); !ok {
		return errors.New(errors.ErrCodeUnsupported, "SetOpen requires a controlled open state")
	}
	c.state = Controlled{Open: open}
	return nil
}

func (c *Controller) track(x, y float64) {
	c.last = layout.Offset{X: x, Y: y}
	if c.phase == PhasePressed && c.last.Sub(c.origin).Manhattan() > c.threshold {
		c.phase = PhaseDragging
	}
}

func (c *Controller) reset() {
	c.pressed = false
	c.phase = PhaseIdle
	c.origin = layout.Offset{}
	c.last = layout.Offset{}
}

func (c *Controller) ignore(event string) error {
	observability.Interaction().OnEventIgnored(c.id, event, c.phase.String())
	return errors.New(errors.ErrCodeOutOfOrderEvent, "%s ignored in phase %s", event, c.phase)
}

// =============================================================================
// Queries
// =============================================================================

// IsOpen reports the current value of the open flag.
func (c *Controller) IsOpen() bool { return c.state.IsOpen() }

// IsDragging reports whether a drag is in flight.
func (c *Controller) IsDragging() bool { return c.phase == PhaseDragging }

// Pressed reports whether a gesture is in flight, including on
// non-draggable controllers whose phase stays idle.
func (c *Controller) Pressed() bool { return c.pressed }

// Phase returns the current gesture phase.
func (c *Controller) Phase() Phase { return c.phase }

// Draggable reports whether drag-to-reposition is enabled.
func (c *Controller) Draggable() bool { return c.draggable }

// Controlled reports whether the host owns the open flag.
func (c *Controller) Controlled() bool {
	_, ok := c.state.(Controlled)
	return ok
}

// AnchorOffset is the widget displacement to render this frame: the
// committed offset plus, while dragging, the live uncommitted delta.
func (c *Controller) AnchorOffset() layout.Offset {
	if c.phase == PhaseDragging {
		return c.offset.Add(c.last.Sub(c.origin))
	}
	return c.offset
}

// CommittedOffset is the displacement as of the last completed drag.
func (c *Controller) CommittedOffset() layout.Offset { return c.offset }

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Phase      Phase
	Open       bool
	Controlled bool
	Anchor     layout.Offset
	Committed  layout.Offset
	Pressed    bool
	Origin     layout.Offset
	Gesture    uint64
	StartedAt  time.Time
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      c.phase,
		Open:       c.IsOpen(),
		Controlled: c.Controlled(),
		Anchor:     c.AnchorOffset(),
		Committed:  c.offset,
		Pressed:    c.pressed,
		Gesture:    c.seq,
		StartedAt:  c.startedAt,
	}
	if c.pressed {
		s.Origin = c.origin
	}
	return s
}
