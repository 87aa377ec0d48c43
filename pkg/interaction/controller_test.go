package interaction

import (
	"testing"
	"time"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/observability"
)

// recorder counts emitted callbacks.
type recorder struct {
	toggles   []bool
	positions []layout.Offset
}

func (r *recorder) options() []Option {
	return []Option{
		WithOnToggle(func(open bool) { r.toggles = append(r.toggles, open) }),
		WithOnPositionChange(func(x, y float64) { r.positions = append(r.positions, layout.Offset{X: x, Y: y}) }),
	}
}

func newTestController(cfg Config) (*Controller, *recorder) {
	r := &recorder{}
	return New(cfg, r.options()...), r
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTapResolvesToToggle(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})

	mustNil(t, c.PointerDown(100, 100))
	mustNil(t, c.PointerMove(101, 100))
	mustNil(t, c.PointerUp(101, 100))

	if len(r.toggles) != 1 {
		t.Fatalf("toggles = %d, want 1", len(r.toggles))
	}
	if len(r.positions) != 0 {
		t.Fatalf("positions = %d, want 0", len(r.positions))
	}
	if !r.toggles[0] || !c.IsOpen() {
		t.Error("tap should open a closed menu")
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
}

func TestDragResolvesToPositionChange(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})

	mustNil(t, c.PointerDown(100, 100))
	mustNil(t, c.PointerMove(110, 100))
	if !c.IsDragging() {
		t.Fatal("10px move should start a drag")
	}
	mustNil(t, c.PointerUp(110, 100))

	if len(r.toggles) != 0 {
		t.Fatalf("toggles = %d, want 0", len(r.toggles))
	}
	if len(r.positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(r.positions))
	}
	if r.positions[0] != (layout.Offset{X: 10, Y: 0}) {
		t.Errorf("position = %v, want (10, 0)", r.positions[0])
	}
	if c.IsOpen() {
		t.Error("drag must not toggle the menu")
	}
}

func TestThresholdIsStrictAndManhattan(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		wantDrag bool
	}{
		{"exactly threshold", 3, 0, false},
		{"split at threshold", 1.5, -1.5, false},
		{"just over", 2, 1.5, true},
		{"diagonal", -2, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(Config{Draggable: true})
			mustNil(t, c.PointerDown(0, 0))
			mustNil(t, c.PointerMove(tt.dx, tt.dy))
			if c.IsDragging() != tt.wantDrag {
				t.Errorf("dragging = %v, want %v", c.IsDragging(), tt.wantDrag)
			}
		})
	}
}

func TestDragStaysDragAfterReturningToOrigin(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})
	mustNil(t, c.PointerDown(0, 0))
	mustNil(t, c.PointerMove(20, 20))
	mustNil(t, c.PointerMove(1, 0))
	mustNil(t, c.PointerUp(1, 0))

	if len(r.toggles) != 0 || len(r.positions) != 1 {
		t.Fatalf("toggles=%d positions=%d, want 0 and 1", len(r.toggles), len(r.positions))
	}
}

func TestUpPositionCountsAsFinalMove(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})
	mustNil(t, c.PointerDown(0, 0))
	mustNil(t, c.PointerUp(0, 25))

	if len(r.toggles) != 0 || len(r.positions) != 1 {
		t.Fatalf("toggles=%d positions=%d, want 0 and 1", len(r.toggles), len(r.positions))
	}
	if r.positions[0] != (layout.Offset{X: 0, Y: 25}) {
		t.Errorf("position = %v", r.positions[0])
	}
}

func TestDragOffsetAccumulatesAndPersists(t *testing.T) {
	c, r := newTestController(Config{Draggable: true, InitialOffset: layout.Offset{X: -5, Y: 5}})

	mustNil(t, c.PointerDown(0, 0))
	mustNil(t, c.PointerMove(-30, -40))
	if got := c.AnchorOffset(); got != (layout.Offset{X: -35, Y: -35}) {
		t.Errorf("live anchor = %v, want (-35, -35)", got)
	}
	if got := c.CommittedOffset(); got != (layout.Offset{X: -5, Y: 5}) {
		t.Errorf("committed during drag = %v, want initial", got)
	}
	mustNil(t, c.PointerUp(-30, -40))

	mustNil(t, c.PointerDown(50, 50))
	mustNil(t, c.PointerUp(60, 60))

	want := layout.Offset{X: -25, Y: -25}
	if got := c.AnchorOffset(); got != want {
		t.Errorf("anchor = %v, want %v", got, want)
	}
	if r.positions[1] != want {
		t.Errorf("last position = %v, want %v", r.positions[1], want)
	}

	// a later tap leaves the offset alone
	mustNil(t, c.PointerDown(0, 0))
	mustNil(t, c.PointerUp(0, 0))
	if got := c.AnchorOffset(); got != want {
		t.Errorf("anchor after tap = %v, want %v", got, want)
	}
}

func TestCancelSafety(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})

	mustNil(t, c.PointerDown(0, 0))
	mustNil(t, c.PointerMove(10, 0))
	c.PointerCancel()

	if len(r.toggles) != 0 || len(r.positions) != 0 {
		t.Fatalf("cancel emitted toggles=%d positions=%d", len(r.toggles), len(r.positions))
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
	if c.AnchorOffset() != (layout.Offset{}) {
		t.Errorf("cancelled delta leaked into anchor: %v", c.AnchorOffset())
	}

	mustNil(t, c.PointerDown(5, 5))
	mustNil(t, c.PointerUp(5, 5))
	if len(r.toggles) != 1 || len(r.positions) != 0 {
		t.Fatalf("fresh tap: toggles=%d positions=%d, want 1 and 0", len(r.toggles), len(r.positions))
	}
}

func TestCancelWhileIdleIsNoop(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})
	c.PointerCancel()
	if c.Phase() != PhaseIdle || len(r.toggles) != 0 {
		t.Error("cancel while idle should do nothing")
	}
}

func TestNonDraggableDegeneratesToToggle(t *testing.T) {
	c, r := newTestController(Config{Draggable: false})

	mustNil(t, c.PointerDown(0, 0))
	if c.Phase() != PhaseIdle {
		t.Errorf("phase after down = %v, want idle", c.Phase())
	}
	mustNil(t, c.PointerMove(100, 0))
	if c.IsDragging() {
		t.Fatal("non-draggable controller entered dragging")
	}
	mustNil(t, c.PointerUp(100, 0))

	if len(r.toggles) != 1 || len(r.positions) != 0 {
		t.Fatalf("toggles=%d positions=%d, want 1 and 0", len(r.toggles), len(r.positions))
	}
	if c.AnchorOffset() != (layout.Offset{}) {
		t.Errorf("anchor moved: %v", c.AnchorOffset())
	}
}

func TestPressedTracksGesture(t *testing.T) {
	for _, draggable := range []bool{true, false} {
		c, _ := newTestController(Config{Draggable: draggable})
		if c.Pressed() {
			t.Fatalf("draggable=%v: pressed before any down", draggable)
		}
		mustNil(t, c.PointerDown(0, 0))
		if !c.Pressed() {
			t.Errorf("draggable=%v: not pressed after down", draggable)
		}
		mustNil(t, c.PointerUp(0, 0))
		if c.Pressed() {
			t.Errorf("draggable=%v: still pressed after up", draggable)
		}
	}
}

func TestToggleSuppressedWhileDragging(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})
	mustNil(t, c.PointerDown(0, 0))
	mustNil(t, c.PointerMove(0, 50))

	if c.RequestToggle() {
		t.Error("toggle should be suppressed mid-drag")
	}
	mustNil(t, c.PointerUp(0, 50))

	if len(r.toggles) != 0 {
		t.Errorf("suppressed toggle was queued: %v", r.toggles)
	}
	if c.IsOpen() {
		t.Error("menu opened from a suppressed toggle")
	}
}

func TestToggleAllowedWhilePressed(t *testing.T) {
	c, r := newTestController(Config{Draggable: true})
	mustNil(t, c.PointerDown(0, 0))
	if !c.RequestToggle() {
		t.Fatal("toggle should be allowed while pressed")
	}
	if len(r.toggles) != 1 || !c.IsOpen() {
		t.Fatalf("toggles=%v open=%v", r.toggles, c.IsOpen())
	}
}

func TestOutOfOrderEventsAreIgnored(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller)
		event func(c *Controller) error
	}{
		{"move without down", func(*Controller) {}, func(c *Controller) error { return c.PointerMove(5, 5) }},
		{"up without down", func(*Controller) {}, func(c *Controller) error { return c.PointerUp(5, 5) }},
		{"double down", func(c *Controller) { _ = c.PointerDown(0, 0) }, func(c *Controller) error { return c.PointerDown(9, 9) }},
		{"up after up", func(c *Controller) { _ = c.PointerDown(0, 0); _ = c.PointerUp(0, 0) }, func(c *Controller) error { return c.PointerUp(0, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := newTestController(Config{Draggable: true})
			tt.setup(c)
			before := c.Snapshot()
			toggles := len(r.toggles)

			err := tt.event(c)
			if !errors.Is(err, errors.ErrCodeOutOfOrderEvent) {
				t.Fatalf("error = %v, want OUT_OF_ORDER_EVENT", err)
			}
			if c.Snapshot() != before {
				t.Errorf("state changed: %+v -> %+v", before, c.Snapshot())
			}
			if len(r.toggles) != toggles || len(r.positions) != 0 {
				t.Error("ignored event emitted a callback")
			}
		})
	}
}

func TestControlledMode(t *testing.T) {
	c, r := newTestController(Config{State: Controlled{Open: false}})

	mustNil(t, c.PointerDown(0, 0))
	mustNil(t, c.PointerUp(0, 0))

	if len(r.toggles) != 1 || !r.toggles[0] {
		t.Fatalf("toggles = %v, want [true]", r.toggles)
	}
	if c.IsOpen() {
		t.Error("controlled state must not change without SetOpen")
	}

	mustNil(t, c.SetOpen(true))
	if !c.IsOpen() {
		t.Error("SetOpen(true) did not open")
	}
	c.RequestToggle()
	if r.toggles[1] {
		t.Error("second toggle should request close")
	}
}

func TestSetOpenRejectedWhenUncontrolled(t *testing.T) {
	c := New(Config{State: Uncontrolled{Open: true}})
	err := c.SetOpen(false)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("error = %v, want UNSUPPORTED", err)
	}
	if !c.IsOpen() {
		t.Error("rejected SetOpen changed state")
	}
}

func TestInitialState(t *testing.T) {
	c := New(Config{State: Uncontrolled{Open: true}, InitialOffset: layout.Offset{X: 3, Y: 4}})
	if !c.IsOpen() {
		t.Error("initial open not honoured")
	}
	if c.AnchorOffset() != (layout.Offset{X: 3, Y: 4}) {
		t.Errorf("initial offset = %v", c.AnchorOffset())
	}
	if c.Controlled() {
		t.Error("should be uncontrolled")
	}

	d := New(Config{})
	if d.IsOpen() || d.Phase() != PhaseIdle || d.Draggable() {
		t.Error("zero config should be closed, idle and not draggable")
	}
}

func TestThresholdDefaults(t *testing.T) {
	c := New(Config{Draggable: true, DragThreshold: -1})
	if c.threshold != DefaultDragThreshold {
		t.Errorf("threshold = %v, want default", c.threshold)
	}
	z := New(Config{Draggable: true, DragThreshold: 0})
	_ = z.PointerDown(0, 0)
	_ = z.PointerMove(0.5, 0)
	if !z.IsDragging() {
		t.Error("zero threshold should drag on any movement")
	}
}

func TestGestureTimestampsIncrease(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(Config{Draggable: true}, WithClock(func() time.Time { return fixed }))

	var last time.Time
	for i := 1; i <= 3; i++ {
		mustNil(t, c.PointerDown(0, 0))
		s := c.Snapshot()
		if s.Gesture != uint64(i) {
			t.Errorf("gesture = %d, want %d", s.Gesture, i)
		}
		if !s.StartedAt.After(last) {
			t.Errorf("start %v not after %v", s.StartedAt, last)
		}
		last = s.StartedAt
		c.PointerCancel()
	}
}

type countingHooks struct {
	observability.NoopInteractionHooks
	outcomes []string
	ignored  []string
}

func (h *countingHooks) OnGestureResolved(_ string, outcome string, _ time.Duration) {
	h.outcomes = append(h.outcomes, outcome)
}

func (h *countingHooks) OnEventIgnored(_ string, event, _ string) {
	h.ignored = append(h.ignored, event)
}

func TestHooksObserveResolution(t *testing.T) {
	h := &countingHooks{}
	observability.SetInteractionHooks(h)
	defer observability.Reset()

	c := New(Config{Draggable: true}, WithID("m1"))
	_ = c.PointerDown(0, 0)
	_ = c.PointerUp(0, 0)
	_ = c.PointerDown(0, 0)
	_ = c.PointerUp(40, 0)
	_ = c.PointerDown(0, 0)
	c.PointerCancel()
	_ = c.PointerUp(0, 0)

	want := []string{"toggle", "position", "cancel"}
	if len(h.outcomes) != len(want) {
		t.Fatalf("outcomes = %v, want %v", h.outcomes, want)
	}
	for i := range want {
		if h.outcomes[i] != want[i] {
			t.Errorf("outcomes[%d] = %s, want %s", i, h.outcomes[i], want[i])
		}
	}
	if len(h.ignored) != 1 || h.ignored[0] != EventPointerUp {
		t.Errorf("ignored = %v, want [pointer-up]", h.ignored)
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{PhaseIdle: "idle", PhasePressed: "pressed", PhaseDragging: "dragging", Phase(9): "unknown"} {
		if p.String() != want {
			t.Errorf("Phase(%d).String() = %s, want %s", int(p), p.String(), want)
		}
	}
}
