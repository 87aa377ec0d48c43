package menu

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/interaction"
	"github.com/matzehuels/fabmenu/pkg/layout"
)

// Option configures optional Menu behaviour.
type Option func(*Menu)

// WithOnToggle registers the callback fired with the requested open value.
func WithOnToggle(fn func(open bool)) Option {
	return func(m *Menu) { m.onToggle = fn }
}

// WithOnPositionChange registers the callback fired with the committed
// widget offset after a drag.
func WithOnPositionChange(fn func(x, y float64)) Option {
	return func(m *Menu) { m.onPosition = fn }
}

// WithOnSelect registers the callback fired when a child item is selected.
func WithOnSelect(fn func(index int)) Option {
	return func(m *Menu) { m.onSelect = fn }
}

// WithLogger sets the logger used for ignored events. Defaults to a
// discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithID overrides the generated instance ID.
func WithID(id string) Option {
	return func(m *Menu) {
		if id != "" {
			m.id = id
		}
	}
}

// WithClock replaces time.Now as the source of gesture timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Menu) { m.now = now }
}

// Menu is one action-menu widget instance: a layout engine and an
// interaction controller sharing one configuration.
//
// Menu is not safe for concurrent use. Callers sharing a Menu between
// goroutines must serialise access.
type Menu struct {
	id     string
	cfg    Config
	engine layout.Engine
	ctrl   *interaction.Controller
	logger *log.Logger
	now    func() time.Time

	onToggle   func(bool)
	onPosition func(x, y float64)
	onSelect   func(int)
}

// New validates cfg and creates a closed, idle menu.
func New(cfg Config, opts ...Option) (*Menu, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	m := &Menu{
		id:     uuid.NewString(),
		cfg:    cfg,
		engine: layout.NewEngine(layout.WithBaseRadius(cfg.BaseRadiusPx), layout.WithSpacing(cfg.SpacingPx)),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	var state interaction.OpenState = interaction.Uncontrolled{Open: cfg.InitialOpen}
	if cfg.Controlled {
		state = interaction.Controlled{Open: cfg.InitialOpen}
	}
	m.ctrl = interaction.New(interaction.Config{
		Draggable:     cfg.Draggable,
		DragThreshold: cfg.DragThresholdPx,
		State:         state,
		InitialOffset: cfg.InitialOffset,
	},
		interaction.WithID(m.id),
		interaction.WithClock(m.now),
		interaction.WithOnToggle(func(open bool) {
			m.logger.Debug("toggle", "menu", m.id, "open", open)
			if m.onToggle != nil {
				m.onToggle(open)
			}
		}),
		interaction.WithOnPositionChange(func(x, y float64) {
			m.logger.Debug("position", "menu", m.id, "x", x, "y", y)
			if m.onPosition != nil {
				m.onPosition(x, y)
			}
		}),
	)
	return m, nil
}

// ID returns the instance ID.
func (m *Menu) ID() string { return m.id }

// Config returns the validated configuration.
func (m *Menu) Config() Config { return m.cfg }

// Engine returns the layout engine configured for this menu.
func (m *Menu) Engine() layout.Engine { return m.engine }

// =============================================================================
// Events
// =============================================================================

// PointerDown starts a gesture on the trigger at (x, y).
func (m *Menu) PointerDown(x, y float64) error {
	if err := validatePoint(x, y); err != nil {
		return err
	}
	return m.logIgnored(m.ctrl.PointerDown(x, y))
}

// PointerMove tracks the in-flight gesture.
func (m *Menu) PointerMove(x, y float64) error {
	if err := validatePoint(x, y); err != nil {
		return err
	}
	return m.logIgnored(m.ctrl.PointerMove(x, y))
}

// PointerUp completes the gesture with a toggle or a position change.
func (m *Menu) PointerUp(x, y float64) error {
	if err := validatePoint(x, y); err != nil {
		return err
	}
	return m.logIgnored(m.ctrl.PointerUp(x, y))
}

// PointerCancel abandons the in-flight gesture.
func (m *Menu) PointerCancel() { m.ctrl.PointerCancel() }

// RequestToggle asks for the menu to open or close. It reports false when
// the request was suppressed by an active drag.
func (m *Menu) RequestToggle() bool {
	if !m.ctrl.RequestToggle() {
		m.logger.Warn("toggle suppressed while dragging", "menu", m.id)
		return false
	}
	return true
}

// SetOpen applies the host's open flag in controlled mode.
func (m *Menu) SetOpen(open bool) error {
	return m.ctrl.SetOpen(open)
}

// SelectItem presses child index of total. Selection is ignored with an
// [errors.ErrCodeOutOfOrderEvent] error while the menu is closed or a
// trigger gesture is in flight, so one gesture never fires both a selection
// close and a tap toggle. When CloseOnSelect is set the menu requests its
// own close.
func (m *Menu) SelectItem(index, total int) error {
	if err := errors.ValidateIndex(index, total); err != nil {
		return err
	}
	switch {
	case m.ctrl.IsDragging():
		return m.logIgnored(errors.New(errors.ErrCodeOutOfOrderEvent, "select ignored while dragging"))
	case m.ctrl.Pressed():
		return m.logIgnored(errors.New(errors.ErrCodeOutOfOrderEvent, "select ignored while the trigger is pressed"))
	case !m.ctrl.IsOpen():
		return m.logIgnored(errors.New(errors.ErrCodeOutOfOrderEvent, "select ignored while closed"))
	}
	m.logger.Debug("select", "menu", m.id, "index", index)
	if m.onSelect != nil {
		m.onSelect(index)
	}
	if m.cfg.ClosesOnSelect() {
		m.ctrl.RequestToggle()
	}
	return nil
}

func (m *Menu) logIgnored(err error) error {
	if err != nil && errors.Is(err, errors.ErrCodeOutOfOrderEvent) {
		m.logger.Warn("event ignored", "menu", m.id, "phase", m.ctrl.Phase(), "reason", errors.UserMessage(err))
	}
	return err
}

func validatePoint(x, y float64) error {
	if err := errors.ValidateFinite("x", x); err != nil {
		return err
	}
	return errors.ValidateFinite("y", y)
}

// =============================================================================
// Queries
// =============================================================================

// IsOpen reports whether children are revealed.
func (m *Menu) IsOpen() bool { return m.ctrl.IsOpen() }

// IsDragging reports whether a drag is in flight.
func (m *Menu) IsDragging() bool { return m.ctrl.IsDragging() }

// Phase returns the current gesture phase.
func (m *Menu) Phase() interaction.Phase { return m.ctrl.Phase() }

// AnchorOffset is the widget displacement to render this frame.
func (m *Menu) AnchorOffset() layout.Offset { return m.ctrl.AnchorOffset() }

// Snapshot returns the controller state.
func (m *Menu) Snapshot() interaction.Snapshot { return m.ctrl.Snapshot() }

// ChildOffset is the position of child index relative to the trigger,
// independent of the drag offset.
func (m *Menu) ChildOffset(index, total int) (layout.Offset, error) {
	return m.engine.Offset(index, total, m.cfg.Strategy, m.cfg.Corner)
}

// ChildPosition is the child's offset composed with the anchor offset.
func (m *Menu) ChildPosition(index, total int) (layout.Offset, error) {
	off, err := m.ChildOffset(index, total)
	if err != nil {
		return layout.Offset{}, err
	}
	return m.AnchorOffset().Add(off), nil
}

// HitTrigger reports whether (x, y) lies on the trigger.
func (m *Menu) HitTrigger(x, y float64) bool {
	return layout.Offset{X: x, Y: y}.Sub(m.AnchorOffset()).Len() <= m.cfg.TriggerRadiusPx
}

// HitTest returns the child item under (x, y). Points are in the same space
// as ChildPosition. Only an open menu has hit targets; when circles overlap
// the nearest centre wins.
func (m *Menu) HitTest(x, y float64, total int) (int, bool) {
	if !m.ctrl.IsOpen() || total < 1 {
		return -1, false
	}
	p := layout.Offset{X: x, Y: y}
	best, bestDist := -1, math.Inf(1)
	for i := 0; i < total; i++ {
		pos, err := m.ChildPosition(i, total)
		if err != nil {
			return -1, false
		}
		if d := p.Sub(pos).Len(); d <= m.cfg.ItemRadiusPx && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
