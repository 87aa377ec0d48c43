package menu

import (
	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
)

// Frame is everything a renderer needs to draw the widget for one tick.
// Children are relative to Anchor; add them to get absolute positions.
type Frame struct {
	ID       string          `json:"id"`
	Corner   layout.Corner   `json:"corner"`
	Strategy layout.Strategy `json:"strategy"`
	Open     bool            `json:"open"`
	Dragging bool            `json:"dragging"`
	Phase    string          `json:"phase"`
	Anchor   layout.Offset   `json:"anchor"`
	Children []layout.Offset `json:"children"`

	BaseRadius    float64 `json:"base_radius"`
	Spacing       float64 `json:"spacing"`
	ItemRadius    float64 `json:"item_radius"`
	TriggerRadius float64 `json:"trigger_radius"`
}

// Total is the number of children in the frame.
func (f Frame) Total() int { return len(f.Children) }

// ChildPosition is child i composed with the anchor offset.
func (f Frame) ChildPosition(i int) layout.Offset {
	return f.Anchor.Add(f.Children[i])
}

// Frame computes the render tuple for total children. Children are laid
// out whether or not the menu is open so a renderer can animate toward them.
// A total of 0 yields a frame with only the trigger.
func (m *Menu) Frame(total int) (Frame, error) {
	if total < 0 {
		return Frame{}, errors.New(errors.ErrCodeInvalidArgument, "total must be >= 0, got %d", total)
	}
	f := Frame{
		ID:            m.id,
		Corner:        m.cfg.Corner,
		Strategy:      m.cfg.Strategy,
		Open:          m.ctrl.IsOpen(),
		Dragging:      m.ctrl.IsDragging(),
		Phase:         m.ctrl.Phase().String(),
		Anchor:        m.ctrl.AnchorOffset(),
		Children:      []layout.Offset{},
		BaseRadius:    m.cfg.BaseRadiusPx,
		Spacing:       m.cfg.SpacingPx,
		ItemRadius:    m.cfg.ItemRadiusPx,
		TriggerRadius: m.cfg.TriggerRadiusPx,
	}
	if total == 0 {
		return f, nil
	}
	children, err := m.engine.Offsets(total, m.cfg.Strategy, m.cfg.Corner)
	if err != nil {
		return Frame{}, err
	}
	f.Children = children
	return f, nil
}

// StaticFrame builds the frame of a fresh menu with the given open flag,
// for one-shot renders that have no gesture history.
func StaticFrame(cfg Config, total int, open bool) (Frame, error) {
	cfg.InitialOpen = open
	cfg.Controlled = false
	m, err := New(cfg, WithID("static"))
	if err != nil {
		return Frame{}, err
	}
	return m.Frame(total)
}
