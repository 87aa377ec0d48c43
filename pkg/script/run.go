package script

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

// Emission kinds recorded in a transcript.
const (
	EmitToggle   = "toggle"
	EmitPosition = "position"
	EmitSelect   = "select"
)

// Emission is one callback fired by the menu.
type Emission struct {
	Kind  string  `json:"kind"`
	Open  bool    `json:"open,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Index int     `json:"index,omitempty"`
}

// Recorder collects menu callbacks between drains.
type Recorder struct {
	pending []Emission
}

// Options returns the menu options that feed the recorder.
func (r *Recorder) Options() []menu.Option {
	return []menu.Option{
		menu.WithOnToggle(func(open bool) {
			r.pending = append(r.pending, Emission{Kind: EmitToggle, Open: open})
		}),
		menu.WithOnPositionChange(func(x, y float64) {
			r.pending = append(r.pending, Emission{Kind: EmitPosition, X: x, Y: y})
		}),
		menu.WithOnSelect(func(i int) {
			r.pending = append(r.pending, Emission{Kind: EmitSelect, Index: i})
		}),
	}
}

// Drain returns and clears the recorded emissions.
func (r *Recorder) Drain() []Emission {
	out := r.pending
	r.pending = nil
	if out == nil {
		out = []Emission{}
	}
	return out
}

// Apply delivers ev to m. Out-of-order events come back as
// errors.ErrCodeOutOfOrderEvent errors and leave m unchanged.
func Apply(m *menu.Menu, ev Event, total int) error {
	switch ev.Kind {
	case KindDown:
		return m.PointerDown(ev.X, ev.Y)
	case KindMove:
		return m.PointerMove(ev.X, ev.Y)
	case KindUp:
		return m.PointerUp(ev.X, ev.Y)
	case KindCancel:
		m.PointerCancel()
		return nil
	case KindToggle:
		if !m.RequestToggle() {
			return errors.New(errors.ErrCodeOutOfOrderEvent, "toggle suppressed while dragging")
		}
		return nil
	case KindSelect:
		return m.SelectItem(ev.Index, total)
	case KindSetOpen:
		return m.SetOpen(ev.Open)
	default:
		return errors.New(errors.ErrCodeInvalidArgument, "unknown event kind %q", string(ev.Kind))
	}
}

// Step is the state after one event.
type Step struct {
	Seq      int           `json:"seq"`
	Event    Event         `json:"event"`
	Phase    string        `json:"phase"`
	Open     bool          `json:"open"`
	Dragging bool          `json:"dragging"`
	Anchor   layout.Offset `json:"anchor"`
	Emitted  []Emission    `json:"emitted"`
	Ignored  string        `json:"ignored,omitempty"`
}

// Transcript is the result of replaying a script.
type Transcript struct {
	Name   string     `json:"name,omitempty"`
	MenuID string     `json:"menu_id"`
	Steps  []Step     `json:"steps"`
	Final  menu.Frame `json:"final"`

	Toggles   int `json:"toggles"`
	Positions int `json:"positions"`
	Selects   int `json:"selects"`
	Ignored   int `json:"ignored"`
}

// Option configures Run.
type Option func(*runner)

type runner struct {
	logger *log.Logger
	now    func() time.Time
	id     string
}

// WithLogger sets the logger passed to the replayed menu.
func WithLogger(l *log.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the gesture clock of the replayed menu.
func WithClock(now func() time.Time) Option {
	return func(r *runner) { r.now = now }
}

// WithMenuID fixes the replayed menu's instance ID.
func WithMenuID(id string) Option {
	return func(r *runner) { r.id = id }
}

// Run replays s on a fresh menu. Ignored events are recorded in the
// transcript; any other error stops the replay.
func Run(ctx context.Context, s *Script, opts ...Option) (*Transcript, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := runner{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(&r)
	}

	rec := &Recorder{}
	menuOpts := append(rec.Options(), menu.WithLogger(r.logger), menu.WithClock(r.now), menu.WithID(r.id))
	m, err := menu.New(s.Menu, menuOpts...)
	if err != nil {
		return nil, err
	}

	t := &Transcript{Name: s.Name, MenuID: m.ID(), Steps: make([]Step, 0, len(s.Events))}
	for i, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step := Step{Seq: i, Event: ev}
		if err := Apply(m, ev, s.Total); err != nil {
			if !errors.Is(err, errors.ErrCodeOutOfOrderEvent) {
				return nil, errors.Wrap(errors.GetCode(err), err, "event %d (%s)", i, ev.Kind)
			}
			step.Ignored = errors.UserMessage(err)
			t.Ignored++
		}
		step.Phase = m.Phase().String()
		step.Open = m.IsOpen()
		step.Dragging = m.IsDragging()
		step.Anchor = m.AnchorOffset()
		step.Emitted = rec.Drain()
		for _, e := range step.Emitted {
			switch e.Kind {
			case EmitToggle:
				t.Toggles++
			case EmitPosition:
				t.Positions++
			case EmitSelect:
				t.Selects++
			}
		}
		t.Steps = append(t.Steps, step)
	}

	final, err := m.Frame(s.Total)
	if err != nil {
		return nil, err
	}
	t.Final = final
	return t, nil
}
