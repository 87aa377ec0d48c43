package interaction

// Phase is the sub-state of an in-flight pointer interaction.
type Phase int

const (
	// PhaseIdle means no gesture is in flight.
	PhaseIdle Phase = iota
	// PhasePressed means the pointer is down but has not crossed the drag threshold.
	PhasePressed
	// PhaseDragging means the gesture crossed the drag threshold.
	PhaseDragging
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// OpenState is the authority over the menu's open flag. It is one of
// [Uncontrolled] or [Controlled].
type OpenState interface {
	IsOpen() bool
	openState()
}

// Uncontrolled means the controller owns the open flag and flips it on
// every toggle.
type Uncontrolled struct {
	Open bool
}

// Controlled means the host owns the open flag. Toggles are reported through
// onToggle and take effect only when the host calls SetOpen.
type Controlled struct {
	Open bool
}

func (s Uncontrolled) IsOpen() bool { return s.Open }
func (s Controlled) IsOpen() bool   { return s.Open }

func (Uncontrolled) openState() {}
func (Controlled) openState()   {}

// Outcome names how a completed gesture resolved.
type Outcome string

const (
	// OutcomeToggle is a press released within the drag threshold.
	OutcomeToggle Outcome = "toggle"
	// OutcomePosition is a drag that committed a new anchor offset.
	OutcomePosition Outcome = "position"
	// OutcomeCancel is a gesture abandoned by PointerCancel.
	OutcomeCancel Outcome = "cancel"
)
