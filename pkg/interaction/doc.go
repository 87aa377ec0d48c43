// Package interaction implements the gesture state machine of a draggable
// action-menu trigger.
//
// # Overview
//
// A trigger receives three competing intents: a tap that toggles the menu,
// a drag that repositions the whole widget, and an explicit toggle request
// from the host. The [Controller] reconciles them so that every completed
// pointer gesture produces exactly one of:
//
//   - a toggle (onToggle fires),
//   - a position change (onPositionChange fires), or
//   - nothing (the gesture was cancelled).
//
// # State Space
//
// The state is the product of the open flag and the gesture [Phase]:
//
//	           down               move (|Δx|+|Δy| > threshold)
//	  idle ──────────▶ pressed ─────────────────────────────▶ dragging
//	   ▲                  │ up: toggle                          │ up: commit offset
//	   └──────────────────┴─────────────────────────────────────┘
//	                     cancel: discard, emit nothing
//
// A toggle request arriving while dragging is suppressed, not queued. When
// the widget is not draggable the phase never leaves idle and every completed
// down/up pair toggles, however far the pointer travelled.
//
// # Open State Authority
//
// The open flag is owned by exactly one authority, expressed as an
// [OpenState]: [Uncontrolled] lets the controller flip it itself, while
// [Controlled] only reports the requested value through onToggle and waits
// for the host to call [Controller.SetOpen].
//
// # Event Ordering
//
// Events must be delivered in arrival order on one goroutine. A move or up
// without a preceding down, or a second down mid-gesture, leaves the state
// untouched and returns an [errors.ErrCodeOutOfOrderEvent] error that the
// caller may log.
package interaction
