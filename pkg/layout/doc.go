// Package layout computes child offsets for radial action menus.
//
// # Overview
//
// A menu is a trigger control anchored to one screen corner. When it opens,
// its N children are placed relative to the trigger's anchor point. This
// package maps a child's (index, total) pair to that offset:
//
//	off, err := layout.ComputeOffset(3, 5, layout.Petal, layout.BottomRight)
//
// The computation is pure. It keeps no state between calls, so the same
// arguments always produce bit-identical results and calls may be made once
// per animation frame from any goroutine.
//
// # Strategies
//
//   - [Petal]: concentric quarter-circle layers. Layer L holds 3+2L items
//     (3, 5, 7, ...) at radius BaseRadius*(L+1). The outermost layer may be
//     partially filled; its items still span the full 90° arc.
//   - [Vertical]: a single column stacked away from the anchor edge,
//     Spacing apart.
//   - [Grid]: a ⌈√total⌉-wide row-major grid, Spacing apart. Bottom corners
//     read the grid in reverse so it grows away from the anchor.
//
// # Corners
//
// The [Corner] selects the sign of each axis so that the menu always expands
// away from the screen edges it is pinned to:
//
//	bottom-right  (−x, −y)   up and to the left
//	bottom-left   (+x, −y)
//	top-right     (−x, +y)
//	top-left      (+x, +y)
//
// Screen coordinates are used throughout: +x is right, +y is down.
//
// # Errors
//
// Out-of-range indexes, a zero total and unknown strategy or corner names
// are programmer errors. They are reported as [errors.ErrCodeInvalidArgument]
// and never clamped.
package layout
