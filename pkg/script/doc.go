// Package script replays recorded pointer gestures against a menu.
//
// A [Script] bundles a menu configuration, an item count and an ordered list
// of events:
//
//	name = "tap then drag"
//	total = 5
//
//	[menu]
//	draggable = true
//
//	[[events]]
//	kind = "down"
//	[[events]]
//	kind = "up"
//
// [Run] feeds the events to a fresh [menu.Menu] and returns a [Transcript]
// with the state after each step and every callback that fired. Scripts
// load from TOML, YAML or JSON by file extension.
package script
