// Package menu is the in-process API of a draggable radial action menu.
//
// A [Menu] combines a [layout.Engine] and an [interaction.Controller] under
// one validated [Config]. Hosts feed it pointer events in arrival order and
// read back a [Frame] per render tick:
//
//	m, err := menu.New(menu.Config{Corner: layout.BottomRight, Draggable: true},
//	    menu.WithOnToggle(func(open bool) { ... }),
//	    menu.WithOnPositionChange(func(x, y float64) { ... }),
//	)
//	_ = m.PointerDown(x, y)
//	_ = m.PointerUp(x, y)
//	frame, _ := m.Frame(5)
//
// Coordinates are relative to the configured anchor corner: the trigger sits
// at [Menu.AnchorOffset] and child i at [Menu.ChildPosition].
//
// # Configuration
//
// [LoadConfig] reads a Config from a .toml, .yaml/.yml or .json file. Zero
// fields take the Default* constants.
//
// # Child Items
//
// [Menu.HitTest] maps a point to the child under it and [Menu.SelectItem]
// reports a press on that child. Both only act on an open menu that is not
// being dragged.
package menu
