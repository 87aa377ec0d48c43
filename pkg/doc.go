// Package pkg provides the libraries behind fabmenu, a corner-anchored
// floating action button menu.
//
// # Overview
//
// A fabmenu widget is a trigger button pinned to one corner of a container.
// Tapping the trigger expands child items around it in one of three layouts;
// dragging it moves the whole widget. The pkg directory is organized in
// layers, each depending only on the ones above it:
//
//  1. [errors], [observability] - Coded errors and instrumentation hooks
//  2. [layout] - Pure child offset math for the petal, vertical and grid strategies
//  3. [interaction] - The tap-versus-drag gesture state machine
//  4. [menu] - The widget: configuration, events, hit testing and render frames
//  5. [script], [render] - Gesture replay and frame output (SVG, JSON, DOT, PNG, PDF)
//  6. [cache], [pipeline] - Cached rendering shared by the CLI and the server
//  7. [server] - The HTTP API hosting live menus
//
// # Architecture
//
// The typical data flow:
//
//	pointer events / scripts
//	         ↓
//	    [interaction] (phase, open flag, anchor offset)
//	         ↓
//	    [menu] (+ [layout] child offsets) → Frame
//	         ↓
//	    [pipeline] (+ [cache]) → [render] sinks
//	         ↓
//	    SVG/JSON/DOT/PNG/PDF output
//
// # Quick Start
//
// Drive a menu and render a frame:
//
//	import (
//	    "github.com/matzehuels/fabmenu/pkg/menu"
//	    "github.com/matzehuels/fabmenu/pkg/render/sink"
//	)
//
//	m, _ := menu.New(menu.Config{Draggable: true})
//	_ = m.PointerDown(0, 0)
//	_ = m.PointerUp(0, 0) // a tap: the menu opens
//
//	f, _ := m.Frame(5)
//	svg := sink.RenderSVG(f, sink.WithGuides())
//
// Replay a gesture script:
//
//	s, _ := script.Load("drag.toml")
//	t, _ := script.Run(ctx, s)
//	fmt.Println(t.Positions, t.Final.Anchor)
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/interaction/...  # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [errors]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/observability
// [layout]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/layout
// [interaction]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/interaction
// [menu]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/menu
// [script]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/script
// [render]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/fabmenu/pkg/server
package pkg
