package menu_test

import (
	"fmt"

	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

func Example() {
	m, err := menu.New(menu.Config{
		Corner:    layout.BottomRight,
		Strategy:  layout.Vertical,
		Draggable: true,
	},
		menu.WithOnToggle(func(open bool) { fmt.Println("open:", open) }),
		menu.WithOnPositionChange(func(x, y float64) { fmt.Printf("moved: (%g, %g)\n", x, y) }),
	)
	if err != nil {
		panic(err)
	}

	// Tap the trigger, then drag it 50px left.
	_ = m.PointerDown(0, 0)
	_ = m.PointerUp(0, 0)
	_ = m.PointerDown(0, 0)
	_ = m.PointerMove(-50, 0)
	_ = m.PointerUp(-50, 0)

	frame, _ := m.Frame(2)
	for i := range frame.Children {
		p := frame.ChildPosition(i)
		fmt.Printf("item %d at (%g, %g)\n", i, p.X, p.Y)
	}
	// Output:
	// open: true
	// moved: (-50, 0)
	// item 0 at (-50, -56)
	// item 1 at (-50, -112)
}

func ExampleMenu_HitTest() {
	m, _ := menu.New(menu.Config{Strategy: layout.Vertical, Corner: layout.BottomRight, InitialOpen: true})

	if i, ok := m.HitTest(3, -110, 4); ok {
		fmt.Println("hit item", i)
	}
	// Output: hit item 1
}
