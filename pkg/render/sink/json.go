package sink

import (
	"encoding/json"

	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
	label  string
}

// WithJSONIndent pretty-prints the document.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithJSONLabel records a free-form name, such as the script that produced
// the frame.
func WithJSONLabel(s string) JSONOption { return func(r *jsonRenderer) { r.label = s } }

type jsonOutput struct {
	ID            string          `json:"id"`
	Label         string          `json:"label,omitempty"`
	Corner        layout.Corner   `json:"corner"`
	Strategy      layout.Strategy `json:"strategy"`
	Open          bool            `json:"open"`
	Dragging      bool            `json:"dragging"`
	Phase         string          `json:"phase"`
	Anchor        layout.Offset   `json:"anchor"`
	TriggerRadius float64         `json:"trigger_radius"`
	ItemRadius    float64         `json:"item_radius"`
	Layers        int             `json:"layers,omitempty"`
	Items         []jsonItem      `json:"items"`
}

type jsonItem struct {
	Index    int           `json:"index"`
	Offset   layout.Offset `json:"offset"`
	Position layout.Offset `json:"position"`
	Layer    *int          `json:"layer,omitempty"`
}

// RenderJSON encodes the frame with per-item relative and absolute
// positions. Petal frames also carry each item's layer.
func RenderJSON(f menu.Frame, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:            f.ID,
		Label:         r.label,
		Corner:        f.Corner,
		Strategy:      f.Strategy,
		Open:          f.Open,
		Dragging:      f.Dragging,
		Phase:         f.Phase,
		Anchor:        f.Anchor,
		TriggerRadius: f.TriggerRadius,
		ItemRadius:    f.ItemRadius,
		Items:         make([]jsonItem, len(f.Children)),
	}
	petal := f.Strategy == layout.Petal && f.Total() > 0
	if petal {
		out.Layers = layout.PetalLayers(f.Total())
	}
	for i, off := range f.Children {
		item := jsonItem{Index: i, Offset: off, Position: f.ChildPosition(i)}
		if petal {
			l, _, _ := layout.PetalSlot(i, f.Total())
			item.Layer = &l
		}
		out.Items[i] = item
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
