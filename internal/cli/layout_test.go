package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

func validConfig(t *testing.T, cfg menu.Config) menu.Config {
	t.Helper()
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestLayoutRowsVertical(t *testing.T) {
	cfg := validConfig(t, menu.Config{Strategy: layout.Vertical, SpacingPx: 50})
	rows, err := layoutRows(cfg, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for i, r := range rows {
		want := -50 * float64(i+1)
		if r.Offset.X != 0 || r.Offset.Y != want {
			t.Errorf("row %d offset = %+v, want (0, %v)", i, r.Offset, want)
		}
		if r.Distance != -want {
			t.Errorf("row %d distance = %v, want %v", i, r.Distance, -want)
		}
		if r.Layer != nil {
			t.Errorf("row %d should have no layer outside petal", i)
		}
	}
}

func TestLayoutRowsPetalLayers(t *testing.T) {
	cfg := validConfig(t, menu.Config{})
	rows, err := layoutRows(cfg, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 0, 0, 1, 1}
	for i, r := range rows {
		if r.Layer == nil || *r.Layer != want[i] {
			t.Errorf("row %d layer = %v, want %d", i, r.Layer, want[i])
		}
	}
}

func TestLayoutRowsZeroTotal(t *testing.T) {
	if _, err := layoutRows(validConfig(t, menu.Config{}), 0); err == nil {
		t.Error("a layout of zero items should fail")
	}
}

func TestRenderLayoutTable(t *testing.T) {
	cfg := validConfig(t, menu.Config{Strategy: layout.Grid})
	rows, _ := layoutRows(cfg, 4)
	out := renderLayoutTable(cfg, rows, true)

	for _, want := range []string{"grid", "bottom-right", "4 items", "2 columns", "dist"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "layer") {
		t.Error("grid table should not have a layer column")
	}
}

func TestWriteLayoutJSON(t *testing.T) {
	cfg := validConfig(t, menu.Config{Strategy: layout.Vertical, Corner: layout.TopLeft})
	rows, _ := layoutRows(cfg, 2)

	var buf bytes.Buffer
	if err := writeLayoutJSON(&buf, rows); err != nil {
		t.Fatal(err)
	}
	var got []layoutRow
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[1].Offset.Y != 2*layout.DefaultSpacing {
		t.Errorf("decoded rows = %+v", got)
	}
}

func TestLayoutCommand(t *testing.T) {
	out, err := execute(t, "layout", "-s", "vertical", "-n", "2", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"index": 1`) {
		t.Errorf("layout --json output:\n%s", out)
	}

	if _, err := execute(t, "layout", "-n", "-1"); err == nil {
		t.Error("negative total should fail")
	}
}
