package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

func TestKindUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"down", KindDown, false},
		{"SET_OPEN", KindSetOpen, false},
		{" select ", KindSelect, false},
		{"hover", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var k Kind
			err := k.UnmarshalText([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if k != tt.want {
				t.Errorf("kind = %q, want %q", k, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		script  Script
		wantErr bool
	}{
		{"empty", Script{}, false},
		{"negative total", Script{Total: -1}, true},
		{"unknown kind", Script{Events: []Event{{Kind: "hover"}}}, true},
		{"select out of range", Script{Total: 3, Events: []Event{{Kind: KindSelect, Index: 3}}}, true},
		{"bad menu", Script{Menu: menu.Config{Strategy: "spiral"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.script
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && s.Total != DefaultTotal && tt.script.Total == 0 {
				t.Errorf("total = %d, want default", s.Total)
			}
		})
	}
}

func TestLoadFormats(t *testing.T) {
	files := map[string]string{
		"tap.toml": `
name = "tap"
total = 3

[menu]
draggable = true

[[events]]
kind = "down"
x = 1.0
[[events]]
kind = "up"
x = 1.0
`,
		"tap.yaml": `
name: tap
total: 3
menu:
  draggable: true
events:
  - kind: down
    x: 1
  - kind: up
    x: 1
`,
		"tap.json": `{
  "name": "tap",
  "total": 3,
  "menu": {"draggable": true},
  "events": [{"kind": "down", "x": 1}, {"kind": "up", "x": 1}]
}`,
	}
	dir := t.TempDir()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			s, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if s.Name != "tap" || s.Total != 3 || !s.Menu.Draggable || len(s.Events) != 2 {
				t.Errorf("script = %+v", s)
			}
			if s.Events[1].Kind != KindUp || s.Events[1].X != 1 {
				t.Errorf("events[1] = %+v", s.Events[1])
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: error = %v", err)
	}
	if _, err := Parse([]byte(`{"events": [{"kind": "hover"}]}`), menu.FormatJSON); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad kind: error = %v", err)
	}
}

func TestRunTapAndDrag(t *testing.T) {
	s := &Script{
		Menu: menu.Config{Draggable: true},
		Events: []Event{
			{Kind: KindDown},
			{Kind: KindMove, X: 1},
			{Kind: KindUp, X: 1},
			{Kind: KindDown},
			{Kind: KindMove, X: -10},
			{Kind: KindUp, X: -10, Y: -2},
		},
	}
	tr, err := Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Toggles != 1 || tr.Positions != 1 || tr.Ignored != 0 {
		t.Fatalf("toggles=%d positions=%d ignored=%d", tr.Toggles, tr.Positions, tr.Ignored)
	}
	if got := tr.Steps[2].Emitted; len(got) != 1 || got[0].Kind != EmitToggle || !got[0].Open {
		t.Errorf("step 2 emitted %+v, want one open toggle", got)
	}
	if tr.Steps[4].Phase != "dragging" || !tr.Steps[4].Dragging {
		t.Errorf("step 4 = %+v, want dragging", tr.Steps[4])
	}
	if tr.Steps[4].Anchor != (layout.Offset{X: -10}) {
		t.Errorf("live anchor = %v", tr.Steps[4].Anchor)
	}
	if tr.Final.Anchor != (layout.Offset{X: -10, Y: -2}) || !tr.Final.Open {
		t.Errorf("final = %+v", tr.Final)
	}
	if tr.Final.Total() != DefaultTotal {
		t.Errorf("final total = %d", tr.Final.Total())
	}
}

func TestRunRecordsIgnoredEvents(t *testing.T) {
	s := &Script{
		Menu: menu.Config{Draggable: true, InitialOpen: true},
		Events: []Event{
			{Kind: KindUp},
			{Kind: KindDown},
			{Kind: KindMove, Y: 30},
			{Kind: KindToggle},
			{Kind: KindSelect, Index: 0},
			{Kind: KindCancel},
			{Kind: KindSelect, Index: 1},
		},
	}
	tr, err := Run(context.Background(), s, WithMenuID("scripted"))
	if err != nil {
		t.Fatal(err)
	}
	if tr.MenuID != "scripted" {
		t.Errorf("menu id = %q", tr.MenuID)
	}
	if tr.Ignored != 3 {
		t.Errorf("ignored = %d, want 3", tr.Ignored)
	}
	for _, i := range []int{0, 3, 4} {
		if tr.Steps[i].Ignored == "" {
			t.Errorf("step %d should be ignored", i)
		}
	}
	if tr.Selects != 1 || tr.Toggles != 1 || tr.Positions != 0 {
		t.Errorf("selects=%d toggles=%d positions=%d", tr.Selects, tr.Toggles, tr.Positions)
	}
	if tr.Final.Open {
		t.Error("select should have closed the menu")
	}
}

func TestRunSelectDuringPress(t *testing.T) {
	s := &Script{
		Total: 3,
		Menu:  menu.Config{Draggable: true, InitialOpen: true},
		Events: []Event{
			{Kind: KindDown},
			{Kind: KindSelect, Index: 0},
			{Kind: KindUp},
		},
	}
	tr, err := Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Steps[1].Ignored == "" {
		t.Error("select during a trigger press should be ignored")
	}
	if tr.Selects != 0 || tr.Toggles != 1 {
		t.Errorf("selects=%d toggles=%d, want 0 and 1", tr.Selects, tr.Toggles)
	}
	if tr.Final.Open {
		t.Error("the tap should have closed the menu")
	}
}

func TestRunControlled(t *testing.T) {
	s := &Script{
		Menu: menu.Config{Controlled: true},
		Events: []Event{
			{Kind: KindToggle},
			{Kind: KindSetOpen, Open: true},
		},
	}
	tr, err := Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Steps[0].Open || !tr.Steps[1].Open {
		t.Errorf("open flags = %v, %v", tr.Steps[0].Open, tr.Steps[1].Open)
	}
}

func TestRunStopsOnHardErrors(t *testing.T) {
	s := &Script{Events: []Event{{Kind: KindSetOpen, Open: true}}}
	_, err := Run(context.Background(), s)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &Script{Events: []Event{{Kind: KindDown}}})
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
