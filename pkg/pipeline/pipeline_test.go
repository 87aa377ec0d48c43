package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/fabmenu/pkg/cache"
	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/script"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want INVALID_FORMAT", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateEngine(t *testing.T) {
	for _, e := range []string{"sink", "nodelink"} {
		if err := ValidateEngine(e); err != nil {
			t.Errorf("ValidateEngine(%q) = %v", e, err)
		}
	}
	if err := ValidateEngine("radial"); err == nil {
		t.Error("unknown engine should fail")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, json,dot", []string{"svg", "json", "dot"}},
		{"png,,pdf", []string{"png", "pdf"}},
	}
	for _, tt := range tests {
		got := ParseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Total != DefaultTotal {
		t.Errorf("Total = %d, want %d", opts.Total, DefaultTotal)
	}
	if opts.Engine != DefaultEngine {
		t.Errorf("Engine = %s, want %s", opts.Engine, DefaultEngine)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative total", Options{Total: -1}, errors.ErrCodeInvalidArgument},
		{"bad engine", Options{Engine: "radial"}, errors.ErrCodeInvalidArgument},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -2}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	opts.Formats = []string{"gif"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Second call should be a no-op, got %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Engine: EngineSink, Guides: true, Detailed: true, Scale: 3}

	if k := opts.ArtifactKeyOpts("json"); k != (cache.ArtifactKeyOpts{Format: "json"}) {
		t.Errorf("json key opts = %+v, want format only", k)
	}
	svg := opts.ArtifactKeyOpts("svg")
	if !svg.Guides || svg.Detailed || svg.Scale != 0 {
		t.Errorf("svg key opts = %+v", svg)
	}
	if png := opts.ArtifactKeyOpts("png"); png.Scale != 3 {
		t.Errorf("png key opts = %+v, want scale 3", png)
	}

	opts.Engine = EngineNodelink
	nl := opts.ArtifactKeyOpts("svg")
	if nl.Guides || !nl.Detailed || nl.Engine != EngineNodelink {
		t.Errorf("nodelink svg key opts = %+v", nl)
	}
}

func TestRenderFormats(t *testing.T) {
	f, err := menu.StaticFrame(menu.Config{Strategy: layout.Vertical}, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(context.Background(), f, Options{Formats: []string{"svg", "json", "dot"}, Label: "demo"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(artifacts["svg"]), []byte("<svg")) {
		t.Errorf("svg artifact = %.60s", artifacts["svg"])
	}
	if !bytes.Contains(artifacts["json"], []byte(`"label": "demo"`)) {
		t.Errorf("json artifact missing label: %s", artifacts["json"])
	}
	if !bytes.HasPrefix(artifacts["dot"], []byte("graph menu")) {
		t.Errorf("dot artifact = %.60s", artifacts["dot"])
	}
}

func TestRenderFormatUnsupported(t *testing.T) {
	f, _ := menu.StaticFrame(menu.Config{}, 1, false)
	_, err := RenderFormat(context.Background(), f, "gif", Options{})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestRunnerRenderCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{Total: 4, Open: true, Formats: []string{"svg", "json"}}
	first, err := r.RenderConfig(ctx, menu.Config{}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first render should miss")
	}
	if first.Frame.Total() != 4 || !first.Frame.Open {
		t.Errorf("frame = %+v", first.Frame)
	}

	second, err := r.RenderConfig(ctx, menu.Config{}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second render should hit")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}
	if first.FrameHash != second.FrameHash {
		t.Error("frame hash should be stable")
	}

	opts.Refresh = true
	third, _ := r.RenderConfig(ctx, menu.Config{}, opts)
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	other, _ := r.RenderConfig(ctx, menu.Config{Corner: layout.TopLeft}, Options{Total: 4, Open: true})
	if other.CacheHit {
		t.Error("a different frame should miss")
	}
}

func TestRunnerSimulate(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(fc, nil, nil)

	s := &script.Script{
		Total: 3,
		Menu:  menu.Config{Draggable: true},
		Events: []script.Event{
			{Kind: script.KindDown},
			{Kind: script.KindMove, X: 20},
			{Kind: script.KindUp, X: 20},
		},
	}
	t1, hit, err := r.Simulate(ctx, s, false)
	if err != nil || hit {
		t.Fatalf("first Simulate: hit=%v err=%v", hit, err)
	}
	if t1.MenuID != SimulatedMenuID || t1.Positions != 1 || t1.Toggles != 0 {
		t.Errorf("transcript = %+v", t1)
	}

	t2, hit, err := r.Simulate(ctx, s, false)
	if err != nil || !hit {
		t.Fatalf("second Simulate: hit=%v err=%v", hit, err)
	}
	if t2.Positions != 1 || t2.Final.Anchor.X != 20 {
		t.Errorf("cached transcript = %+v", t2)
	}

	if _, hit, _ := r.Simulate(ctx, s, true); hit {
		t.Error("refresh should bypass the cache")
	}
}
