package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", defaultOutputBase},
		{"out/menu", "out/menu"},
		{"out/menu.svg", "out/menu"},
		{"menu.png", "menu"},
		{"menu.v2", "menu.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default single", "", []string{"svg"}, map[string]string{"svg": "menu.svg"}},
		{"explicit single", "fab.out", []string{"png"}, map[string]string{"png": "fab.out"}},
		{"several from base", "out/fab.svg", []string{"svg", "json"}, map[string]string{
			"svg":  "out/fab.svg",
			"json": "out/fab.json",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("path[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestWriteArtifactCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "menu.svg")
	if err := writeArtifact(path, []byte("<svg/>")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("read back %q, %v", data, err)
	}
}

func TestRenderCommand(t *testing.T) {
	base := filepath.Join(t.TempDir(), "menu")
	_, err := execute(t, "render", "--no-cache", "--open", "-n", "4", "-s", "vertical",
		"-f", "svg,json,dot", "-o", base, "--label", "demo")
	if err != nil {
		t.Fatal(err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("svg output = %.80s", svg)
	}
	js, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(js, []byte(`"label": "demo"`)) {
		t.Errorf("json output missing label: %s", js)
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("dot output: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "--no-cache", "-f", "gif"}},
		{"bad engine", []string{"render", "--no-cache", "--engine", "radial"}},
		{"stdout with several formats", []string{"render", "--no-cache", "-f", "svg,json", "-o", "-"}},
		{"positional args", []string{"render", "menu.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}
