package pipeline

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/MaxCodeXTC/charticulator/pkg/cache"
	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/chartio"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// testDoc carries explicit element IDs so repeated imports produce the same
// canonical document and cache keys remain stable across runs.
const testDoc = `{
  "version": 1,
  "glyphs": [
    {
      "id": "g-test",
      "class": "glyph/rect",
      "attrs": {"x": 0, "y": 0, "width": 60, "height": 100},
      "marks": [{"id": "m-test", "class": "mark/anchor"}]
    }
  ]
}`

func testRunner(t *testing.T) *Runner {
	t.Helper()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewRunner(store, nil, logger)
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"PathOnly", Options{Path: "chart.json"}, false},
		{"DocumentOnly", Options{Document: []byte("{}")}, false},
		{"Neither", Options{}, true},
		{"Both", Options{Path: "chart.json", Document: []byte("{}")}, true},
		{"BadFormat", Options{Path: "chart.json", Formats: []string{"gif"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var opts Options
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestExecuteFromDocument(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Document: []byte(testDoc),
		Formats:  []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.Glyphs != 1 {
		t.Errorf("glyphs = %d, want 1", result.Stats.Glyphs)
	}
	if result.Stats.Variables == 0 || result.Stats.Constraints == 0 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.DocHash == "" {
		t.Error("DocHash empty")
	}
	if result.CacheInfo.SolveHit || result.CacheInfo.RenderHit {
		t.Error("first run reported cache hits")
	}

	// The JSON artifact is a valid document that re-imports cleanly.
	data, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("no json artifact")
	}
	if _, err := chartio.ReadChart(bytes.NewReader(data)); err != nil {
		t.Errorf("json artifact does not re-import: %v", err)
	}

	dot, ok := result.Artifacts[FormatDOT]
	if !ok || !bytes.Contains(dot, []byte("graph constraints")) {
		t.Errorf("dot artifact = %q", dot)
	}
}

func TestExecuteFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.json")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	r := testRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Path: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("no json artifact from default format")
	}
}

func TestExecuteCaching(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	opts := Options{Document: []byte(testDoc), Formats: []string{FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.SolveHit {
		t.Error("second run missed the solve cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the artifact cache")
	}
	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from computed one")
	}

	// Refresh bypasses the solve cache.
	third, err := r.Execute(context.Background(), Options{
		Document: []byte(testDoc),
		Formats:  []string{FormatJSON},
		Refresh:  true,
	})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.SolveHit {
		t.Error("refresh run hit the solve cache")
	}
}

func TestExecutePinsChangeCacheKey(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	base := Options{Document: []byte(testDoc), Formats: []string{FormatJSON}}
	if _, err := r.Execute(context.Background(), base); err != nil {
		t.Fatalf("base Execute: %v", err)
	}

	pinned := Options{
		Document: []byte(testDoc),
		Formats:  []string{FormatJSON},
		Pins:     []chart.Constraint{chart.Pin(chart.GlyphAttr(0, "width"), 120, solver.Hard)},
	}
	result, err := r.Execute(context.Background(), pinned)
	if err != nil {
		t.Fatalf("pinned Execute: %v", err)
	}
	if result.CacheInfo.SolveHit {
		t.Error("pinned run reused the unpinned solve entry")
	}

	g, ok := result.Chart.Glyph(0)
	if !ok {
		t.Fatal("no glyph in result")
	}
	w, _ := g.Attrs().Get("width")
	if math.Abs(w-120) > 1e-9 {
		t.Errorf("width = %v, want pinned 120", w)
	}
}

func TestExecuteInfeasible(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{
		Document: []byte(testDoc),
		Pins: []chart.Constraint{
			chart.Pin(chart.GlyphAttr(0, "width"), 100, solver.Hard),
			chart.Pin(chart.GlyphAttr(0, "width"), 200, solver.Hard),
		},
	})
	if err == nil {
		t.Fatal("Execute succeeded on contradictory pins")
	}
}

func TestLoadCanonicalHash(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	// Formatting differences in the input do not change the hash: the hash
	// is computed over the re-encoded canonical document.
	compact := []byte(`{"version":1,"glyphs":[{"id":"fixed","class":"glyph/rect","marks":[{"id":"m","class":"mark/anchor"}]}]}`)
	spaced := []byte("{\n  \"version\": 1,\n  \"glyphs\": [ {\"id\": \"fixed\", \"class\": \"glyph/rect\", \"marks\": [{\"id\": \"m\", \"class\": \"mark/anchor\"}]} ]\n}")

	_, h1, err := r.Load(Options{Document: compact})
	if err != nil {
		t.Fatalf("Load compact: %v", err)
	}
	_, h2, err := r.Load(Options{Document: spaced})
	if err != nil {
		t.Fatalf("Load spaced: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hashes differ: %s vs %s", h1, h2)
	}
}

func TestSolveKeyOpts(t *testing.T) {
	plain := Options{}
	if got := plain.SolveKeyOpts(); got.Pins != "" {
		t.Errorf("Pins = %q, want empty", got.Pins)
	}

	pinned := Options{Pins: []chart.Constraint{chart.Pin(chart.GlyphAttr(0, "x"), 1, solver.Hard)}}
	if got := pinned.SolveKeyOpts(); got.Pins == "" {
		t.Error("pinned options produced an empty key component")
	}
}
