package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jmylchreest/dominant/internal/colour"
	"github.com/jmylchreest/dominant/internal/report"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSolid(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func TestExtractCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writeSolid(t, path, red)

	stdout, _, err := execute(t, "extract", "-c", "1", path)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}

	want := "Image: " + path + "\nDominant colors extracted:\nColor 1: #ff0000\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestExtractCommandSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "blue.png")
	writeSolid(t, good, blue)
	missing := filepath.Join(dir, "missing.png")

	stdout, stderr, err := execute(t, "extract", "-c", "2", missing, good)
	if err != nil {
		t.Fatalf("Per-image failures should not fail the command: %v", err)
	}
	if strings.Contains(stdout, missing) {
		t.Errorf("Missing image should print nothing, got %q", stdout)
	}
	if !strings.Contains(stdout, "Image: "+good) {
		t.Errorf("Expected report for %s, got %q", good, stdout)
	}
	if n := strings.Count(stderr, "[ERROR]"); n != 1 {
		t.Errorf("Expected exactly one error log line, got %d:\n%s", n, stderr)
	}
}

func TestExtractCommandRequiresArgs(t *testing.T) {
	if _, _, err := execute(t, "extract"); err == nil {
		t.Error("Expected error without image arguments")
	}
}

func TestInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writeSolid(t, path, red)

	tests := []struct {
		name string
		args []string
	}{
		{"zero colours", []string{"extract", "-c", "0", path}},
		{"too many colours", []string{"extract", "-c", "300", path}},
		{"unknown algorithm", []string{"extract", "--algorithm", "octree", path}},
		{"unknown seed mode", []string{"extract", "--seed-mode", "sometimes", path}},
		{"unknown format", []string{"extract", "-f", "yaml", path}},
		{"unknown log level", []string{"extract", "--log-level", "loud", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			if err == nil {
				t.Error("Expected an error")
			}
			if stdout != "" {
				t.Errorf("Expected no report, got %q", stdout)
			}
		})
	}
}

func TestEnvironmentSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writeSolid(t, path, red)

	t.Setenv("DOMINANT_FORMAT", "json")
	t.Setenv("DOMINANT_COLORS", "1")
	t.Setenv("DOMINANT_LOG_LEVEL", "off")

	stdout, stderr, err := execute(t, "extract", path)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if stderr != "" {
		t.Errorf("Expected logging to be off, got %q", stderr)
	}

	var got report.ImageJSON
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", stdout, err)
	}
	if got.Image != path || len(got.Colors) != 1 || got.Colors[0].Hex != "#ff0000" {
		t.Errorf("Unexpected report: %+v", got)
	}
	if got.Colors[0].Weight != 1 {
		t.Errorf("Expected the single cluster to carry all the weight, got %+v", got.Colors[0])
	}

	// Flags win over the environment.
	if _, _, err := execute(t, "extract", "-c", "0", path); err == nil {
		t.Error("Expected explicit --colors to override DOMINANT_COLORS")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	writeSolid(t, filepath.Join(dir, "a.png"), red)
	writeSolid(t, filepath.Join(dir, "sub", "b.png"), blue)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "analyze", "-c", "1", dir)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	want := "Image: a.png\nDominant colors extracted:\nColor 1: #ff0000\n" +
		"Image: b.png\nDominant colors extracted:\nColor 1: #0000ff\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestAnalyzeCommandDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeSolid(t, filepath.Join(dir, "one", "x.png"), red)
	writeSolid(t, filepath.Join(dir, "two", "x.png"), blue)
	writeSolid(t, filepath.Join(dir, "two", "y.png"), red)

	stdout, _, err := execute(t, "analyze", "-c", "1", dir)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	for _, want := range []string{
		"Image: " + filepath.Join("one", "x.png") + "\n",
		"Image: " + filepath.Join("two", "x.png") + "\n",
		"Image: y.png\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestAnalyzeCommandAggregate(t *testing.T) {
	dir := t.TempDir()
	writeSolid(t, filepath.Join(dir, "red.png"), red)
	writeSolid(t, filepath.Join(dir, "blue.png"), blue)

	stdout, _, err := execute(t, "analyze", "--aggregate", "-c", "1", dir)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	want := "Aggregated dominant colors for all images:\nDominant colors extracted:\nColor 1: #7f007f\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestAnalyzeCommandAggregateNothing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(t, "analyze", "--aggregate", dir)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if stdout != "" {
		t.Errorf("Expected no report, got %q", stdout)
	}
	if !strings.Contains(stderr, "nothing to aggregate") {
		t.Errorf("Expected warning, got %q", stderr)
	}
}

func TestAnalyzeCommandMissingDirectory(t *testing.T) {
	_, _, err := execute(t, "analyze", filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Error("Expected error for a missing directory")
	}
}

func TestPaletteOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "red.png")
	writeSolid(t, path, red)
	outDir := filepath.Join(dir, "palettes")

	if _, _, err := execute(t, "extract", "-c", "1", "--palette-out", outDir, path); err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "palette-001.png")); err != nil {
		t.Errorf("Expected palette file: %v", err)
	}
}

func TestShowDoesNotBlockWithoutTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writeSolid(t, path, red)

	stdout, _, err := execute(t, "extract", "--show", "-c", "1", path)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if !strings.Contains(stdout, "Color 1: #ff0000") {
		t.Errorf("Expected report after palette display, got %q", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "dominant version ") {
		t.Errorf("Unexpected version output %q", stdout)
	}
}

func TestAlgorithmsCommand(t *testing.T) {
	stdout, _, err := execute(t, "algorithms")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ALGORITHM", "kmeans", "mediancut", "TRANSPARENT PIXELS", "fully transparent images fail", "SEED MODE", "filepath"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestDefaultFlags(t *testing.T) {
	cmd := NewRootCmd()
	defaults := colour.DefaultExtractorConfig()

	if got := cmd.PersistentFlags().Lookup("colors").DefValue; got != strconv.Itoa(defaults.ColorCount) {
		t.Errorf("--colors default = %s, want %d", got, defaults.ColorCount)
	}
	if got := cmd.PersistentFlags().Lookup("algorithm").DefValue; got != string(defaults.Algorithm) {
		t.Errorf("--algorithm default = %s, want %s", got, defaults.Algorithm)
	}
}
