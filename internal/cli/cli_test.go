package cli

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/rtfimage/internal/config"
	"github.com/ironsheep/rtfimage/internal/server"
	"golang.org/x/image/bmp"
	"gopkg.in/yaml.v3"
)

// isolateConfig points the CLI at a config file in a per-test directory and
// returns its path. The file does not exist yet.
func isolateConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, path)
	t.Setenv(config.EnvLogLevel, "")
	return path
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeImage(t *testing.T, name string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".jpg":
		err = jpeg.Encode(&buf, img, nil)
	case ".bmp":
		err = bmp.Encode(&buf, img)
	default:
		t.Fatalf("unsupported test image %s", name)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestSetVersion(t *testing.T) {
	oldVersion, oldServer := version, server.Version
	defer func() { version, server.Version = oldVersion, oldServer }()

	SetVersion("1.2.3")
	if version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got '%s'", version)
	}
	if server.Version != "1.2.3" {
		t.Errorf("server version not updated: %s", server.Version)
	}
}

func TestRootCommand(t *testing.T) {
	root := NewRootCmd()
	if root.Use != "rtfimage" {
		t.Errorf("expected Use 'rtfimage', got '%s'", root.Use)
	}
	if root.Short == "" {
		t.Error("expected Short description to be set")
	}

	for _, name := range []string{"serve", "render", "info", "config", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	oldVersion, oldTime := version, buildTime
	defer func() { version, buildTime = oldVersion, oldTime }()
	version = "9.9.9"
	SetBuildInfo("2026-01-02", "abc123")

	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, want := range []string{"rtfimage 9.9.9", "2026-01-02", "abc123"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}

func TestServe(t *testing.T) {
	isolateConfig(t)
	ping := `{"jsonrpc":"2.0","id":7,"method":"ping"}` + "\n"

	for _, args := range [][]string{{}, {"serve"}} {
		out, _, err := execute(t, ping, args...)
		if err != nil {
			t.Fatalf("serve %v failed: %v", args, err)
		}
		if !strings.Contains(out, `"id":7`) || !strings.Contains(out, `"result":{}`) {
			t.Errorf("unexpected ping response for %v: %q", args, out)
		}
	}
}

func TestServe_RejectsArguments(t *testing.T) {
	isolateConfig(t)
	if _, _, err := execute(t, "", "bogus"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestRender_ToFile(t *testing.T) {
	isolateConfig(t)
	img := writeImage(t, "chart.png", 40, 20)
	out := filepath.Join(t.TempDir(), "out.rtf")

	_, stderr, err := execute(t, "", "render", img, "-o", out, "--align", "center", "--width", "36")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stderr, "wrote "+out) {
		t.Errorf("expected progress message, got %q", stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "{\\rtf1\\ansi\\deff0{\\fonttbl{\\f0 Times New Roman;}}\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(got, "\n", 2)[0])
	}
	// A streamed image is 72pt square; halving the width halves the height.
	if !strings.Contains(got, "{\\pard\\qc\n{\\*\\shppict{\\pict\\pngblip\\pichgoal720\\picwgoal720\n") {
		t.Errorf("unexpected picture block:\n%s", got)
	}
	if !strings.Contains(got, "}}\n\\par}\n") {
		t.Error("default config should add a paragraph break")
	}
}

func TestRender_Stdout(t *testing.T) {
	isolateConfig(t)
	photo := writeImage(t, "photo.jpg", 96, 48)
	chart := writeImage(t, "chart.png", 10, 10)

	out, _, err := execute(t, "",
		"render", photo, chart,
		"--format", "ext", "--page-break", "--no-para",
		"--title", "Report", "--font", "Arial", "-q")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(out, "{\\f0 Arial;}") {
		t.Error("font flag not applied")
	}
	if !strings.Contains(out, "{\\pard\\qc{\\b Report}\\par}\n") {
		t.Error("title paragraph missing")
	}
	if !strings.Contains(out, "\\pagebb\n{\\*\\shppict{\\pict\\jpegblip\\pichgoal720\\picwgoal1440\n") {
		t.Errorf("declared jpeg should be sized from its resolution:\n%s", out)
	}
	if !strings.Contains(out, "\\pict\\pngblip") {
		t.Error("png block missing")
	}
	if strings.Contains(out, "}}\n\\par") {
		t.Error("--no-para should drop the paragraph break")
	}
}

func TestRender_ConfigDefaults(t *testing.T) {
	cfgPath := isolateConfig(t)
	yamlCfg := `image:
  align: right
  keep_aspect_ratio: true
  start_new_paragraph: false
  margins:
    top: 4
document:
  font: Courier New
`
	if err := os.WriteFile(cfgPath, []byte(yamlCfg), 0644); err != nil {
		t.Fatal(err)
	}
	img := writeImage(t, "a.png", 4, 4)

	out, _, err := execute(t, "", "render", img)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "{\\f0 Courier New;}") {
		t.Error("configured font not used")
	}
	if !strings.Contains(out, "{\\pard\\sb80\\qr\n") {
		t.Errorf("configured layout not applied:\n%s", out)
	}

	// Flags win over the file.
	out, _, err = execute(t, "", "render", img, "--align", "left", "--config", cfgPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "{\\pard\\sb80\\ql\n") {
		t.Errorf("align flag should override config:\n%s", out)
	}
}

func TestRender_Errors(t *testing.T) {
	isolateConfig(t)
	pngPath := writeImage(t, "ok.png", 4, 4)
	bmpPath := writeImage(t, "pic.bmp", 4, 4)

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"no images", []string{"render"}, "requires at least 1 arg"},
		{"bad align", []string{"render", pngPath, "--align", "up"}, "invalid align"},
		{"unsupported stream", []string{"render", bmpPath}, "unsupported image format"},
		{"unsupported declared", []string{"render", pngPath, "--format", "tiff"}, "unsupported image format"},
		{"unsupported extension", []string{"render", bmpPath, "--format", "ext"}, "unsupported image format"},
		{"missing file", []string{"render", "/nonexistent.png"}, "failed to open image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	isolateConfig(t)
	first := writeImage(t, "a.png", 192, 96)
	second := writeImage(t, "b.jpg", 48, 48)

	out, _, err := execute(t, "", "info", first, second)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}

	type entry struct {
		Path     string  `yaml:"path"`
		Width    int     `yaml:"width"`
		Format   string  `yaml:"format"`
		DPIX     float64 `yaml:"dpi_x"`
		WidthPt  float64 `yaml:"width_pt"`
		HeightPt float64 `yaml:"height_pt"`
	}
	var entries []entry
	dec := yaml.NewDecoder(strings.NewReader(out))
	for {
		var e entry
		if err := dec.Decode(&e); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("invalid YAML output: %v\n%s", err, out)
		}
		entries = append(entries, e)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(entries))
	}
	if e := entries[0]; e.Path != first || e.Format != "png" || e.Width != 192 || e.WidthPt != 144 || e.HeightPt != 72 {
		t.Errorf("unexpected first entry: %+v", e)
	}
	if e := entries[1]; e.Format != "jpeg" || e.DPIX != 96 {
		t.Errorf("unexpected second entry: %+v", e)
	}
}

func TestInfo_Error(t *testing.T) {
	isolateConfig(t)
	if _, _, err := execute(t, "", "info", "/nonexistent.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigCommands(t *testing.T) {
	cfgPath := isolateConfig(t)

	out, _, err := execute(t, "", "config", "path")
	if err != nil || strings.TrimSpace(out) != cfgPath {
		t.Errorf("config path: got %q, %v; want %s", out, err, cfgPath)
	}

	out, _, err = execute(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "(defaults)") || !strings.Contains(out, "font: Times New Roman") {
		t.Errorf("unexpected config show output:\n%s", out)
	}
	if !strings.Contains(out, config.EnvLogLevel) {
		t.Error("environment section missing")
	}

	if _, _, err := execute(t, "", "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if _, _, err := execute(t, "", "config", "init"); err == nil {
		t.Error("second init should fail without --force")
	}
	if _, _, err := execute(t, "", "config", "init", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}

	out, _, err = execute(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "Config file: "+cfgPath) {
		t.Errorf("show should name the existing file:\n%s", out)
	}
}
