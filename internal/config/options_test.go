package config

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ironsheep/rtfimage/internal/rtf"
)

// streamBlock returns a block sized 72x72pt, as FromStream sizes every image.
func streamBlock(t *testing.T) *rtf.ImageBlock {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 4))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	img, err := rtf.FromStream(&buf)
	if err != nil {
		t.Fatalf("FromStream failed: %v", err)
	}
	return img
}

func ptr[T any](v T) *T { return &v }

func TestBlockOptions_Apply(t *testing.T) {
	tests := []struct {
		name       string
		opts       BlockOptions
		wantWidth  float64
		wantHeight float64
		wantKeep   bool
	}{
		{"nothing", BlockOptions{}, 72, 72, true},
		{"width follows ratio", BlockOptions{Width: ptr(36.0)}, 36, 36, true},
		{"height follows ratio", BlockOptions{Height: ptr(144.0)}, 144, 144, true},
		{"both literal", BlockOptions{Width: ptr(100.0), Height: ptr(25.0)}, 100, 25, true},
		{"unlocked", BlockOptions{KeepAspectRatio: ptr(false), Width: ptr(10.0)}, 10, 72, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := streamBlock(t)
			if err := tt.opts.Apply(img); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if img.Width() != tt.wantWidth || img.Height() != tt.wantHeight {
				t.Errorf("size: got %vx%v, want %vx%v", img.Width(), img.Height(), tt.wantWidth, tt.wantHeight)
			}
			if img.KeepAspectRatio() != tt.wantKeep {
				t.Errorf("KeepAspectRatio: got %v, want %v", img.KeepAspectRatio(), tt.wantKeep)
			}
		})
	}
}

func TestBlockOptions_ApplyLayout(t *testing.T) {
	img := streamBlock(t)
	opts := BlockOptions{
		Align:             "center",
		StartNewPage:      ptr(true),
		StartNewParagraph: ptr(true),
		Margins:           MarginConfig{Top: ptr(2.0)},
	}
	if err := opts.Apply(img); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if img.Alignment() != rtf.AlignCenter {
		t.Errorf("Alignment: got %v, want center", img.Alignment())
	}
	if !img.StartNewPage() || !img.StartNewParagraph() {
		t.Error("break flags not applied")
	}
	if got := img.Margins().Get(rtf.Top); got != 2 {
		t.Errorf("top margin: got %v, want 2", got)
	}

	if err := (&BlockOptions{Align: "upward"}).Apply(img); err == nil {
		t.Error("expected error for invalid align")
	}
}

func TestBlockOptions_JSON(t *testing.T) {
	var got BlockOptions
	in := `{"align":"left","width":50,"start_new_page":false,"margins":{"left":1.5}}`
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := BlockOptions{
		Align:        "left",
		Width:        ptr(50.0),
		StartNewPage: ptr(false),
		Margins:      MarginConfig{Left: ptr(1.5)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded options mismatch (-want +got):\n%s", diff)
	}
}
