package website

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestResizeImagesDownscalesWideImages(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTestPNG(t, filepath.Join(src, "Big Photo.png"), 2400, 1200)

	if err := ResizeImages(src, dst); err != nil {
		t.Fatalf("ResizeImages failed: %v", err)
	}

	out := filepath.Join(dst, "big-photo.jpg")
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("expected output %s: %v", out, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfg.Width != maxImageWidth {
		t.Errorf("width = %d, want %d", cfg.Width, maxImageWidth)
	}
	if cfg.Height != 600 {
		t.Errorf("height = %d, want 600", cfg.Height)
	}
}

func TestResizeImagesKeepsSmallImages(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTestPNG(t, filepath.Join(src, "icon.png"), 100, 80)

	if err := ResizeImages(src, dst); err != nil {
		t.Fatalf("ResizeImages failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dst, "icon.jpg"))
	if err != nil {
		t.Fatalf("expected output: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 80 {
		t.Errorf("size = %dx%d, want 100x80", cfg.Width, cfg.Height)
	}
}

func TestResizeImagesSkipsNonImages(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ResizeImages(src, dst); err != nil {
		t.Fatalf("ResizeImages failed: %v", err)
	}
	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir should be empty, got %d entries", len(entries))
	}
}
