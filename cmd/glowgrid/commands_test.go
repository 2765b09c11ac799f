package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/glowgrid/internal/grid"
)

func TestSampleCell(t *testing.T) {
	w := grid.DefaultWave()
	start := time.UnixMilli(1_700_000_000_000)

	r, g, b := sampleCell(w, 4, 4, 1, 2, start, 10*time.Second, 11)
	if len(r) != 11 || len(g) != 11 || len(b) != 11 {
		t.Fatalf("expected 11 samples per channel, got %d/%d/%d", len(r), len(g), len(b))
	}

	wr, wg, wb := w.Color(1, 2, 4, 4, float64(start.Add(5*time.Second).UnixMilli()))
	if r[5] != wr || g[5] != wg || b[5] != wb {
		t.Errorf("sample 5 = (%v,%v,%v), want (%v,%v,%v)", r[5], g[5], b[5], wr, wg, wb)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")

	err := writeFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "<svg/>")
		return err
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileAtomic_FailureLeavesTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	err := writeFileAtomic(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("render failed")
	})
	if err == nil {
		t.Fatal("expected error")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "old" {
		t.Errorf("target overwritten: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %d entries", len(entries))
	}
}
