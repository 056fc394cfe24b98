package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// testOptions uses the Helvetica core font so no font file is needed.
func testOptions() options {
	return options{
		fontMin: defaultFontMin,
		fontMax: defaultFontMax,
		margin:  defaultMargin,
		leading: defaultLeading,
	}
}

func TestNewDocumentGeometry(t *testing.T) {
	doc, err := NewDocument("", defaultMargin, defaultLeading)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	// Tabloid landscape: 17x11 inches in millimeters.
	geo := doc.Geometry()
	if math.Abs(geo.PageW-431.8) > 0.1 {
		t.Errorf("PageW = %v, want ≈431.8", geo.PageW)
	}
	if math.Abs(geo.PageH-279.4) > 0.1 {
		t.Errorf("PageH = %v, want ≈279.4", geo.PageH)
	}
	if geo.Margin != defaultMargin {
		t.Errorf("Margin = %v, want %v", geo.Margin, defaultMargin)
	}
}

func TestNewDocumentBadFont(t *testing.T) {
	_, err := NewDocument(filepath.Join(t.TempDir(), "missing.ttf"), defaultMargin, defaultLeading)
	if err == nil {
		t.Error("NewDocument() expected error for a missing font file")
	}
}

func TestNewDocumentBadMargin(t *testing.T) {
	_, err := NewDocument("", 300, defaultLeading)
	if err == nil {
		t.Error("NewDocument() expected error for margins larger than the page")
	}
}

func TestDocumentMeasurerLinearity(t *testing.T) {
	doc, err := NewDocument("", defaultMargin, defaultLeading)
	if err != nil {
		t.Fatal(err)
	}
	m := doc.Measurer()

	w10 := m.TextWidth("Ada Lovelace", 10)
	w20 := m.TextWidth("Ada Lovelace", 20)
	if w10 <= 0 {
		t.Fatalf("TextWidth = %v, want positive", w10)
	}
	if math.Abs(w20-2*w10) > 1e-6 {
		t.Errorf("width not linear in size: w(20)=%v, 2*w(10)=%v", w20, 2*w10)
	}

	h := m.LineHeight(100)
	if want := 100*ptToMM + defaultLeading; math.Abs(h-want) > 1e-9 {
		t.Errorf("LineHeight(100) = %v, want %v", h, want)
	}
}

func TestBuildDocument(t *testing.T) {
	names := []Name{
		{Words: []string{"Ada", "Lovelace"}},
		{Words: []string{"Bob"}},
	}

	doc, err := buildDocument(names, testOptions())
	if err != nil {
		t.Fatalf("buildDocument() error = %v", err)
	}
	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("output does not start with PDF magic bytes")
	}
}

func TestBuildDocumentSkipsUnfittable(t *testing.T) {
	// A 60pt minimum is out of reach for the absurdly long name even with
	// wrapping; the short name still gets its page.
	opts := testOptions()
	opts.fontMin = 60

	names := []Name{
		{Words: []string{"Bob"}},
		{Words: []string{"Antidisestablishmentarianism", "Pneumonoultramicroscopicsilicovolcanoconiosis"}},
	}

	doc, err := buildDocument(names, opts)
	if err != nil {
		t.Fatalf("buildDocument() error = %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1 (unfittable name skipped)", doc.PageCount())
	}
}

func TestBuildDocumentAllFail(t *testing.T) {
	opts := testOptions()
	opts.fontMin = 399
	opts.fontMax = 400

	names := []Name{
		{Words: []string{"Antidisestablishmentarianism", "Pneumonoultramicroscopicsilicovolcanoconiosis"}},
	}

	if _, err := buildDocument(names, opts); err == nil {
		t.Error("buildDocument() expected error when every name fails")
	}
}

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "names.txt")
	outPath := filepath.Join(dir, "signs.pdf")
	if err := os.WriteFile(inPath, []byte("Ada Lovelace\nBob\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(inPath, outPath, false, testOptions()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("run() output is not a PDF")
	}
}
