package main

import (
	"fmt"
	"math"
	"strings"
)

// ---------------------------------------------------------------------------
// Measurement
// ---------------------------------------------------------------------------

// Measurer reports rendered text dimensions for a single fixed font.
// Width is linear in the font size for a fixed text, so bounds can be
// computed from a measurement at size 1 and verified at the final size.
type Measurer interface {
	// TextWidth returns the rendered width of text at the given font size,
	// in document units.
	TextWidth(text string, size float64) float64

	// LineHeight returns the height one text line occupies at the given
	// font size, including leading.
	LineHeight(size float64) float64
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

// Geometry describes the page and its uniform margin, both in document units.
type Geometry struct {
	PageW  float64
	PageH  float64
	Margin float64
}

// UsableW returns the width of the printable area.
func (g Geometry) UsableW() float64 { return g.PageW - 2*g.Margin }

// UsableH returns the height of the printable area.
func (g Geometry) UsableH() float64 { return g.PageH - 2*g.Margin }

// Validate checks that the margins leave a printable area.
func (g Geometry) Validate() error {
	if g.UsableW() <= 0 || g.UsableH() <= 0 {
		return fmt.Errorf("margin %.1f leaves no printable area on a %.1fx%.1f page",
			g.Margin, g.PageW, g.PageH)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// Line is one rendered text line with its top-left origin and measured width.
type Line struct {
	Text string
	X    float64
	Y    float64
	W    float64
}

// Layout is the result of fitting one name: the wrapped lines with their
// placements, the uniform font size, and the block bounding box.
type Layout struct {
	Lines  []Line
	Size   float64
	Width  float64
	Height float64
}

// ---------------------------------------------------------------------------
// Fitter
// ---------------------------------------------------------------------------

const (
	// fitStepBack is how far the size is reduced when verification shows
	// an overflow after the closed-form computation.
	fitStepBack = 1.0

	// fitMaxSteps bounds the verification loop.
	fitMaxSteps = 16

	// fitTolerance absorbs floating point noise so a line computed to span
	// exactly the usable width is still accepted.
	fitTolerance = 1e-6
)

// FitError reports a name that cannot be placed within the page bounds at or
// above the minimum font size.
type FitError struct {
	Name string
	Size float64 // best achievable size, 0 if nothing was measurable
	Min  float64
}

func (e *FitError) Error() string {
	if e.Size > 0 {
		return fmt.Sprintf("cannot fit %q: best size %.1f is below minimum %.1f", e.Name, e.Size, e.Min)
	}
	return fmt.Sprintf("cannot fit %q within page bounds", e.Name)
}

// Fitter finds the largest uniform font size and line placement for a name
// within a page's usable area.
type Fitter struct {
	M       Measurer
	Geo     Geometry
	MinSize float64
	MaxSize float64
}

// Fit computes the layout for a name. Wrapping candidates are tried fewest
// lines first; the candidate reaching the largest font size wins, and on a
// tie the earlier (fewer-line) candidate is kept.
func (f *Fitter) Fit(name Name) (*Layout, error) {
	if len(name.Words) == 0 {
		return nil, &FitError{Name: name.String(), Min: f.MinSize}
	}

	var best *Layout
	for _, lines := range wrapCandidates(name.Words) {
		layout, err := f.fitLines(lines)
		if err != nil {
			continue
		}
		if best == nil || layout.Size > best.Size {
			best = layout
		}
	}

	if best == nil {
		return nil, &FitError{Name: name.String(), Size: f.bestSize(name), Min: f.MinSize}
	}
	return best, nil
}

// wrapCandidates returns the line wrappings to try, fewest lines first:
// the whole name on one line, every two-line split at a word boundary,
// and for three or more words each word on its own line.
func wrapCandidates(words []string) [][]string {
	candidates := [][]string{{strings.Join(words, " ")}}

	for i := 1; i < len(words); i++ {
		candidates = append(candidates, []string{
			strings.Join(words[:i], " "),
			strings.Join(words[i:], " "),
		})
	}

	if len(words) > 2 {
		candidates = append(candidates, words)
	}
	return candidates
}

// fitLines finds the largest size at which the given wrapping fits, then
// computes the centered placement for each line.
func (f *Fitter) fitLines(lines []string) (*Layout, error) {
	size := f.boundSize(lines)
	size = math.Min(size, f.MaxSize)

	// The closed form assumes perfectly linear metrics. Re-measure at the
	// computed size and step back until the rendering actually fits.
	fits := false
	for step := 0; step < fitMaxSteps; step++ {
		if size < f.MinSize {
			break
		}
		if f.verify(lines, size) {
			fits = true
			break
		}
		size -= fitStepBack
	}
	if !fits || size < f.MinSize {
		return nil, &FitError{Name: strings.Join(lines, " "), Size: size, Min: f.MinSize}
	}

	return f.place(lines, size), nil
}

// boundSize computes the closed-form size bound for a wrapping: the smallest
// per-line width bound, capped by the height bound for the stacked block.
func (f *Fitter) boundSize(lines []string) float64 {
	usableW, usableH := f.Geo.UsableW(), f.Geo.UsableH()

	bound := math.Inf(1)
	for _, line := range lines {
		unit := f.M.TextWidth(line, 1)
		if unit > 0 {
			bound = math.Min(bound, usableW/unit)
		}
	}

	// Line height is affine in size (scale plus constant leading), so two
	// probes recover the exact height-bound size.
	base := f.M.LineHeight(0)
	slope := f.M.LineHeight(1) - base
	if slope > 0 {
		n := float64(len(lines))
		bound = math.Min(bound, (usableH/n-base)/slope)
	}
	return bound
}

// verify re-measures the wrapping at the candidate size. Comparisons are
// inclusive: a line exactly as wide as the usable area is accepted.
func (f *Fitter) verify(lines []string, size float64) bool {
	usableW, usableH := f.Geo.UsableW(), f.Geo.UsableH()

	for _, line := range lines {
		if f.M.TextWidth(line, size) > usableW+fitTolerance {
			return false
		}
	}
	block := float64(len(lines)) * f.M.LineHeight(size)
	return block <= usableH+fitTolerance
}

// place centers every line horizontally and the whole block vertically
// within the usable area. Lines stack at the natural line height.
func (f *Fitter) place(lines []string, size float64) *Layout {
	lineHeight := f.M.LineHeight(size)
	block := float64(len(lines)) * lineHeight

	layout := &Layout{
		Size:   size,
		Height: block,
		Lines:  make([]Line, 0, len(lines)),
	}

	y := f.Geo.Margin + (f.Geo.UsableH()-block)/2
	for _, text := range lines {
		w := f.M.TextWidth(text, size)
		layout.Lines = append(layout.Lines, Line{
			Text: text,
			X:    f.Geo.Margin + (f.Geo.UsableW()-w)/2,
			Y:    y,
			W:    w,
		})
		layout.Width = math.Max(layout.Width, w)
		y += lineHeight
	}
	return layout
}

// bestSize reports the largest bound any wrapping reached, for error detail.
func (f *Fitter) bestSize(name Name) float64 {
	best := 0.0
	for _, lines := range wrapCandidates(name.Words) {
		if b := f.boundSize(lines); !math.IsInf(b, 1) {
			best = math.Max(best, math.Min(b, f.MaxSize))
		}
	}
	return best
}
