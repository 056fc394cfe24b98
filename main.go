// Package main generates stage sign PDFs from a list of names.
// Each name becomes one landscape 11x17 page carrying the name at the
// largest font size that fits within the margins, centered both ways.
// Multi-word names are wrapped across lines when that allows a larger size.
//
// Usage: stagesigns [flags] names.txt signs.pdf
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	// Version
	version = "1.0.0"

	// Font size search bounds in points. Most entries are names, so 50pt
	// is a sane floor; anything below it is unreadable from the audience.
	defaultFontMin = 50
	defaultFontMax = 400

	// Page layout in millimeters.
	defaultMargin  = 10.0
	defaultLeading = 5.0 // extra spacing between stacked lines
)

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

type options struct {
	fontPath string
	fontMin  float64
	fontMax  float64
	margin   float64
	leading  float64
}

func main() {
	fontPath := flag.String("font", "", "path to a TTF font (default: Helvetica core font)")
	fontMin := flag.Float64("min", defaultFontMin, "minimum font size in points")
	fontMax := flag.Float64("max", defaultFontMax, "maximum font size in points")
	margin := flag.Float64("margin", defaultMargin, "page margin in millimeters")
	leading := flag.Float64("leading", defaultLeading, "extra line spacing in millimeters")
	serveAddr := flag.String("serve", "", "run as an HTTP server on this address instead of reading a file")
	email := flag.Bool("email", false, "email the finished document using config.json")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("stagesigns v%s\n", version)
		return
	}

	opts := options{
		fontPath: *fontPath,
		fontMin:  *fontMin,
		fontMax:  *fontMax,
		margin:   *margin,
		leading:  *leading,
	}

	if *serveAddr != "" {
		if err := serve(*serveAddr, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: stagesigns [flags] names.txt signs.pdf\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Arg(1), *email, opts); err != nil {
		log.Fatal(err)
	}
}

// run generates one sign page per name and writes the document to outPath.
// Names that cannot be fitted are logged and skipped; the run only fails
// when the input is unusable or every single name failed.
func run(inPath, outPath string, email bool, opts options) error {
	names, err := readNamesFile(inPath)
	if err != nil {
		return err
	}

	doc, err := buildDocument(names, opts)
	if err != nil {
		return err
	}
	if err := doc.Save(outPath); err != nil {
		return err
	}
	log.Printf("wrote %d of %d signs to %s", doc.PageCount(), len(names), outPath)

	if email {
		cfg, err := loadConfig("config.json")
		if err != nil {
			return err
		}
		data, err := os.ReadFile(outPath)
		if err != nil {
			return fmt.Errorf("failed to read %s for mailing: %w", outPath, err)
		}
		return sendEmail(cfg, "Stage signs", Attachment{Filename: "signs.pdf", Data: data})
	}
	return nil
}

// buildDocument fits and renders every name into a fresh document.
func buildDocument(names []Name, opts options) (*Document, error) {
	doc, err := NewDocument(opts.fontPath, opts.margin, opts.leading)
	if err != nil {
		return nil, err
	}

	fitter := &Fitter{
		M:       doc.Measurer(),
		Geo:     doc.Geometry(),
		MinSize: opts.fontMin,
		MaxSize: opts.fontMax,
	}

	for _, name := range names {
		layout, err := fitter.Fit(name)
		if err != nil {
			var fitErr *FitError
			if errors.As(err, &fitErr) {
				log.Printf("skipping %q: %v", name, err)
				continue
			}
			return nil, err
		}

		if err := doc.AddSign(layout); err != nil {
			log.Printf("skipping %q: %v", name, err)
			continue
		}
		log.Printf("%s: %d line(s) at %.1fpt", name, len(layout.Lines), layout.Size)
	}

	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("no name could be placed within the page bounds")
	}
	return doc, nil
}
