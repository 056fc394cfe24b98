// Command fontunlock rewrites the embedding-permission flag (fsType in the
// OS/2 table) of a TrueType font in place. Fonts shipped with fsType 2
// (restricted license embedding) cannot be embedded into PDFs by most
// tools; rewriting the flag to 4 (preview & print) unlocks them.
//
// Usage: fontunlock [-fstype 4] font.ttf
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
)

const (
	offsetTableSize = 12
	dirEntrySize    = 16

	// fsType position within the OS/2 table: after version (2),
	// xAvgCharWidth (2), usWeightClass (2) and usWidthClass (2).
	fsTypeOffset = 8

	// checkSumAdjustment position within the head table.
	adjustmentOffset = 8

	// The whole-file checksum must come out to this magic value.
	checksumMagic = 0xB1B0AFBA
)

func main() {
	fsType := flag.Uint("fstype", 4, "fsType value to write (2 = restricted, 4 = preview & print)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: fontunlock [-fstype 4] font.ttf\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *fsType != 2 && *fsType != 4 {
		log.Fatalf("unsupported fsType %d: use 2 (restricted) or 4 (preview & print)", *fsType)
	}

	path := flag.Arg(0)
	if err := rewriteFile(path, uint16(*fsType)); err != nil {
		log.Fatal(err)
	}
	log.Printf("set fsType=%d in %s", *fsType, path)
}

// rewriteFile patches the fsType flag of the font at path in place,
// preserving the file mode.
func rewriteFile(path string, fsType uint16) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat font: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font: %w", err)
	}

	patched, err := setFSType(data, fsType)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, patched, info.Mode()); err != nil {
		return fmt.Errorf("failed to write font: %w", err)
	}
	return nil
}

// tableEntry is one record of the font's table directory.
type tableEntry struct {
	dirOffset int // position of the directory record itself
	offset    uint32
	length    uint32
}

// setFSType returns a copy of the font with the OS/2 fsType flag replaced
// and both the table checksum and the head table's checkSumAdjustment
// recomputed, so consumers that validate checksums still accept the font.
func setFSType(font []byte, fsType uint16) ([]byte, error) {
	tables, err := readDirectory(font)
	if err != nil {
		return nil, err
	}

	os2, ok := tables["OS/2"]
	if !ok {
		return nil, fmt.Errorf("no OS/2 table")
	}
	if os2.length < fsTypeOffset+2 {
		return nil, fmt.Errorf("OS/2 table too short: %d bytes", os2.length)
	}
	head, ok := tables["head"]
	if !ok {
		return nil, fmt.Errorf("no head table")
	}
	if head.length < adjustmentOffset+4 {
		return nil, fmt.Errorf("head table too short: %d bytes", head.length)
	}

	data := bytes.Clone(font)
	binary.BigEndian.PutUint16(data[os2.offset+fsTypeOffset:], fsType)

	// Refresh the OS/2 entry's checksum in the directory.
	sum := tableChecksum(data[os2.offset : os2.offset+os2.length])
	binary.BigEndian.PutUint32(data[os2.dirOffset+4:], sum)

	// checkSumAdjustment makes the whole file sum to the magic value and is
	// itself excluded from the computation.
	binary.BigEndian.PutUint32(data[head.offset+adjustmentOffset:], 0)
	adjustment := checksumMagic - tableChecksum(data)
	binary.BigEndian.PutUint32(data[head.offset+adjustmentOffset:], adjustment)

	return data, nil
}

// readDirectory parses the offset table and table directory.
func readDirectory(font []byte) (map[string]tableEntry, error) {
	if len(font) < offsetTableSize {
		return nil, fmt.Errorf("not a TrueType font: %d bytes", len(font))
	}
	numTables := int(binary.BigEndian.Uint16(font[4:]))
	if len(font) < offsetTableSize+numTables*dirEntrySize {
		return nil, fmt.Errorf("truncated table directory")
	}

	tables := make(map[string]tableEntry, numTables)
	for i := 0; i < numTables; i++ {
		rec := offsetTableSize + i*dirEntrySize
		entry := tableEntry{
			dirOffset: rec,
			offset:    binary.BigEndian.Uint32(font[rec+8:]),
			length:    binary.BigEndian.Uint32(font[rec+12:]),
		}
		if uint64(entry.offset)+uint64(entry.length) > uint64(len(font)) {
			return nil, fmt.Errorf("table %q extends past end of file", font[rec:rec+4])
		}
		tables[string(font[rec:rec+4])] = entry
	}
	return tables, nil
}

// tableChecksum sums the data as big-endian uint32 words, zero-padding the
// final partial word, per the TrueType specification.
func tableChecksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
