package hunspell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/unmunch"
	"golang.org/x/text/unicode/norm"
)

// DictReader streams dictionary entries from Hunspell .dic data.
//
// The first line declares the number of entries; the declaration is
// advisory and mismatches in either direction only produce a trace
// warning. Entry lines have the form
//
//	stem[/flagfield] [morphological fields...]
//
// Flag fields decode under the affix model's mode and alias table.
type DictReader struct {
	scanner  *bufio.Scanner
	aff      *unmunch.AffixFile
	line     int
	declared int
	read     int
	started  bool
}

// LoadDictionary parses Hunspell .dic data against a loaded affix model.
func LoadDictionary(reader io.Reader, aff *unmunch.AffixFile) (*unmunch.Dictionary, error) {
	return unmunch.LoadEntries(NewDictReader(reader, aff))
}

func NewDictReader(reader io.Reader, aff *unmunch.AffixFile) *DictReader {
	return &DictReader{
		scanner: bufio.NewScanner(reader),
		aff:     aff,
	}
}

// Next returns the next entry as (stem, flags, morph).
// It returns io.EOF when exhausted.
func (r *DictReader) Next() (string, unmunch.FlagSet, string, error) {
	if !r.started {
		r.started = true
		if err := r.readHeader(); err != nil {
			return "", nil, "", err
		}
	}
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(norm.NFC.String(r.scanner.Text()))
		if line == "" {
			continue
		}
		stem, flags, morph, err := r.parseEntry(line)
		if err != nil {
			return "", nil, "", err
		}
		r.read++
		return stem, flags, morph, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", nil, "", err
	}
	if r.read != r.declared {
		tracer().Infof("dictionary declared %d entries but contained %d", r.declared, r.read)
	}
	return "", nil, "", io.EOF
}

func (r *DictReader) readHeader() error {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return err
		}
		return &unmunch.DictionaryError{Line: 1, Msg: "empty dictionary file"}
	}
	r.line = 1
	header := strings.TrimSpace(r.scanner.Text())
	count, err := strconv.Atoi(header)
	if err != nil || count < 0 {
		return &unmunch.DictionaryError{Line: 1, Msg: fmt.Sprintf("invalid word count %q", header)}
	}
	r.declared = count
	return nil
}

// parseEntry splits "stem[/flagfield] [morph...]". Morphological fields
// after the first whitespace are retained verbatim but never interpreted.
func (r *DictReader) parseEntry(line string) (string, unmunch.FlagSet, string, error) {
	record := line
	morph := ""
	if idx := strings.IndexAny(line, " \t"); idx >= 0 {
		record = line[:idx]
		morph = strings.TrimSpace(line[idx+1:])
	}
	stem, flagField, hasFlags := strings.Cut(record, "/")
	if stem == "" {
		return "", nil, "", &unmunch.DictionaryError{Line: r.line, Msg: "entry without stem"}
	}
	var flags unmunch.FlagSet
	if hasFlags {
		var err error
		flags, err = r.aff.ParseFlagField(flagField)
		if err != nil {
			return "", nil, "", &unmunch.DictionaryError{Line: r.line, Msg: err.Error()}
		}
	}
	return stem, flags, morph, nil
}
