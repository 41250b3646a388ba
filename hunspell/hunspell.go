// Package hunspell parses the Hunspell .aff and .dic text formats and
// feeds them into the unmunch core model.
//
// The affix grammar is line-oriented with non-local state: a FLAG
// directive switches the flag encoding for every later line, and an AF
// alias table rewrites later flag fields. Parsing is therefore a single
// forward pass that threads the partially built model through.
//
// All input is normalized to NFC before interpretation, so rule
// conditions and dictionary stems agree on one representation of accented
// characters.
package hunspell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/unmunch"
	"golang.org/x/text/unicode/norm"
)

// tracer writes to trace with key 'unmunch.hunspell'
func tracer() tracing.Trace {
	return tracing.Select("unmunch.hunspell")
}

// Load parses an affix description and its dictionary in one call.
func Load(affReader, dicReader io.Reader) (*unmunch.AffixFile, *unmunch.Dictionary, error) {
	aff, err := LoadAffix(affReader)
	if err != nil {
		return nil, nil, err
	}
	dict, err := LoadDictionary(dicReader, aff)
	if err != nil {
		return nil, nil, err
	}
	return aff, dict, nil
}

// LoadAffix parses a Hunspell .aff description into an affix model.
//
// Recognized directives are FLAG, FULLSTRIP, AF, PFX and SFX; everything
// else (SET, TRY, KEY, REP, ...) is skipped. Parse errors are fatal and
// carry the 1-based source line; a partial model is never returned.
func LoadAffix(reader io.Reader) (*unmunch.AffixFile, error) {
	p := &affixParser{
		scanner: bufio.NewScanner(reader),
		aff:     unmunch.NewAffixFile(),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	tracer().Infof("affix file loaded: mode=%s, %d prefix classes, %d suffix classes, %d aliases",
		p.aff.Mode, len(p.aff.Prefixes()), len(p.aff.Suffixes()), len(p.aff.Aliases))
	return p.aff, nil
}

type affixParser struct {
	scanner *bufio.Scanner
	line    int // physical line of the most recent nextFields result
	aff     *unmunch.AffixFile
	// flagsUsed is set once any flag-carrying directive has been parsed;
	// a FLAG directive after that point would silently re-interpret
	// already-decoded fields, so it is rejected.
	flagsUsed bool
}

// nextFields returns the whitespace-split fields of the next line that is
// neither blank nor pure comment. Text after '#' is dropped.
func (p *affixParser) nextFields() ([]string, bool) {
	for p.scanner.Scan() {
		p.line++
		line := norm.NFC.String(p.scanner.Text())
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		return fields, true
	}
	return nil, false
}

func (p *affixParser) errf(format string, args ...interface{}) error {
	return &unmunch.AffixError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *affixParser) parse() error {
	for {
		fields, ok := p.nextFields()
		if !ok {
			break
		}
		var err error
		switch fields[0] {
		case "FLAG":
			err = p.parseFlagDirective(fields)
		case "FULLSTRIP":
			p.aff.FullStrip = true
		case "AF":
			err = p.parseAliasTable(fields)
		case "PFX":
			err = p.parseClass(fields, unmunch.Prefix)
		case "SFX":
			err = p.parseClass(fields, unmunch.Suffix)
		default:
			// SET, TRY, KEY and friends are spell-checker concerns.
		}
		if err != nil {
			return err
		}
	}
	return p.scanner.Err()
}

func (p *affixParser) parseFlagDirective(fields []string) error {
	if len(fields) < 2 {
		return p.errf("FLAG directive without mode")
	}
	if p.flagsUsed {
		return p.errf("FLAG directive after flag-carrying directives")
	}
	mode, err := unmunch.ParseFlagMode(fields[1])
	if err != nil {
		return p.errf("%v", err)
	}
	p.aff.Mode = mode
	return nil
}

// parseAliasTable reads "AF n" followed by n "AF <flagfield>" lines.
// Alias fields decode under the active mode without alias resolution,
// since the table is still being defined.
func (p *affixParser) parseAliasTable(fields []string) error {
	if len(fields) < 2 {
		return p.errf("AF directive without count")
	}
	if len(p.aff.Aliases) > 0 {
		return p.errf("second AF alias table")
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 1 {
		return p.errf("invalid AF count %q", fields[1])
	}
	p.flagsUsed = true
	aliases := make([]unmunch.FlagSet, 0, count)
	for i := 0; i < count; i++ {
		entry, ok := p.nextFields()
		if !ok {
			return p.errf("unexpected end of file inside AF table (%d of %d aliases read)", i, count)
		}
		if entry[0] != "AF" || len(entry) < 2 {
			return p.errf("expected AF alias line, got %q", strings.Join(entry, " "))
		}
		flags, err := unmunch.ParseFlagField(entry[1], p.aff.Mode, nil)
		if err != nil {
			return p.errf("%v", err)
		}
		aliases = append(aliases, flags)
	}
	p.aff.Aliases = aliases
	return nil
}

// parseClass reads a "PFX flag cross count" header and its entry lines.
// Blank and comment lines inside the block do not count toward count.
func (p *affixParser) parseClass(header []string, kind unmunch.AffixKind) error {
	if len(header) < 4 {
		return p.errf("truncated %s header", kind)
	}
	flag, err := p.parseClassFlag(header[1])
	if err != nil {
		return err
	}
	var cross bool
	switch header[2] {
	case "Y":
		cross = true
	case "N":
		cross = false
	default:
		return p.errf("%s cross-product marker must be Y or N, got %q", kind, header[2])
	}
	count, err := strconv.Atoi(header[3])
	if err != nil || count < 0 {
		return p.errf("invalid %s entry count %q", kind, header[3])
	}
	p.flagsUsed = true
	class := &unmunch.AffixClass{
		Flag:         flag,
		Kind:         kind,
		CrossProduct: cross,
		Entries:      make([]unmunch.AffixEntry, 0, count),
	}
	for i := 0; i < count; i++ {
		fields, ok := p.nextFields()
		if !ok {
			return p.errf("unexpected end of file inside %s %s block (%d of %d entries read)",
				kind, header[1], i, count)
		}
		entry, err := p.parseEntry(fields, kind, header[0], flag)
		if err != nil {
			return err
		}
		class.Entries = append(class.Entries, entry)
	}
	if err := p.aff.AddClass(class); err != nil {
		return p.errf("%v", err)
	}
	return nil
}

// parseClassFlag decodes a class header flag. Aliases never apply here;
// they rewrite dictionary and continuation fields only.
func (p *affixParser) parseClassFlag(field string) (unmunch.Flag, error) {
	flags, err := unmunch.ParseFlagField(field, p.aff.Mode, nil)
	if err != nil {
		return 0, p.errf("%v", err)
	}
	if len(flags) != 1 {
		return 0, p.errf("class flag %q must decode to exactly one flag", field)
	}
	return flags[0], nil
}

// parseEntry decodes one "PFX flag strip affix [condition] [morph...]"
// line. The affix field may carry continuation flags after a '/'.
func (p *affixParser) parseEntry(fields []string, kind unmunch.AffixKind,
	directive string, flag unmunch.Flag) (unmunch.AffixEntry, error) {
	//
	if len(fields) < 4 {
		return unmunch.AffixEntry{}, p.errf("truncated %s entry", kind)
	}
	if fields[0] != directive {
		return unmunch.AffixEntry{}, p.errf("expected %s entry, got %q", directive, fields[0])
	}
	entryFlag, err := p.parseClassFlag(fields[1])
	if err != nil {
		return unmunch.AffixEntry{}, err
	}
	if entryFlag != flag {
		return unmunch.AffixEntry{}, p.errf("entry flag %q does not match open %s class", fields[1], kind)
	}
	strip := fields[2]
	if strip == "0" {
		strip = ""
	}
	affixField, contField, _ := strings.Cut(fields[3], "/")
	if affixField == "0" {
		affixField = ""
	}
	var continuation unmunch.FlagSet
	if contField != "" {
		continuation, err = p.aff.ParseFlagField(contField)
		if err != nil {
			return unmunch.AffixEntry{}, p.errf("%v", err)
		}
	}
	cond := "."
	if len(fields) >= 5 {
		cond = fields[4]
	}
	entry, err := unmunch.NewAffixEntry(strip, affixField, cond, continuation)
	if err != nil {
		return unmunch.AffixEntry{}, p.errf("%v", err)
	}
	return entry, nil
}
