package unmunch

import "fmt"

// AffixKind discriminates prefix and suffix rules.
type AffixKind int

const (
	Prefix AffixKind = iota
	Suffix
)

func (k AffixKind) String() string {
	if k == Prefix {
		return "PFX"
	}
	return "SFX"
}

// AffixEntry is one rewrite rule of an affix class: strip characters from
// one end of the stem, append the affix there, gated by a condition on the
// stem. An entry may carry continuation flags that authorize further
// affixation of its output.
type AffixEntry struct {
	Strip        string
	Affix        string
	Condition    string // raw source form, "." if unconditional
	Continuation FlagSet

	cond       condition
	stripRunes []rune
	affixRunes []rune
}

// NewAffixEntry compiles an entry. strip and affix are given literally
// (already decoded from the file format's "0" convention for empty).
func NewAffixEntry(strip, affix, cond string, continuation FlagSet) (AffixEntry, error) {
	compiled, err := compileCondition(cond)
	if err != nil {
		return AffixEntry{}, err
	}
	if cond == "" {
		cond = "."
	}
	return AffixEntry{
		Strip:        strip,
		Affix:        affix,
		Condition:    cond,
		Continuation: continuation,
		cond:         compiled,
		stripRunes:   []rune(strip),
		affixRunes:   []rune(affix),
	}, nil
}

// canApply reports whether the entry applies to the stem: the condition
// must match the stem's head (prefix) or tail (suffix), and strip must be
// present at that end. Stripping the entire stem is only allowed under
// FULLSTRIP.
func (e *AffixEntry) canApply(stem []rune, kind AffixKind, fullstrip bool) bool {
	if len(stem) < len(e.stripRunes) {
		return false
	}
	if !fullstrip && len(e.stripRunes) == len(stem) && len(stem) > 0 {
		return false
	}
	if kind == Prefix {
		if !hasRunePrefix(stem, e.stripRunes) {
			return false
		}
		return e.cond.matchHead(stem)
	}
	if !hasRuneSuffix(stem, e.stripRunes) {
		return false
	}
	return e.cond.matchTail(stem)
}

// apply rewrites the stem. The caller has checked canApply.
func (e *AffixEntry) apply(stem []rune, kind AffixKind) string {
	out := make([]rune, 0, len(stem)-len(e.stripRunes)+len(e.affixRunes))
	if kind == Prefix {
		out = append(out, e.affixRunes...)
		out = append(out, stem[len(e.stripRunes):]...)
	} else {
		out = append(out, stem[:len(stem)-len(e.stripRunes)]...)
		out = append(out, e.affixRunes...)
	}
	return string(out)
}

// reverseApply undoes the entry on a surface form: remove the affix from
// the relevant end and restore the stripped characters. It reports false
// when the affix is empty or not present; the caller still has to check
// the condition and dictionary flags on the candidate.
func (e *AffixEntry) reverseApply(word []rune, kind AffixKind) ([]rune, bool) {
	if len(e.affixRunes) == 0 || len(word) < len(e.affixRunes) {
		return nil, false
	}
	var candidate []rune
	if kind == Prefix {
		if !hasRunePrefix(word, e.affixRunes) {
			return nil, false
		}
		candidate = make([]rune, 0, len(word)-len(e.affixRunes)+len(e.stripRunes))
		candidate = append(candidate, e.stripRunes...)
		candidate = append(candidate, word[len(e.affixRunes):]...)
	} else {
		if !hasRuneSuffix(word, e.affixRunes) {
			return nil, false
		}
		candidate = make([]rune, 0, len(word)-len(e.affixRunes)+len(e.stripRunes))
		candidate = append(candidate, word[:len(word)-len(e.affixRunes)]...)
		candidate = append(candidate, e.stripRunes...)
	}
	return candidate, true
}

func hasRunePrefix(word, prefix []rune) bool {
	if len(word) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if word[i] != r {
			return false
		}
	}
	return true
}

func hasRuneSuffix(word, suffix []rune) bool {
	if len(word) < len(suffix) {
		return false
	}
	off := len(word) - len(suffix)
	for i, r := range suffix {
		if word[off+i] != r {
			return false
		}
	}
	return true
}

// AffixClass groups the entries selected by one flag.
type AffixClass struct {
	Flag         Flag
	Kind         AffixKind
	CrossProduct bool
	Entries      []AffixEntry
}

// AffixFile is the parsed affix grammar: flag mode, alias table, and the
// prefix and suffix classes in declaration order.
type AffixFile struct {
	Mode      FlagMode
	FullStrip bool
	Aliases   []FlagSet

	prefixes     []*AffixClass
	suffixes     []*AffixClass
	prefixByFlag map[Flag]*AffixClass
	suffixByFlag map[Flag]*AffixClass
}

// NewAffixFile returns an empty model with single-byte flag mode.
func NewAffixFile() *AffixFile {
	return &AffixFile{
		prefixByFlag: make(map[Flag]*AffixClass),
		suffixByFlag: make(map[Flag]*AffixClass),
	}
}

// AddClass registers a parsed class, keeping declaration order. A second
// class for the same flag and kind is an error.
func (aff *AffixFile) AddClass(class *AffixClass) error {
	byFlag := aff.prefixByFlag
	if class.Kind == Suffix {
		byFlag = aff.suffixByFlag
	}
	if _, exists := byFlag[class.Flag]; exists {
		return fmt.Errorf("duplicate %s class for flag %d", class.Kind, class.Flag)
	}
	byFlag[class.Flag] = class
	if class.Kind == Prefix {
		aff.prefixes = append(aff.prefixes, class)
	} else {
		aff.suffixes = append(aff.suffixes, class)
	}
	return nil
}

// Prefixes returns prefix classes in declaration order.
func (aff *AffixFile) Prefixes() []*AffixClass { return aff.prefixes }

// Suffixes returns suffix classes in declaration order.
func (aff *AffixFile) Suffixes() []*AffixClass { return aff.suffixes }

// PrefixClass looks up the prefix class selected by flag.
func (aff *AffixFile) PrefixClass(f Flag) (*AffixClass, bool) {
	c, ok := aff.prefixByFlag[f]
	return c, ok
}

// SuffixClass looks up the suffix class selected by flag.
func (aff *AffixFile) SuffixClass(f Flag) (*AffixClass, bool) {
	c, ok := aff.suffixByFlag[f]
	return c, ok
}

// ParseFlagField decodes a flag field under the model's mode and aliases.
func (aff *AffixFile) ParseFlagField(field string) (FlagSet, error) {
	return ParseFlagField(field, aff.Mode, aff.Aliases)
}

// AllFlags returns the set of every flag that selects a class. It is the
// flag set assumed for words expanded without dictionary context.
func (aff *AffixFile) AllFlags() FlagSet {
	flags := make([]Flag, 0, len(aff.prefixes)+len(aff.suffixes))
	for _, c := range aff.prefixes {
		flags = append(flags, c.Flag)
	}
	for _, c := range aff.suffixes {
		flags = append(flags, c.Flag)
	}
	return NewFlagSet(flags...)
}
