package unmunch

// FindBase proposes the dictionary stems that the surface form could have
// been derived from, by reversing one affix application, plus one
// prefix+suffix cross-product level. A candidate is admitted when its
// reconstruction satisfies the entry's condition and the dictionary flags
// of the candidate authorize the reversed class. The result keeps
// discovery order; an empty result is not an error.
//
// Continuation chains are intentionally not reversed beyond one step.
func (x *Expander) FindBase(dict *Dictionary, surface string) []string {
	var bases []string
	seen := make(map[string]struct{})
	admit := func(candidate string) {
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		bases = append(bases, candidate)
	}

	if _, ok := dict.Lookup(surface); ok {
		admit(surface)
	}
	word := []rune(surface)

	for _, class := range x.aff.Suffixes() {
		for i := range class.Entries {
			entry := &class.Entries[i]
			candidate, ok := entry.reverseApply(word, Suffix)
			if !ok || !entry.canApply(candidate, Suffix, x.aff.FullStrip) {
				continue
			}
			stem := string(candidate)
			if dictEntry, found := dict.Lookup(stem); found && dictEntry.Flags.Has(class.Flag) {
				admit(stem)
			}
		}
	}
	for _, class := range x.aff.Prefixes() {
		for i := range class.Entries {
			entry := &class.Entries[i]
			candidate, ok := entry.reverseApply(word, Prefix)
			if !ok || !entry.canApply(candidate, Prefix, x.aff.FullStrip) {
				continue
			}
			stem := string(candidate)
			if dictEntry, found := dict.Lookup(stem); found && dictEntry.Flags.Has(class.Flag) {
				admit(stem)
			}
		}
	}
	x.findCrossBases(dict, word, admit)
	return bases
}

// findCrossBases reverses one prefix and one suffix together, mirroring
// the forward cross-product rule: both classes must permit cross products
// and the candidate's flags must carry both class flags.
func (x *Expander) findCrossBases(dict *Dictionary, word []rune, admit func(string)) {
	for _, pclass := range x.aff.Prefixes() {
		if !pclass.CrossProduct {
			continue
		}
		for _, sclass := range x.aff.Suffixes() {
			if !sclass.CrossProduct {
				continue
			}
			for i := range pclass.Entries {
				pentry := &pclass.Entries[i]
				for j := range sclass.Entries {
					sentry := &sclass.Entries[j]
					candidate, ok := reverseBoth(word, pentry, sentry)
					if !ok {
						continue
					}
					if !pentry.canApply(candidate, Prefix, x.aff.FullStrip) ||
						!sentry.canApply(candidate, Suffix, x.aff.FullStrip) {
						continue
					}
					if len(pentry.stripRunes)+len(sentry.stripRunes) > len(candidate) {
						continue
					}
					stem := string(candidate)
					dictEntry, found := dict.Lookup(stem)
					if found && dictEntry.Flags.Has(pclass.Flag) && dictEntry.Flags.Has(sclass.Flag) {
						admit(stem)
					}
				}
			}
		}
	}
}

// reverseBoth removes a prefix affix from the head and a suffix affix
// from the tail, restoring both stripped parts. Both affixes must be
// non-empty, otherwise the pair degenerates to a single reversal.
func reverseBoth(word []rune, pentry, sentry *AffixEntry) ([]rune, bool) {
	if len(pentry.affixRunes) == 0 || len(sentry.affixRunes) == 0 {
		return nil, false
	}
	if len(word) < len(pentry.affixRunes)+len(sentry.affixRunes) {
		return nil, false
	}
	if !hasRunePrefix(word, pentry.affixRunes) || !hasRuneSuffix(word, sentry.affixRunes) {
		return nil, false
	}
	mid := word[len(pentry.affixRunes) : len(word)-len(sentry.affixRunes)]
	candidate := make([]rune, 0, len(pentry.stripRunes)+len(mid)+len(sentry.stripRunes))
	candidate = append(candidate, pentry.stripRunes...)
	candidate = append(candidate, mid...)
	candidate = append(candidate, sentry.stripRunes...)
	return candidate, true
}

// FindBaseAndExpand recovers base stems for a surface form and expands
// each with its dictionary flags, returning the deduplicated union in
// insertion order. The result is empty when no base is recovered.
func (x *Expander) FindBaseAndExpand(dict *Dictionary, surface string) []string {
	var forms []string
	seen := make(map[string]struct{})
	for _, base := range x.FindBase(dict, surface) {
		entry, ok := dict.Lookup(base)
		if !ok {
			continue
		}
		x.Expand(entry.Stem, entry.Flags, func(form string) {
			if _, dup := seen[form]; dup {
				return
			}
			seen[form] = struct{}{}
			forms = append(forms, form)
		})
	}
	return forms
}
