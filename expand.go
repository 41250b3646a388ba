package unmunch

// Expander applies affix rules to stems. It is cheap to construct and
// keeps no state between calls; all scratch (dedup set, visited set) is
// per call, so one expander may serve concurrent callers.
type Expander struct {
	aff *AffixFile
}

// NewExpander returns an expander over the given affix model.
func NewExpander(aff *AffixFile) *Expander {
	return &Expander{aff: aff}
}

// direction restricts which affix kinds a continuation may still apply.
// A suffix-derived form continues with suffixes only, a prefix-derived
// form with prefixes only.
type direction int

const (
	dirBoth direction = iota
	dirPrefixes
	dirSuffixes
)

// continuationTask is a produced form scheduled for further affixation.
type continuationTask struct {
	form  string
	flags FlagSet
	dir   direction
}

// Expand enumerates the surface forms derivable from stem under flags and
// calls emit exactly once per distinct form. Emission order is
// deterministic: the stem itself, prefix applications in declaration
// order, suffix applications in declaration order, cross products in
// (prefix class, suffix class) order, then continuations recursively.
//
// Flags that select no class are silently ignored.
func (x *Expander) Expand(stem string, flags FlagSet, emit func(string)) {
	seen := make(map[string]struct{})
	visited := make(map[string]struct{})
	emitOnce := func(form string) {
		if _, dup := seen[form]; dup {
			return
		}
		seen[form] = struct{}{}
		emit(form)
	}
	x.expand(stem, flags, dirBoth, 0, x.continuationBound(flags), visited, emitOnce)
}

// continuationBound counts the distinct rule classes reachable from flags
// through transitive continuations. Continuation recursion is cut off at
// that depth, so a self-continuing class cannot grow a form forever while
// legitimate deep morphology is never truncated.
func (x *Expander) continuationBound(flags FlagSet) int {
	classes := make(map[*AffixClass]struct{})
	queue := []FlagSet{flags}
	enqueue := func(class *AffixClass) {
		if _, known := classes[class]; known {
			return
		}
		classes[class] = struct{}{}
		for i := range class.Entries {
			if len(class.Entries[i].Continuation) > 0 {
				queue = append(queue, class.Entries[i].Continuation)
			}
		}
	}
	for len(queue) > 0 {
		fs := queue[0]
		queue = queue[1:]
		for _, f := range fs {
			if class, ok := x.aff.PrefixClass(f); ok {
				enqueue(class)
			}
			if class, ok := x.aff.SuffixClass(f); ok {
				enqueue(class)
			}
		}
	}
	return len(classes)
}

// ExpandWithFlags is Expand materialized into a slice.
func (x *Expander) ExpandWithFlags(stem string, flags FlagSet) []string {
	var forms []string
	x.Expand(stem, flags, func(form string) {
		forms = append(forms, form)
	})
	return forms
}

// ExpandUnknown expands a word of unknown flags against every defined
// class, the behavior for expand-mode input when no dictionary is loaded.
// Output volume may explode for large rule sets.
func (x *Expander) ExpandUnknown(word string) []string {
	return x.ExpandWithFlags(word, x.aff.AllFlags())
}

// ExpandAll unmunches a whole dictionary, streaming each form to emit.
// Deduplication is per stem: two stems producing the same surface form
// both emit it, which keeps memory bounded by a single stem's expansion.
func (x *Expander) ExpandAll(dict *Dictionary, emit func(string)) {
	for _, entry := range dict.Entries() {
		x.Expand(entry.Stem, entry.Flags, emit)
	}
}

func (x *Expander) expand(form string, flags FlagSet, dir direction,
	depth, maxDepth int, visited map[string]struct{}, emitOnce func(string)) {
	//
	key := visitKey(form, flags, dir)
	if _, done := visited[key]; done {
		return
	}
	visited[key] = struct{}{}
	emitOnce(form)

	stem := []rune(form)
	var pending []continuationTask
	if dir != dirSuffixes {
		for _, class := range x.aff.Prefixes() {
			if !flags.Has(class.Flag) {
				continue
			}
			for i := range class.Entries {
				entry := &class.Entries[i]
				if !entry.canApply(stem, Prefix, x.aff.FullStrip) {
					continue
				}
				produced := entry.apply(stem, Prefix)
				emitOnce(produced)
				if len(entry.Continuation) > 0 {
					pending = append(pending, continuationTask{produced, entry.Continuation, dirPrefixes})
				}
			}
		}
	}
	if dir != dirPrefixes {
		for _, class := range x.aff.Suffixes() {
			if !flags.Has(class.Flag) {
				continue
			}
			for i := range class.Entries {
				entry := &class.Entries[i]
				if !entry.canApply(stem, Suffix, x.aff.FullStrip) {
					continue
				}
				produced := entry.apply(stem, Suffix)
				emitOnce(produced)
				if len(entry.Continuation) > 0 {
					pending = append(pending, continuationTask{produced, entry.Continuation, dirSuffixes})
				}
			}
		}
	}
	if dir == dirBoth {
		x.crossProducts(stem, flags, emitOnce)
	}
	if depth < maxDepth {
		for _, task := range pending {
			x.expand(task.form, task.flags, task.dir, depth+1, maxDepth, visited, emitOnce)
		}
	}
}

// crossProducts combines every applicable prefix entry with every
// applicable suffix entry on the same stem, for class pairs that both
// permit cross products. Following Hunspell's definition, both strips are
// removed from the stem and both affixes appended, so prefix-then-suffix
// and suffix-then-prefix agree.
func (x *Expander) crossProducts(stem []rune, flags FlagSet, emitOnce func(string)) {
	for _, pclass := range x.aff.Prefixes() {
		if !pclass.CrossProduct || !flags.Has(pclass.Flag) {
			continue
		}
		for _, sclass := range x.aff.Suffixes() {
			if !sclass.CrossProduct || !flags.Has(sclass.Flag) {
				continue
			}
			for i := range pclass.Entries {
				pentry := &pclass.Entries[i]
				if !pentry.canApply(stem, Prefix, x.aff.FullStrip) {
					continue
				}
				for j := range sclass.Entries {
					sentry := &sclass.Entries[j]
					if !sentry.canApply(stem, Suffix, x.aff.FullStrip) {
						continue
					}
					if len(pentry.stripRunes)+len(sentry.stripRunes) > len(stem) {
						continue
					}
					emitOnce(applyBoth(stem, pentry, sentry))
				}
			}
		}
	}
}

func applyBoth(stem []rune, pentry, sentry *AffixEntry) string {
	mid := stem[len(pentry.stripRunes) : len(stem)-len(sentry.stripRunes)]
	out := make([]rune, 0, len(pentry.affixRunes)+len(mid)+len(sentry.affixRunes))
	out = append(out, pentry.affixRunes...)
	out = append(out, mid...)
	out = append(out, sentry.affixRunes...)
	return string(out)
}

func visitKey(form string, flags FlagSet, dir direction) string {
	return form + "\x00" + string(rune('0'+dir)) + flags.key()
}
