/*
Package unmunch expands Hunspell-style dictionaries into full word lists.

Hunspell stores a language as a compact pair of files: a dictionary of
stems annotated with flags ("happy/A"), and an affix file of prefix and
suffix rules selected by those flags. This package implements the inverse
of that compression (the classic "unmunch" operation) by applying every
authorized rule to every stem, including rule continuations and
prefix/suffix cross products. It also implements one-step base-word
recovery: given an inflected surface form, it proposes the dictionary
stems the form could have been derived from.

File format parsing is intentionally outside the base package. Use the
adapter package hunspell to parse the .aff/.dic text formats and feed the
model here.

Typical usage:

	aff, _ := hunspell.LoadAffix(affReader)
	dict, _ := hunspell.LoadDictionary(dicReader, aff)
	x := unmunch.NewExpander(aff)
	x.ExpandAll(dict, func(form string) {
		fmt.Println(form)
	})

The affix model and the dictionary are immutable after loading and may be
shared by reference across goroutines; the expander keeps per-call scratch
only.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package unmunch

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'unmunch'
func tracer() tracing.Trace {
	return tracing.Select("unmunch")
}
