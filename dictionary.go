package unmunch

import (
	"io"

	"github.com/derekparker/trie"
)

// Entry is one dictionary record: a stem, the flags authorizing affix
// classes for it, and an opaque morphological annotation that the engines
// carry along but never interpret.
type Entry struct {
	Stem  string
	Flags FlagSet
	Morph string
}

// EntryReader yields dictionary entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (stem string, flags FlagSet, morph string, err error)
}

// Dictionary is a loaded stem dictionary. Entries keep file order; exact
// stem lookup goes through a trie index. A stem listed twice keeps both
// entries, with lookup resolving to the last occurrence.
type Dictionary struct {
	entries []Entry
	index   *trie.Trie
}

// LoadEntries drains a streaming, format-agnostic source into a dictionary.
//
// File format parsing is intentionally outside the base package. Use
// adapters like package hunspell to parse concrete formats and feed this
// API.
func LoadEntries(reader EntryReader) (*Dictionary, error) {
	dict := &Dictionary{
		index: trie.New(),
	}
	for {
		stem, flags, morph, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		dict.add(Entry{Stem: stem, Flags: flags, Morph: morph})
	}
	tracer().Infof("dictionary loaded with %d entries", len(dict.entries))
	return dict, nil
}

// NewDictionary builds a dictionary from an in-memory entry list.
func NewDictionary(entries []Entry) *Dictionary {
	dict := &Dictionary{
		index: trie.New(),
	}
	for _, e := range entries {
		dict.add(e)
	}
	return dict
}

func (dict *Dictionary) add(e Entry) {
	dict.entries = append(dict.entries, e)
	dict.index.Add(e.Stem, len(dict.entries)-1)
}

// Lookup finds the entry for an exact stem.
func (dict *Dictionary) Lookup(stem string) (Entry, bool) {
	if dict == nil || dict.index == nil {
		return Entry{}, false
	}
	node, ok := dict.index.Find(stem)
	if !ok {
		return Entry{}, false
	}
	idx, ok := node.Meta().(int)
	if !ok {
		return Entry{}, false
	}
	return dict.entries[idx], true
}

// Entries returns all records in file order. The returned slice is the
// dictionary's backing store and must not be modified.
func (dict *Dictionary) Entries() []Entry {
	if dict == nil {
		return nil
	}
	return dict.entries
}

// Len returns the number of records.
func (dict *Dictionary) Len() int {
	if dict == nil {
		return 0
	}
	return len(dict.entries)
}
