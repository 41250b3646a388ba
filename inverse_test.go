package unmunch

import (
	"reflect"
	"testing"
)

func inverseFixture(t *testing.T) (*Expander, *Dictionary) {
	t.Helper()
	aff := crossProductAffix(t)
	dict := NewDictionary([]Entry{
		{Stem: "do", Flags: NewFlagSet('A', 'B')},
		{Stem: "cat", Flags: NewFlagSet('B')},
		{Stem: "stray"},
	})
	return NewExpander(aff), dict
}

func TestFindBaseIdentity(t *testing.T) {
	x, dict := inverseFixture(t)
	got := x.FindBase(dict, "do")
	if !reflect.DeepEqual(got, []string{"do"}) {
		t.Fatalf("identity base mismatch: %v", got)
	}
}

func TestFindBaseSuffix(t *testing.T) {
	x, dict := inverseFixture(t)
	got := x.FindBase(dict, "cats")
	if !reflect.DeepEqual(got, []string{"cat"}) {
		t.Fatalf("suffix base mismatch: %v", got)
	}
}

func TestFindBasePrefix(t *testing.T) {
	x, dict := inverseFixture(t)
	got := x.FindBase(dict, "undo")
	if !reflect.DeepEqual(got, []string{"do"}) {
		t.Fatalf("prefix base mismatch: %v", got)
	}
}

func TestFindBaseCrossProduct(t *testing.T) {
	x, dict := inverseFixture(t)
	got := x.FindBase(dict, "undos")
	if !reflect.DeepEqual(got, []string{"do"}) {
		t.Fatalf("cross-product base mismatch: %v", got)
	}
}

func TestFindBaseChecksFlags(t *testing.T) {
	x, dict := inverseFixture(t)
	// "cat" carries only the suffix flag, so "uncat" has no base.
	if got := x.FindBase(dict, "uncat"); len(got) != 0 {
		t.Fatalf("flag check failed, got %v", got)
	}
	// "stray" carries no flags at all.
	if got := x.FindBase(dict, "strays"); len(got) != 0 {
		t.Fatalf("flagless stem admitted, got %v", got)
	}
}

func TestFindBaseChecksCondition(t *testing.T) {
	aff := testAffixFile(t, &AffixClass{
		Flag: 'C', Kind: Suffix, CrossProduct: true,
		Entries: []AffixEntry{testEntry(t, "y", "ies", "[^aeiou]y", nil)},
	})
	dict := NewDictionary([]Entry{
		{Stem: "fly", Flags: NewFlagSet('C')},
		{Stem: "day", Flags: NewFlagSet('C')},
	})
	x := NewExpander(aff)
	if got := x.FindBase(dict, "flies"); !reflect.DeepEqual(got, []string{"fly"}) {
		t.Fatalf("strip restoration mismatch: %v", got)
	}
	// "daies" reverses to "day", but the condition rejects a vowel before y.
	if got := x.FindBase(dict, "daies"); len(got) != 0 {
		t.Fatalf("condition check failed, got %v", got)
	}
}

func TestFindBaseUnknownSurface(t *testing.T) {
	x, dict := inverseFixture(t)
	if got := x.FindBase(dict, "xyzzy"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if got := x.FindBaseAndExpand(dict, "xyzzy"); len(got) != 0 {
		t.Fatalf("expected empty expansion, got %v", got)
	}
}

func TestFindBaseAndExpand(t *testing.T) {
	x, dict := inverseFixture(t)
	got := x.FindBaseAndExpand(dict, "undos")
	want := []string{"do", "undo", "dos", "undos"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("base expansion mismatch: got %v, want %v", got, want)
	}
}

func TestFindBaseSoundness(t *testing.T) {
	x, dict := inverseFixture(t)
	for _, surface := range []string{"do", "undo", "dos", "undos", "cats"} {
		for _, base := range x.FindBase(dict, surface) {
			entry, ok := dict.Lookup(base)
			if !ok {
				t.Fatalf("recovered base %q is not a dictionary stem", base)
			}
			forms := x.ExpandWithFlags(entry.Stem, entry.Flags)
			found := false
			for _, form := range forms {
				if form == surface {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("base %q cannot derive %q (forms: %v)", base, surface, forms)
			}
		}
	}
}
