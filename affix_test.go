package unmunch

import (
	"reflect"
	"testing"
)

func mustEntry(t *testing.T, strip, affix, cond string, cont FlagSet) AffixEntry {
	t.Helper()
	entry, err := NewAffixEntry(strip, affix, cond, cont)
	if err != nil {
		t.Fatalf("NewAffixEntry(%q, %q, %q) failed: %v", strip, affix, cond, err)
	}
	return entry
}

func TestSuffixApply(t *testing.T) {
	entry := mustEntry(t, "", "s", "[^sxyz]", nil)
	stem := []rune("cat")
	if !entry.canApply(stem, Suffix, false) {
		t.Fatalf("entry should apply to cat")
	}
	if got := entry.apply(stem, Suffix); got != "cats" {
		t.Fatalf("apply mismatch: got %q, want %q", got, "cats")
	}
	if entry.canApply([]rune("bus"), Suffix, false) {
		t.Fatalf("entry should not apply to bus")
	}
}

func TestSuffixStripApply(t *testing.T) {
	entry := mustEntry(t, "y", "ies", "[^aeiou]y", nil)
	stem := []rune("fly")
	if !entry.canApply(stem, Suffix, false) {
		t.Fatalf("entry should apply to fly")
	}
	if got := entry.apply(stem, Suffix); got != "flies" {
		t.Fatalf("apply mismatch: got %q, want %q", got, "flies")
	}
	if entry.canApply([]rune("say"), Suffix, false) {
		t.Fatalf("vowel+y stems must be rejected")
	}
}

func TestPrefixApply(t *testing.T) {
	entry := mustEntry(t, "", "un", ".", nil)
	stem := []rune("happy")
	if !entry.canApply(stem, Prefix, false) {
		t.Fatalf("entry should apply to happy")
	}
	if got := entry.apply(stem, Prefix); got != "unhappy" {
		t.Fatalf("apply mismatch: got %q, want %q", got, "unhappy")
	}
}

func TestPrefixStripApply(t *testing.T) {
	entry := mustEntry(t, "in", "im", "in", nil)
	stem := []rune("inpossible")
	if !entry.canApply(stem, Prefix, false) {
		t.Fatalf("entry should apply to inpossible")
	}
	if got := entry.apply(stem, Prefix); got != "impossible" {
		t.Fatalf("apply mismatch: got %q, want %q", got, "impossible")
	}
	if entry.canApply([]rune("possible"), Prefix, false) {
		t.Fatalf("strip must be present at the head")
	}
}

func TestApplyUnicode(t *testing.T) {
	entry := mustEntry(t, "e", "en", "ße", nil)
	stem := []rune("straße")
	if !entry.canApply(stem, Suffix, false) {
		t.Fatalf("entry should apply to straße")
	}
	if got := entry.apply(stem, Suffix); got != "straßen" {
		t.Fatalf("apply mismatch: got %q, want %q", got, "straßen")
	}
	if entry.canApply([]rune("masse"), Suffix, false) {
		t.Fatalf("ße condition should reject masse")
	}
}

func TestFullStripGate(t *testing.T) {
	entry := mustEntry(t, "do", "did", ".", nil)
	stem := []rune("do")
	if entry.canApply(stem, Suffix, false) {
		t.Fatalf("stripping the whole stem requires FULLSTRIP")
	}
	if !entry.canApply(stem, Suffix, true) {
		t.Fatalf("FULLSTRIP should allow stripping the whole stem")
	}
	if got := entry.apply(stem, Suffix); got != "did" {
		t.Fatalf("apply mismatch: got %q, want %q", got, "did")
	}
}

func TestReverseApplyRoundTrip(t *testing.T) {
	entry := mustEntry(t, "y", "ies", "[^aeiou]y", nil)
	stem := []rune("fly")
	produced := entry.apply(stem, Suffix)
	back, ok := entry.reverseApply([]rune(produced), Suffix)
	if !ok {
		t.Fatalf("reverseApply should succeed on %q", produced)
	}
	if string(back) != "fly" {
		t.Fatalf("round trip mismatch: got %q, want %q", string(back), "fly")
	}

	prefix := mustEntry(t, "", "un", ".", nil)
	produced = prefix.apply([]rune("do"), Prefix)
	back, ok = prefix.reverseApply([]rune(produced), Prefix)
	if !ok || string(back) != "do" {
		t.Fatalf("prefix round trip mismatch: got %q ok=%v", string(back), ok)
	}
}

func TestReverseApplyRejectsMissingAffix(t *testing.T) {
	entry := mustEntry(t, "", "s", ".", nil)
	if _, ok := entry.reverseApply([]rune("cat"), Suffix); ok {
		t.Fatalf("reverseApply must fail when the affix is absent")
	}
	empty := mustEntry(t, "", "", ".", nil)
	if _, ok := empty.reverseApply([]rune("cat"), Suffix); ok {
		t.Fatalf("reverseApply must fail for empty affixes")
	}
}

func TestAffixFileClassRegistry(t *testing.T) {
	aff := NewAffixFile()
	pfx := &AffixClass{Flag: 'A', Kind: Prefix, CrossProduct: true}
	sfx := &AffixClass{Flag: 'A', Kind: Suffix}
	if err := aff.AddClass(pfx); err != nil {
		t.Fatalf("AddClass failed: %v", err)
	}
	if err := aff.AddClass(sfx); err != nil {
		t.Fatalf("same flag may select a prefix and a suffix class: %v", err)
	}
	if err := aff.AddClass(&AffixClass{Flag: 'A', Kind: Prefix}); err == nil {
		t.Fatalf("expected duplicate class error")
	}
	if got, ok := aff.PrefixClass('A'); !ok || got != pfx {
		t.Fatalf("prefix lookup mismatch")
	}
	if got, ok := aff.SuffixClass('A'); !ok || got != sfx {
		t.Fatalf("suffix lookup mismatch")
	}
	if !reflect.DeepEqual(aff.AllFlags(), NewFlagSet('A')) {
		t.Fatalf("AllFlags mismatch: %v", aff.AllFlags())
	}
}
