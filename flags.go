package unmunch

import (
	"fmt"
	"sort"
	"strconv"
)

// FlagMode selects how flag fields are decoded. It is set by the FLAG
// directive of an affix file and defaults to single-byte flags.
type FlagMode int

const (
	FlagSingle  FlagMode = iota // one byte per flag
	FlagLong                    // two bytes per flag
	FlagNumeric                 // decimal flags separated by ','
	FlagUTF8                    // one Unicode scalar per flag
)

func (m FlagMode) String() string {
	switch m {
	case FlagSingle:
		return "single"
	case FlagLong:
		return "long"
	case FlagNumeric:
		return "num"
	case FlagUTF8:
		return "UTF-8"
	}
	return fmt.Sprintf("FlagMode(%d)", int(m))
}

// ParseFlagMode decodes the argument of a FLAG directive.
func ParseFlagMode(s string) (FlagMode, error) {
	switch s {
	case "long":
		return FlagLong, nil
	case "num":
		return FlagNumeric, nil
	case "UTF-8":
		return FlagUTF8, nil
	}
	return FlagSingle, fmt.Errorf("unknown FLAG mode %q", s)
}

// Flag identifies one affix class. In UTF-8 mode flag values carry full
// Unicode scalars, so the type is wider than a byte.
type Flag uint32

// FlagSet is a sorted, duplicate-free set of flags.
type FlagSet []Flag

// NewFlagSet builds a set from arbitrary flag values.
func NewFlagSet(flags ...Flag) FlagSet {
	if len(flags) == 0 {
		return nil
	}
	fs := make(FlagSet, len(flags))
	copy(fs, flags)
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
	out := fs[:1]
	for _, f := range fs[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}

// Has reports set membership.
func (fs FlagSet) Has(f Flag) bool {
	i := sort.Search(len(fs), func(i int) bool { return fs[i] >= f })
	return i < len(fs) && fs[i] == f
}

// key returns a canonical string form, usable as a map key.
func (fs FlagSet) key() string {
	b := make([]byte, 0, len(fs)*4)
	for _, f := range fs {
		b = strconv.AppendUint(b, uint64(f), 10)
		b = append(b, ',')
	}
	return string(b)
}

// decodeFlags splits field into flags under mode, without alias resolution.
func decodeFlags(field string, mode FlagMode) (FlagSet, error) {
	if field == "" {
		return nil, nil
	}
	var flags []Flag
	switch mode {
	case FlagSingle:
		for i := 0; i < len(field); i++ {
			flags = append(flags, Flag(field[i]))
		}
	case FlagLong:
		if len(field)%2 != 0 {
			return nil, fmt.Errorf("invalid flag field %q: odd length under long mode", field)
		}
		for i := 0; i < len(field); i += 2 {
			flags = append(flags, Flag(field[i])<<8|Flag(field[i+1]))
		}
	case FlagNumeric:
		start := 0
		for i := 0; i <= len(field); i++ {
			if i < len(field) && field[i] != ',' {
				continue
			}
			n, err := strconv.ParseUint(field[start:i], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid flag field %q: %q is not a decimal flag", field, field[start:i])
			}
			flags = append(flags, Flag(n))
			start = i + 1
		}
	case FlagUTF8:
		for _, r := range field {
			flags = append(flags, Flag(r))
		}
	default:
		return nil, fmt.Errorf("invalid flag mode %d", int(mode))
	}
	return NewFlagSet(flags...), nil
}

// ParseFlagField decodes a flag field under mode, resolving alias indices.
//
// If aliases is non-empty and the entire field is a decimal integer, the
// field selects an alias set instead of raw flags. An all-decimal field
// outside 1..len(aliases) is an error in that case; without aliases, digits
// decode as ordinary flags under the active mode.
func ParseFlagField(field string, mode FlagMode, aliases []FlagSet) (FlagSet, error) {
	if field == "" {
		return nil, nil
	}
	if len(aliases) > 0 && allDigits(field) {
		n, err := strconv.ParseUint(field, 10, 32)
		if err != nil || n < 1 || n > uint64(len(aliases)) {
			return nil, fmt.Errorf("alias index %q out of range 1..%d", field, len(aliases))
		}
		return aliases[n-1], nil
	}
	return decodeFlags(field, mode)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
