// Package bftext provides standalone Brainfuck-text utilities: stripping
// non-operator characters, wrapping/padding to a fixed column width, and the
// whole-program invariant checks spec.md §8 requires (character set,
// bracket balance). This package has no dependency on compiler internals
// and can be used standalone, the same framing the teacher gave its own
// leaf packages.
package bftext

import "strings"

// Ops is the eight-character Brainfuck instruction set.
const Ops = "><+-.,[]"

// IsOp reports whether b is one of the eight Brainfuck operator characters.
func IsOp(b byte) bool {
	return strings.IndexByte(Ops, b) >= 0
}

// Strip removes every character that is not one of the eight Brainfuck
// operators, the only optimization spec.md's Non-goals permit beyond
// trivial constant squaring.
func Strip(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if IsOp(s[i]) {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// WrapWidth is the fixed column width minimal-mode output wraps at (spec.md
// §4.2, §6).
const WrapWidth = 80

// WrapLines inserts a newline after every WrapWidth characters of s. s must
// already contain only Brainfuck operator characters (i.e. the output of
// Strip).
func WrapLines(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/WrapWidth + 1)
	for i := 0; i < len(s); i++ {
		sb.WriteByte(s[i])
		if (i+1)%WrapWidth == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// PadToMultiple appends a cosmetic, semantically-no-op suffix to s (which
// must contain only Brainfuck operators) so its length becomes a multiple of
// WrapWidth. Per spec.md §4.2: a gap under 8 characters is filled with
// "+...+" (increments on a cell of unspecified value are harmless padding
// only if that cell is later zeroed — so gaps >=8 are filled with
// "[-]+...+[-]" instead, which re-zeroes before and after incrementing, safe
// regardless of the padded cell's prior value).
func PadToMultiple(s string) string {
	gap := WrapWidth - (len(s) % WrapWidth)
	if gap == WrapWidth {
		return s
	}
	if gap < 8 {
		return s + strings.Repeat("+", gap)
	}
	return s + "[-]" + strings.Repeat("+", gap-6) + "[-]"
}

// Render strips s to operator characters only, then wraps and pads it to a
// multiple of WrapWidth — the full minimal-mode rendering pipeline.
func Render(s string) string {
	stripped := Strip(s)
	padded := PadToMultiple(stripped)
	return WrapLines(padded)
}

// BalancedBrackets reports whether every '[' in s has a matching ']' and
// vice versa, perfectly nested (spec.md Invariant 5, §8).
func BalancedBrackets(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// CharsetOnly reports whether every character in s is one of the eight
// Brainfuck operators or a newline (spec.md §8's minimal-mode charset
// invariant).
func CharsetOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && !IsOp(s[i]) {
			return false
		}
	}
	return true
}
