package bftext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripRemovesNonOperators(t *testing.T) {
	assert.Equal(t, "++><", Strip("  ++ // comment\n><  "))
	assert.Equal(t, "", Strip("hello world"))
}

func TestWrapLinesInsertsEvery80Chars(t *testing.T) {
	s := strings.Repeat("+", 160)
	wrapped := WrapLines(s)
	lines := strings.Split(strings.TrimRight(wrapped, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Len(t, line, WrapWidth)
	}
}

func TestPadToMultipleShortGapUsesPlusRun(t *testing.T) {
	s := strings.Repeat("+", 75)
	padded := PadToMultiple(s)
	assert.Len(t, padded, WrapWidth)
	assert.True(t, strings.HasPrefix(padded, s))
}

func TestPadToMultipleLongGapUsesZeroGuard(t *testing.T) {
	s := strings.Repeat("+", 10)
	padded := PadToMultiple(s)
	assert.Len(t, padded, WrapWidth)
	suffix := padded[len(s):]
	assert.True(t, strings.HasPrefix(suffix, "[-]"))
	assert.True(t, strings.HasSuffix(suffix, "[-]"))
}

func TestPadToMultipleExactLengthIsUnchanged(t *testing.T) {
	s := strings.Repeat("+", WrapWidth)
	assert.Equal(t, s, PadToMultiple(s))
}

func TestRenderIsCharsetCleanAndWrapped(t *testing.T) {
	rendered := Render(strings.Repeat("+", 5) + "garbage" + strings.Repeat("-", 3))
	assert.True(t, CharsetOnly(rendered))
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), WrapWidth)
	}
}

func TestBalancedBrackets(t *testing.T) {
	assert.True(t, BalancedBrackets("+[->+<]"))
	assert.False(t, BalancedBrackets("+[->+<"))
	assert.False(t, BalancedBrackets("+]["))
}

func TestCharsetOnly(t *testing.T) {
	assert.True(t, CharsetOnly("><+-.,[]\n"))
	assert.False(t, CharsetOnly("><+-.,[]x"))
}
