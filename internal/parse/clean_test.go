package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_BlankishInputs(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n", "nan", "NaN", "NAN", "none", "None", "NULL", "null", "  nan  "} {
		_, ok := Clean(raw)
		assert.False(t, ok, "Clean(%q) should be absent", raw)
	}
}

func TestClean_TrimsText(t *testing.T) {
	text, ok := Clean("  Widget X  ")
	require.True(t, ok)
	assert.Equal(t, "Widget X", text)
}

func TestClean_KeepsNonPlaceholderText(t *testing.T) {
	for _, raw := range []string{"0", "nano", "nothing", "nullable", "N/A"} {
		text, ok := Clean(raw)
		require.True(t, ok, "Clean(%q) should keep value", raw)
		assert.Equal(t, raw, text)
	}
}

func TestCleanPtr(t *testing.T) {
	assert.Nil(t, CleanPtr("nan"))

	p := CleanPtr(" notes ")
	require.NotNil(t, p)
	assert.Equal(t, "notes", *p)
}
