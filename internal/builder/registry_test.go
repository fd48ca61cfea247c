package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_AllLanguages(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"cpp", "csharp", "go", "nim", "python", "rust", "zig"}, r.Languages())

	for _, lang := range r.Languages() {
		a, err := r.Get(lang)
		require.NoError(t, err)
		assert.Equal(t, lang, a.Language())
		assert.NotEmpty(t, a.Tools(), "every adapter contributes language tools")
	}
}

func TestRegistry_UnknownLanguage(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Get("cobol")
	require.Error(t, err)

	var unknownErr *UnknownLanguageError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "cobol", unknownErr.Language)
	assert.Contains(t, unknownErr.Available, "rust")
}
