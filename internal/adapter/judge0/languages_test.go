package judge0

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/static/errs"
)

func TestLanguageTableIsBidirectional(t *testing.T) {
	for _, name := range SupportedLanguages() {
		id, err := LanguageIDFor(name)
		require.NoError(t, err)
		back, err := LanguageNameFor(id)
		require.NoError(t, err)
		assert.Equal(t, name, back)
	}
	assert.Len(t, languageNames, len(languageIDs), "language ids must be unique")
}

func TestLanguageIDForIsCaseInsensitive(t *testing.T) {
	id, err := LanguageIDFor(" python ")
	require.NoError(t, err)
	assert.Equal(t, 71, id)
}

func TestUnsupportedLanguage(t *testing.T) {
	_, err := LanguageIDFor("COBOL")
	var unsupported *errs.UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "COBOL", unsupported.Language)

	_, err = LanguageNameFor(12345)
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 12345, unsupported.LanguageID)
}
