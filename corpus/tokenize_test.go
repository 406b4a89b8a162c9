package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeWord(t *testing.T) {
	tok, err := NewTokenizer(LevelWord, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wie", "geht", "es"}, tok.Tokenize("Wie  geht es"))
}

func TestTokenizeWordLowercase(t *testing.T) {
	tok, err := NewTokenizer(LevelWord, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"wie", "geht"}, tok.Tokenize("Wie GEHT"))
}

func TestTokenizeChar(t *testing.T) {
	tok, err := NewTokenizer(LevelChar, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", " ", "c"}, tok.Tokenize("ab c"))
}

func TestTokenizeCharMultibyte(t *testing.T) {
	tok, err := NewTokenizer(LevelChar, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ü", "ß"}, tok.Tokenize("üß"))
}

func TestNewTokenizerUnknownLevel(t *testing.T) {
	_, err := NewTokenizer(Level("syllable"), false)
	assert.Error(t, err)
}

func TestDetokenize(t *testing.T) {
	assert.Equal(t, "wie geht", Detokenize([]string{"wie", "geht"}, LevelWord))
	assert.Equal(t, "abc", Detokenize([]string{"a", "b", "c"}, LevelChar))
}

func TestBPEPostprocess(t *testing.T) {
	assert.Equal(t, "lowest cost", BPEPostprocess("low@@ est cost"))
	assert.Equal(t, "plain", BPEPostprocess("plain"))
}
