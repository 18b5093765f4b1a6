package charset_test

import (
	"testing"

	"github.com/codeninja55/dcmstream/dicom/charset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_EmptyTermIsUnrecognised(t *testing.T) {
	cs, ok := charset.Lookup("")
	assert.False(t, ok)
	assert.Nil(t, cs)
}

func TestDefault_IsDistinctFromLookupEmpty(t *testing.T) {
	def := charset.Default()
	require.NotNil(t, def)
	assert.Equal(t, "windows-1252", def.Name)

	_, ok := charset.Lookup("")
	assert.False(t, ok, "Lookup(\"\") must not alias Default()")
}

func TestLookup_KnownTerm(t *testing.T) {
	cs, ok := charset.Lookup("ISO_IR 100")
	require.True(t, ok)
	assert.Equal(t, "ISO_IR 100", cs.Term)
	assert.NotNil(t, cs.Encoding)
}

func TestLookup_UnknownTerm(t *testing.T) {
	cs, ok := charset.Lookup("NOT_A_REAL_TERM")
	assert.False(t, ok)
	assert.Nil(t, cs)
}

func TestLookup_MemoizesResolvedEntries(t *testing.T) {
	first, ok := charset.Lookup("ISO_IR 192")
	require.True(t, ok)

	second, ok := charset.Lookup("ISO_IR 192")
	require.True(t, ok)

	assert.Same(t, first, second)
}
