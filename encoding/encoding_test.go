package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeUTF8(t *testing.T) {
	s, err := Decode([]byte("<r/>"))
	require.NoError(t, err)
	require.Equal(t, "<r/>", s)

	// BOM is stripped
	s, err = Decode([]byte{0xEF, 0xBB, 0xBF, '<', 'r', '/', '>'})
	require.NoError(t, err)
	require.Equal(t, "<r/>", s)

	_, err = Decode([]byte{'<', 0xFF, '>'})
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestDecodeUTF16(t *testing.T) {
	le := []byte{0xFF, 0xFE, 0x3C, 0x00, 0x72, 0x00, 0x2F, 0x00, 0x3E, 0x00}
	s, err := Decode(le)
	require.NoError(t, err)
	require.Equal(t, "<r/>", s)

	be := []byte{0xFE, 0xFF, 0x00, 0x3C, 0x00, 0x72, 0x00, 0x2F, 0x00, 0x3E}
	s, err = Decode(be)
	require.NoError(t, err)
	require.Equal(t, "<r/>", s)
}

func TestDecodeUTF16SurrogatePair(t *testing.T) {
	// U+1D11E (musical G clef) as a BE surrogate pair
	be := []byte{0xFE, 0xFF, 0xD8, 0x34, 0xDD, 0x1E}
	s, err := Decode(be)
	require.NoError(t, err)
	require.Equal(t, "\U0001D11E", s)
}

func TestDecodeUTF16Failures(t *testing.T) {
	inputs := [][]byte{
		{0xFF, 0xFE, 0x3C},             // odd length
		{0xFF, 0xFE, 0x00, 0xD8},       // unpaired high surrogate
		{0xFE, 0xFF, 0xDC, 0x00},       // stray low surrogate
		{0xFE, 0xFF, 0xD8, 0x00, 0x00, 0x41}, // high surrogate not followed by low
	}
	for _, b := range inputs {
		_, err := Decode(b)
		require.ErrorIs(t, err, ErrInvalidUTF16, "input %#v", b)
	}
}
