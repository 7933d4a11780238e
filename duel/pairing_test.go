package duel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelscore/duelscore/cards"
)

func TestParseLine(t *testing.T) {
	pairing, err := ParseLine("AH KH QH JH TH 9C 9D 9S 9H 2C", 1)
	require.NoError(t, err)
	require.Len(t, pairing.First, HandSize)
	require.Len(t, pairing.Second, HandSize)
	require.Equal(t, "AH KH QH JH TH", pairing.First.String())
	require.Equal(t, "9C 9D 9S 9H 2C", pairing.Second.String())
}

func TestParseLine_CollapsesWhitespace(t *testing.T) {
	pairing, err := ParseLine("  AH  KH QH JH TH\t9C 9D 9S 9H 2C ", 3)
	require.NoError(t, err)
	require.Equal(t, "AH KH QH JH TH 9C 9D 9S 9H 2C", pairing.String())
}

func TestParseLine_MalformedTokenCount(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		tokens int
	}{
		{"nine tokens", "AH KH QH JH TH 9C 9D 9S 9H", 9},
		{"eleven tokens", "AH KH QH JH TH 9C 9D 9S 9H 2C 3C", 11},
		{"empty line", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line, 7)

			var malformed *MalformedLineError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, 7, malformed.Line)
			require.Equal(t, tt.tokens, malformed.Tokens)
		})
	}
}

func TestParseLine_InvalidCardCode(t *testing.T) {
	_, err := ParseLine("AH KH QH JH XX 9C 9D 9S 9H 2C", 2)
	require.ErrorIs(t, err, cards.ErrInvalidCardCode)
	require.ErrorContains(t, err, "line 2, card 5")
}
