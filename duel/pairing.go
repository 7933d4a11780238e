// Package duel turns lines of card shorthand into scored two-player
// showdowns. Each line holds ten two-character card codes: the first five
// form the first player's hand, the last five the second player's.
package duel

import (
	"fmt"
	"strings"

	"github.com/duelscore/duelscore/cards"
)

// HandSize is the number of cards in each player's hand.
const HandSize = 5

// tokensPerLine is the number of card codes a well-formed line carries.
const tokensPerLine = 2 * HandSize

// MalformedLineError reports an input line that does not split into
// exactly ten card tokens.
type MalformedLineError struct {
	Line   int // 1-based line number within the input
	Tokens int // number of tokens actually found
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: expected %d card codes, got %d", e.Line, tokensPerLine, e.Tokens)
}

// Pairing holds the two five-card hands of a single showdown
type Pairing struct {
	First  cards.Stack
	Second cards.Stack
}

// String returns the original line form of the pairing
func (p Pairing) String() string {
	return p.First.String() + " " + p.Second.String()
}

// ParseLine parses one input line into a pairing. The line must contain
// exactly ten whitespace-separated two-character card codes; lineNo is
// only used for error reporting.
func ParseLine(line string, lineNo int) (Pairing, error) {
	tokens := strings.Fields(line)
	if len(tokens) != tokensPerLine {
		return Pairing{}, &MalformedLineError{Line: lineNo, Tokens: len(tokens)}
	}

	parsed := make(cards.Stack, 0, tokensPerLine)
	for i, token := range tokens {
		card, err := cards.ParseCard(token)
		if err != nil {
			return Pairing{}, fmt.Errorf("line %d, card %d: %w", lineNo, i+1, err)
		}
		parsed = append(parsed, card)
	}

	return Pairing{
		First:  parsed[:HandSize],
		Second: parsed[HandSize:],
	}, nil
}
