package cards

import (
	"errors"
	"fmt"
)

// ErrInvalidCardCode is returned when a card shorthand cannot be parsed.
var ErrInvalidCardCode = errors.New("invalid card code")

// Rank represents a card's face value, 2 through 14 (Ace high)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character symbol for the rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r <= Nine {
		return string(rune('0' + int(r)))
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Suit represents a card suit symbol. The scoring rules only ever compare
// suits for equality, so the symbol is carried verbatim.
type Suit byte

const (
	Spades   Suit = 'S'
	Hearts   Suit = 'H'
	Diamonds Suit = 'D'
	Clubs    Suit = 'C'
)

// String returns the string representation of a suit
func (s Suit) String() string {
	return string(rune(s))
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the two-character shorthand of a card, e.g. "AS" or "9H"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}

// ParseCard creates a card from a two-character shorthand.
// The first character is the rank symbol ('2'-'9', 'T', 'J', 'Q', 'K', 'A');
// the second is the suit symbol, accepted verbatim.
// e.g., "AS" -> Card{Rank: Ace, Suit: Spades}
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("%w: %q must be exactly two characters", ErrInvalidCardCode, code)
	}

	var rank Rank
	switch c := code[0]; {
	case c == 'T':
		rank = Ten
	case c == 'J':
		rank = Jack
	case c == 'Q':
		rank = Queen
	case c == 'K':
		rank = King
	case c == 'A':
		rank = Ace
	case c >= '2' && c <= '9':
		rank = Rank(c - '0')
	default:
		return Card{}, fmt.Errorf("%w: unknown rank symbol %q in %q", ErrInvalidCardCode, string(code[0]), code)
	}

	return Card{Rank: rank, Suit: Suit(code[1])}, nil
}
