package duel

import "github.com/duelscore/duelscore/cards"

// SamplePairing deals a random showdown. Each player draws from their own
// freshly shuffled deck, so identical cards may appear on both sides.
func SamplePairing() Pairing {
	first, _ := cards.DealCards(cards.ShuffleDeck(cards.NewDeck()), HandSize)
	second, _ := cards.DealCards(cards.ShuffleDeck(cards.NewDeck()), HandSize)
	return Pairing{First: first, Second: second}
}

// SampleLines renders n random showdowns in the line input format
func SampleLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = SamplePairing().String()
	}
	return lines
}
