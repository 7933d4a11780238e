package cards

import "math/rand"

// NewDeck creates a standard deck of 52 cards
func NewDeck() Stack {
	var deck Stack
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}

	for _, suit := range suits {
		for rank := Two; rank <= Ace; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}

	return deck
}

// ShuffleDeck shuffles a deck of cards randomly
func ShuffleDeck(deck Stack) Stack {
	shuffled := make(Stack, len(deck))
	copy(shuffled, deck)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

// DealCards deals count cards and returns them with the remaining deck
func DealCards(deck Stack, count int) (Stack, Stack) {
	if count > len(deck) {
		count = len(deck)
	}

	dealt := make(Stack, count)
	copy(dealt, deck[:count])

	return dealt, deck[count:]
}
