package hands

import "github.com/duelscore/duelscore/cards"

// Outcome is the three-way result of comparing two hands
type Outcome int

const (
	Tie Outcome = iota
	FirstWins
	SecondWins
)

// String returns the display name of an outcome
func (o Outcome) String() string {
	switch o {
	case FirstWins:
		return "first"
	case SecondWins:
		return "second"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// Compare evaluates two five-card hands and determines the winner.
// A higher category wins outright; equal categories fall through to the
// category-specific tie-break rules.
func Compare(first, second cards.Stack) Outcome {
	return CompareEvaluations(Evaluate(first), Evaluate(second))
}

// CompareEvaluations compares two already-evaluated hands
func CompareEvaluations(first, second Evaluation) Outcome {
	if first.Category != second.Category {
		if first.Category > second.Category {
			return FirstWins
		}
		return SecondWins
	}

	return outcomeOf(compareSameCategory(first, second))
}

// compareSameCategory applies the tie-break rule for the shared category
// and returns 1 if the first hand is better, -1 if the second is, 0 on a
// genuine tie.
func compareSameCategory(first, second Evaluation) int {
	switch first.Category {
	case RoyalFlush, StraightFlush, Straight, Flush, HighCard:
		return compareRanks(first.Ranks, second.Ranks)
	case FourOfAKind, FullHouse, TwoPair:
		// Kickers carry the full tie-break order: quad/trips/high pair
		// first, then the remaining group ranks.
		return compareRanks(first.Kickers, second.Kickers)
	case ThreeOfAKind, OnePair:
		// Compare the trips/pair rank first, then fall back to a full
		// card-by-card comparison for the kickers.
		if c := compareRank(first.Kickers[0], second.Kickers[0]); c != 0 {
			return c
		}
		return compareRanks(first.Ranks, second.Ranks)
	default:
		return 0
	}
}

// compareRanks compares two rank sequences element by element, highest
// first; the first differing rank decides
func compareRanks(first, second []cards.Rank) int {
	for i := 0; i < len(first) && i < len(second); i++ {
		if c := compareRank(first[i], second[i]); c != 0 {
			return c
		}
	}
	return 0
}

// compareRank is a helper function to compare two ranks
func compareRank(a, b cards.Rank) int {
	if a > b {
		return 1
	}
	if a < b {
		return -1
	}
	return 0
}

// outcomeOf maps a three-way comparison value onto an Outcome
func outcomeOf(c int) Outcome {
	switch {
	case c > 0:
		return FirstWins
	case c < 0:
		return SecondWins
	default:
		return Tie
	}
}
