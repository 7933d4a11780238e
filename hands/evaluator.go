package hands

import (
	"sort"

	"github.com/duelscore/duelscore/cards"
)

// Category represents the strength class of a five-card poker hand
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Evaluation represents the evaluation of a five-card poker hand
type Evaluation struct {
	Category Category     // The hand category (pair, flush, etc.)
	Cards    cards.Stack  // The 5 cards, sorted by rank descending
	Ranks    []cards.Rank // All five ranks, highest first
	Kickers  []cards.Rank // Category tie-break ranks, most significant first
}

// rankGroup pairs a rank with the number of cards sharing it
type rankGroup struct {
	rank  cards.Rank
	count int
}

// rankGroups counts the cards per rank and returns the groups sorted by
// count descending, then rank descending. The deterministic order means
// the quad, trips, and pair ranks are always the leading groups.
func rankGroups(hand cards.Stack) []rankGroup {
	counts := make(map[cards.Rank]int)
	for _, card := range hand {
		counts[card.Rank]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	return groups
}

// sortByRankDesc sorts cards by rank in descending order
func sortByRankDesc(hand cards.Stack) cards.Stack {
	result := make(cards.Stack, len(hand))
	copy(result, hand)

	sort.Slice(result, func(i, j int) bool {
		return result[i].Rank > result[j].Rank
	})

	return result
}

// isFlush checks if all cards are of the same suit
func isFlush(hand cards.Stack) bool {
	suit := hand[0].Suit
	for _, card := range hand[1:] {
		if card.Suit != suit {
			return false
		}
	}
	return true
}

// isStraight checks if the already-descending hand holds consecutive ranks.
// An Ace always ranks high here: A-5-4-3-2 is not a straight.
func isStraight(sorted cards.Stack) bool {
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Rank != sorted[i+1].Rank+1 {
			return false
		}
	}
	return true
}

// Evaluate classifies a five-card poker hand and extracts its tie-break
// ranks. Panics if the hand does not contain exactly 5 cards; callers
// validate hand size at the input boundary.
func Evaluate(hand cards.Stack) Evaluation {
	if len(hand) != 5 {
		panic("hand must contain exactly 5 cards")
	}

	sorted := sortByRankDesc(hand)

	ranks := make([]cards.Rank, len(sorted))
	for i, card := range sorted {
		ranks[i] = card.Rank
	}

	groups := rankGroups(sorted)
	flush := isFlush(sorted)
	straight := isStraight(sorted)

	// Check for royal flush
	if flush && straight && sorted[0].Rank == cards.Ace {
		return Evaluation{
			Category: RoyalFlush,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  nil, // all royal flushes rank equal
		}
	}

	// Check for straight flush
	if flush && straight {
		return Evaluation{
			Category: StraightFlush,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  []cards.Rank{ranks[0]},
		}
	}

	// Check for four of a kind
	if groups[0].count == 4 {
		return Evaluation{
			Category: FourOfAKind,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  []cards.Rank{groups[0].rank, groups[1].rank},
		}
	}

	// Check for full house
	if groups[0].count == 3 && groups[1].count == 2 {
		return Evaluation{
			Category: FullHouse,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  []cards.Rank{groups[0].rank, groups[1].rank},
		}
	}

	// Check for flush
	if flush {
		return Evaluation{
			Category: Flush,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  ranks,
		}
	}

	// Check for straight
	if straight {
		return Evaluation{
			Category: Straight,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  []cards.Rank{ranks[0]},
		}
	}

	// Check for three of a kind
	if groups[0].count == 3 {
		return Evaluation{
			Category: ThreeOfAKind,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  []cards.Rank{groups[0].rank},
		}
	}

	// Check for two pair
	if groups[0].count == 2 && groups[1].count == 2 {
		return Evaluation{
			Category: TwoPair,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  []cards.Rank{groups[0].rank, groups[1].rank, groups[2].rank},
		}
	}

	// Check for one pair
	if groups[0].count == 2 {
		return Evaluation{
			Category: OnePair,
			Cards:    sorted,
			Ranks:    ranks,
			Kickers:  []cards.Rank{groups[0].rank},
		}
	}

	// High card
	return Evaluation{
		Category: HighCard,
		Cards:    sorted,
		Ranks:    ranks,
		Kickers:  ranks,
	}
}
