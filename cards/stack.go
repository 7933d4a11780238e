package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack from the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// ParseStack parses a sequence of whitespace-free two-character codes
func ParseStack(codes ...string) (Stack, error) {
	stack := make(Stack, 0, len(codes))
	for _, code := range codes {
		card, err := ParseCard(code)
		if err != nil {
			return nil, err
		}
		stack = append(stack, card)
	}
	return stack, nil
}

// String returns the space-separated shorthand of the stack
func (s Stack) String() string {
	codes := make([]string, len(s))
	for i, card := range s {
		codes[i] = card.String()
	}
	return strings.Join(codes, " ")
}

// Codes returns the two-character shorthand of every card in the stack
func (s Stack) Codes() []string {
	codes := make([]string, len(s))
	for i, card := range s {
		codes[i] = card.String()
	}
	return codes
}
