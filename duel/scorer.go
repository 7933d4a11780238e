package duel

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/duelscore/duelscore/hands"
)

// TiePolicy decides how tied showdowns contribute to the two reported
// win totals.
type TiePolicy int

const (
	// TiesSeparate keeps ties out of both win totals.
	TiesSeparate TiePolicy = iota
	// TiesToSecond credits tied showdowns to the second player, matching
	// the historical driver behavior.
	TiesToSecond
)

// ParseTiePolicy maps a policy name onto a TiePolicy
func ParseTiePolicy(name string) (TiePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "separate":
		return TiesSeparate, nil
	case "second":
		return TiesToSecond, nil
	default:
		return TiesSeparate, fmt.Errorf("unknown tie policy: %s", name)
	}
}

// Tally accumulates showdown outcomes across the lines of one match
type Tally struct {
	FirstWins  int `json:"firstWins"`
	SecondWins int `json:"secondWins"`
	Ties       int `json:"ties"`
	Lines      int `json:"lines"`
	Skipped    int `json:"skipped"`
}

// Add folds one outcome into the tally and returns the updated value
func (t Tally) Add(outcome hands.Outcome) Tally {
	t.Lines++
	switch outcome {
	case hands.FirstWins:
		t.FirstWins++
	case hands.SecondWins:
		t.SecondWins++
	case hands.Tie:
		t.Ties++
	}
	return t
}

// Merge combines two tallies, e.g. across several input files
func (t Tally) Merge(other Tally) Tally {
	t.FirstWins += other.FirstWins
	t.SecondWins += other.SecondWins
	t.Ties += other.Ties
	t.Lines += other.Lines
	t.Skipped += other.Skipped
	return t
}

// Totals reports the two player win counts under the given tie policy
func (t Tally) Totals(policy TiePolicy) (int, int) {
	if policy == TiesToSecond {
		return t.FirstWins, t.SecondWins + t.Ties
	}
	return t.FirstWins, t.SecondWins
}

// Result describes one scored showdown
type Result struct {
	Line    int
	Pairing Pairing
	Outcome hands.Outcome
	First   hands.Evaluation
	Second  hands.Evaluation
}

// Observer is notified after every scored showdown
type Observer func(Result)

// Scorer folds line-based input into a tally of showdown outcomes
type Scorer struct {
	skipMalformed bool
	observers     []Observer
}

// Option configures a Scorer
type Option func(*Scorer)

// WithSkipMalformed makes the scorer count and skip malformed lines
// instead of aborting the whole run on the first one.
func WithSkipMalformed() Option {
	return func(s *Scorer) {
		s.skipMalformed = true
	}
}

// WithObserver registers an observer for every scored showdown
func WithObserver(fn Observer) Option {
	return func(s *Scorer) {
		s.observers = append(s.observers, fn)
	}
}

// NewScorer creates a scorer with the given options
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score reads lines from r and folds each showdown into the returned
// tally. Blank lines are skipped. By default the first malformed line or
// invalid card code aborts the run with the tally accumulated so far;
// WithSkipMalformed turns those lines into skips instead.
func (s *Scorer) Score(r io.Reader) (Tally, error) {
	var tally Tally

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		pairing, err := ParseLine(line, lineNo)
		if err != nil {
			if s.skipMalformed {
				tally.Skipped++
				continue
			}
			return tally, err
		}

		first := hands.Evaluate(pairing.First)
		second := hands.Evaluate(pairing.Second)
		outcome := hands.CompareEvaluations(first, second)
		tally = tally.Add(outcome)

		for _, observe := range s.observers {
			observe(Result{
				Line:    lineNo,
				Pairing: pairing,
				Outcome: outcome,
				First:   first,
				Second:  second,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return tally, fmt.Errorf("reading input: %w", err)
	}

	return tally, nil
}
