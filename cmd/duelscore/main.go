package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/sanity-io/litter"

	"github.com/duelscore/duelscore/duel"
)

func main() {
	var (
		policyName    = flag.String("policy", "separate", "Tie policy: separate, or second (ties credit player 2)")
		skipMalformed = flag.Bool("skip-malformed", false, "Skip malformed lines instead of aborting")
		explain       = flag.Bool("explain", false, "Dump per-line hand evaluations while scoring")
		sample        = flag.Int("sample", 0, "Print N random showdown lines and exit")
		quiet         = flag.Bool("quiet", false, "Plain two-line output instead of the summary table")
	)
	flag.Parse()

	if *sample > 0 {
		for _, line := range duel.SampleLines(*sample) {
			fmt.Println(line)
		}
		return
	}

	policy, err := duel.ParseTiePolicy(*policyName)
	if err != nil {
		fail(err)
	}

	opts := []duel.Option{}
	if *skipMalformed {
		opts = append(opts, duel.WithSkipMalformed())
	}
	if *explain {
		opts = append(opts, duel.WithObserver(explainResult))
	}
	scorer := duel.NewScorer(opts...)

	tally, err := scoreInputs(scorer, flag.Args())
	if err != nil {
		fail(err)
	}

	first, second := tally.Totals(policy)
	if *quiet {
		fmt.Printf("Player 1: %d\n", first)
		fmt.Printf("Player 2: %d\n", second)
		return
	}

	report(tally, policy, first, second)
}

// scoreInputs folds every input file (or stdin when none are given) into
// one combined tally
func scoreInputs(scorer *duel.Scorer, paths []string) (duel.Tally, error) {
	if len(paths) == 0 {
		return scorer.Score(os.Stdin)
	}

	var combined duel.Tally
	for _, path := range paths {
		tally, err := scoreFile(scorer, path)
		if err != nil {
			return combined, fmt.Errorf("%s: %w", path, err)
		}
		combined = combined.Merge(tally)
	}
	return combined, nil
}

func scoreFile(scorer *duel.Scorer, path string) (duel.Tally, error) {
	f, err := os.Open(path)
	if err != nil {
		return duel.Tally{}, err
	}
	defer f.Close()
	return scorer.Score(f)
}

// explainResult dumps the evaluations behind one scored line
func explainResult(res duel.Result) {
	pterm.Printf("line %d: %s (%s vs %s) -> %s\n",
		res.Line, res.Pairing, res.First.Category, res.Second.Category, res.Outcome)
	litter.D(res.First, res.Second)
}

func report(tally duel.Tally, policy duel.TiePolicy, first, second int) {
	pterm.DefaultSection.Println("Match results")

	data := pterm.TableData{
		{"", "Wins"},
		{"Player 1", fmt.Sprint(first)},
		{"Player 2", fmt.Sprint(second)},
	}
	if policy == duel.TiesSeparate {
		data = append(data, []string{"Ties", fmt.Sprint(tally.Ties)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fail(err)
	}

	pterm.Printf("%d lines scored", tally.Lines)
	if tally.Skipped > 0 {
		pterm.Printf(", %d malformed lines skipped", tally.Skipped)
	}
	pterm.Println()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "duelscore:", err)
	os.Exit(1)
}
