package bot

import (
	"context"
	"fmt"
	"sort"

	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

// RankOpeners scores every vocabulary word against the full answer list and
// sorts ascending by score. Equal scores keep vocabulary order.
func RankOpeners(ctx context.Context, sel *Selector, answers, vocabulary []domain.Word) ([]ports.RankedWord, error) {
	scores, err := sel.ScoreAll(ctx, answers, vocabulary)
	if err != nil {
		return nil, fmt.Errorf("score openers: %w", err)
	}
	ranked := make([]ports.RankedWord, len(vocabulary))
	for i, w := range vocabulary {
		ranked[i] = ports.RankedWord{Word: w, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked, nil
}

// BuildLookup selects the second guess for every feedback opener can receive
// that leaves at least two answers. report, when set, is called after each
// outcome with the number of outcomes processed.
func BuildLookup(ctx context.Context, sel *Selector, opener domain.Word, answers, vocabulary []domain.Word, report ProgressFunc) (*ports.LookupTable, error) {
	if !opener.Valid() {
		return nil, fmt.Errorf("opener: %w: %q", domain.ErrInvalidWord, opener)
	}
	table := ports.NewLookupTable(opener)

	done := 0
	for fb := range domain.Outcomes() {
		guess, ok, err := secondGuess(ctx, sel, opener, fb, answers, vocabulary)
		if err != nil {
			return nil, err
		}
		if ok {
			table.Entries[fb] = guess
		}
		done++
		if report != nil {
			report(done, domain.OutcomeCount)
		}
	}
	return table, nil
}

func secondGuess(ctx context.Context, sel *Selector, opener domain.Word, fb domain.Feedback, answers, vocabulary []domain.Word) (domain.Word, bool, error) {
	if fb.IsSolved() {
		return "", false, nil
	}
	pool := domain.Filter(answers, opener, fb)
	if len(pool) < 2 {
		return "", false, nil
	}
	guess, _, err := sel.SelectNext(ctx, pool, vocabulary)
	if err != nil {
		return "", false, fmt.Errorf("select second guess for %s: %w", fb, err)
	}
	return guess, true, nil
}
