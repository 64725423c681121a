package internal

import (
	"iter"
	"math"

	"wordlebot/internal/domain"
)

// Floor is the lowest score a guess can reach against a non-empty pool:
// every reachable outcome leaves a single candidate.
const Floor = 1.0

// Score returns the average number of pool words left per reachable outcome
// of guess. Outcomes that leave no word are not counted. Lower is better.
// An empty pool scores +Inf.
func Score(pool []domain.Word, guess domain.Word, outcomes iter.Seq[domain.Feedback]) float64 {
	total, reachable := 0, 0
	for fb := range outcomes {
		n := domain.CountConsistent(pool, guess, fb)
		if n == 0 {
			continue
		}
		total += n
		reachable++
	}
	if reachable == 0 {
		return math.Inf(1)
	}
	return float64(total) / float64(reachable)
}

// Buckets returns the number of pool words consistent with each outcome,
// keyed by outcome. Outcomes with empty buckets are omitted.
func Buckets(pool []domain.Word, guess domain.Word, outcomes iter.Seq[domain.Feedback]) map[domain.Feedback]int {
	buckets := make(map[domain.Feedback]int)
	for fb := range outcomes {
		if n := domain.CountConsistent(pool, guess, fb); n > 0 {
			buckets[fb] = n
		}
	}
	return buckets
}
