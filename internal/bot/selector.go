package bot

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	botinternal "wordlebot/internal/bot/internal"
	"wordlebot/internal/domain"
)

var (
	ErrPoolTooSmall    = errors.New("candidate pool needs at least two words")
	ErrEmptyVocabulary = errors.New("vocabulary is empty")
)

// ProgressFunc receives the number of scored words and the total.
// It is called from scoring goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// SelectorOption customizes a Selector.
type SelectorOption func(*Selector)

// WithProgress reports scoring progress to fn.
func WithProgress(fn ProgressFunc) SelectorOption {
	return func(s *Selector) { s.progress = fn }
}

// Selector picks the guess whose reachable outcomes leave the fewest words on average.
type Selector struct {
	tuning   Tuning
	progress ProgressFunc
}

// NewSelector returns a Selector using tuning.
func NewSelector(tuning Tuning, opts ...SelectorOption) *Selector {
	s := &Selector{tuning: tuning}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectNext returns the vocabulary word with the lowest score against pool.
// Ties go to the earliest vocabulary entry.
func (s *Selector) SelectNext(ctx context.Context, pool, vocabulary []domain.Word) (domain.Word, float64, error) {
	if len(vocabulary) == 0 {
		return "", 0, ErrEmptyVocabulary
	}
	if len(pool) < 2 {
		return "", 0, ErrPoolTooSmall
	}

	scores, err := s.score(ctx, pool, vocabulary, true)
	if err != nil {
		return "", 0, err
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	return vocabulary[best], scores[best], nil
}

// ScoreAll scores every vocabulary word against pool, in vocabulary order.
func (s *Selector) ScoreAll(ctx context.Context, pool, vocabulary []domain.Word) ([]float64, error) {
	if len(vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return s.score(ctx, pool, vocabulary, false)
}

// score fills one slot per vocabulary entry. With stopAtFloor, entries after
// the earliest word known to reach the floor are left at +Inf.
func (s *Selector) score(ctx context.Context, pool, vocabulary []domain.Word, stopAtFloor bool) ([]float64, error) {
	scores := make([]float64, len(vocabulary))
	var floorAt atomic.Int64
	floorAt.Store(int64(len(vocabulary)))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.tuning.workers())

	for i, guess := range vocabulary {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if stopAtFloor && int64(i) > floorAt.Load() {
				scores[i] = math.Inf(1)
			} else {
				scores[i] = botinternal.Score(pool, guess, domain.Outcomes())
				if stopAtFloor && scores[i] <= botinternal.Floor {
					lowerTo(&floorAt, int64(i))
				}
			}
			if s.progress != nil {
				s.progress(int(done.Add(1)), len(vocabulary))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func lowerTo(v *atomic.Int64, idx int64) {
	for {
		cur := v.Load()
		if idx >= cur || v.CompareAndSwap(cur, idx) {
			return
		}
	}
}
