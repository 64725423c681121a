package bot

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"go.uber.org/zap"

	"wordlebot/internal/domain"
)

// Harness plays many games against secrets drawn without replacement from
// a shuffled copy of the answers. A new shuffle starts once every answer was used.
type Harness struct {
	agent   *Agent
	answers []domain.Word
	rng     *rand.Rand
	logger  *zap.Logger

	deck []domain.Word
	next int
}

// NewHarness builds a harness. A nil rng is seeded from the clock and a nil logger disables logging.
func NewHarness(agent *Agent, answers []domain.Word, rng *rand.Rand, logger *zap.Logger) (*Harness, error) {
	if agent == nil || agent.Service == nil {
		return nil, fmt.Errorf("agent with a service is required")
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers list is empty")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{
		agent:   agent,
		answers: slices.Clone(answers),
		rng:     rng,
		logger:  logger,
	}, nil
}

// Run plays n games and returns their statistics.
func (h *Harness) Run(ctx context.Context, n int) (Stats, error) {
	var stats Stats
	started := time.Now()

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(started)
			return stats, err
		}
		secret := h.nextSecret()
		session, err := h.agent.Play(ctx, secret)
		if err != nil {
			stats.Elapsed = time.Since(started)
			return stats, err
		}
		stats.Record(session)
		h.logger.Debug("game finished",
			zap.Int("game", i+1),
			zap.String("secret", string(secret)),
			zap.String("state", string(session.State)),
			zap.Int("attempts", session.Attempts),
			zap.Int("rounds", session.Round))
	}

	stats.Elapsed = time.Since(started)
	h.logger.Info("bot run finished",
		zap.Int("games", stats.Games),
		zap.Int("wins", stats.Wins),
		zap.Int("losses", stats.Losses),
		zap.Float64("average_attempts", stats.AverageAttempts()),
		zap.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

func (h *Harness) nextSecret() domain.Word {
	if h.next >= len(h.deck) {
		h.deck = slices.Clone(h.answers)
		h.rng.Shuffle(len(h.deck), func(i, j int) {
			h.deck[i], h.deck[j] = h.deck[j], h.deck[i]
		})
		h.next = 0
	}
	secret := h.deck[h.next]
	h.next++
	return secret
}
