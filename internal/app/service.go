package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

var (
	ErrSessionClosed = errors.New("session is closed")
	ErrNoGuess       = errors.New("session has no pending guess")
	ErrNoVocabulary  = errors.New("vocabulary is required")
	ErrNoSelector    = errors.New("guess selector is required")
)

// GuessSelector picks the next guess for a candidate pool.
type GuessSelector interface {
	SelectNext(ctx context.Context, pool, vocabulary []domain.Word) (domain.Word, float64, error)
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLookup enables the second-guess table.
func WithLookup(lookup ports.LookupPort) Option {
	return func(s *Service) { s.lookup = lookup }
}

// WithOpener fixes the opener used when Start is called without one.
func WithOpener(opener domain.Word) Option {
	return func(s *Service) { s.opener = opener }
}

// WithLimits bounds every session the service starts.
func WithLimits(limits Limits) Option {
	return func(s *Service) { s.limits = limits }
}

// Service contains the solver use-cases operating on Session values.
type Service struct {
	vocab    *domain.Vocabulary
	selector GuessSelector
	lookup   ports.LookupPort
	logger   *zap.Logger
	limits   Limits

	openerMu sync.Mutex
	opener   domain.Word
}

// NewService validates its collaborators and applies options.
func NewService(vocab *domain.Vocabulary, selector GuessSelector, opts ...Option) (*Service, error) {
	if vocab == nil {
		return nil, ErrNoVocabulary
	}
	if selector == nil {
		return nil, ErrNoSelector
	}
	s := &Service{
		vocab:    vocab,
		selector: selector,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.opener != "" && !s.opener.Valid() {
		return nil, fmt.Errorf("opener: %w: %q", domain.ErrInvalidWord, s.opener)
	}
	return s, nil
}

// Vocabulary returns the word lists the service plays with.
func (s *Service) Vocabulary() *domain.Vocabulary {
	return s.vocab
}

// Limits returns the limits applied to new sessions.
func (s *Service) Limits() Limits {
	return s.limits
}

// Start opens a session guessing opener. An empty opener uses the configured
// one, or the best-scoring word over all answers when none is configured.
func (s *Service) Start(ctx context.Context, opener domain.Word) (Session, []Event, error) {
	if opener == "" {
		var err error
		if opener, err = s.defaultOpener(ctx); err != nil {
			return Session{}, nil, err
		}
	}
	if !opener.Valid() {
		return Session{}, nil, fmt.Errorf("opener: %w: %q", domain.ErrInvalidWord, opener)
	}

	session := NewSession(s.vocab.Answers, opener, s.limits)
	events := []Event{{
		Kind: EventGuessProposed,
		Payload: GuessProposedPayload{
			Round:      1,
			Guess:      opener,
			Source:     SourceOpener,
			Candidates: len(session.Pool),
		},
	}}
	return session, events, nil
}

// Resume rebuilds a session from a decoded resume token.
func (s *Service) Resume(r Resume) (Session, error) {
	if !r.Opener.Valid() {
		return Session{}, fmt.Errorf("opener: %w: %q", domain.ErrInvalidWord, r.Opener)
	}
	return Replay(s.vocab.Answers, r.Opener, r.History, r.Guess, s.limits)
}

// Advance applies feedback for the pending guess and, while the session is
// still open, chooses the next guess.
func (s *Service) Advance(ctx context.Context, session Session, fb domain.Feedback) (Session, []Event, error) {
	if session.State.Terminal() {
		return session, nil, ErrSessionClosed
	}
	if session.Guess == "" {
		return session, nil, ErrNoGuess
	}

	next := Apply(session, fb)
	events := []Event{{
		Kind: EventRoundApplied,
		Payload: RoundAppliedPayload{
			Round:      next.Round,
			Guess:      session.Guess,
			Feedback:   fb,
			Candidates: len(next.Pool),
		},
	}}

	switch next.State {
	case StateSolved, StateSolvedByDeduction:
		kind := EventSolved
		if next.State == StateSolvedByDeduction {
			kind = EventSolvedByDeduction
		}
		events = append(events, Event{
			Kind: kind,
			Payload: SolvedPayload{
				Answer:   next.Answer,
				Attempts: next.Attempts,
				Deduced:  next.State == StateSolvedByDeduction,
			},
		})
		return next, events, nil
	case StateExhausted:
		s.logger.Debug("session exhausted",
			zap.Int("round", next.Round),
			zap.String("reason", next.Reason),
			zap.Int("previous_candidates", len(next.PreviousPool)))
		events = append(events, Event{
			Kind: EventExhausted,
			Payload: ExhaustedPayload{
				Round:    next.Round,
				Reason:   next.Reason,
				Previous: next.PreviousPool,
			},
		})
		return next, events, nil
	}

	guess, source, score, err := s.chooseNext(ctx, next, fb)
	if err != nil {
		return session, nil, err
	}
	next.Guess = guess
	events = append(events, Event{
		Kind: EventGuessProposed,
		Payload: GuessProposedPayload{
			Round:      next.Round + 1,
			Guess:      guess,
			Source:     source,
			Score:      score,
			Candidates: len(next.Pool),
		},
	})
	return next, events, nil
}

func (s *Service) chooseNext(ctx context.Context, session Session, fb domain.Feedback) (domain.Word, GuessSource, float64, error) {
	if DetectPhase(session) == PhaseSecond && s.lookup != nil {
		guess, ok, err := s.lookup.SecondGuess(ctx, session.Opener, fb)
		switch {
		case err != nil:
			s.logger.Warn("second guess lookup failed, falling back to search",
				zap.String("opener", string(session.Opener)),
				zap.String("feedback", fb.String()),
				zap.Error(err))
		case ok && guess.Valid():
			return guess, SourceLookup, 0, nil
		}
	}

	guess, score, err := s.selector.SelectNext(ctx, session.Pool, s.vocab.All())
	if err != nil {
		return "", "", 0, fmt.Errorf("select guess for round %d: %w", session.Round+1, err)
	}
	return guess, SourceSearch, score, nil
}

func (s *Service) defaultOpener(ctx context.Context) (domain.Word, error) {
	s.openerMu.Lock()
	defer s.openerMu.Unlock()
	if s.opener != "" {
		return s.opener, nil
	}
	if len(s.vocab.Answers) == 1 {
		s.opener = s.vocab.Answers[0]
		return s.opener, nil
	}

	guess, score, err := s.selector.SelectNext(ctx, s.vocab.Answers, s.vocab.All())
	if err != nil {
		return "", fmt.Errorf("select opener: %w", err)
	}
	s.logger.Info("selected opener", zap.String("opener", string(guess)), zap.Float64("score", score))
	s.opener = guess
	return guess, nil
}
