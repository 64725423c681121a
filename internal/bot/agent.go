package bot

import (
	"context"
	"fmt"

	"wordlebot/internal/app"
	"wordlebot/internal/domain"
)

// Agent plays unattended games by scoring its own guesses against a known secret.
type Agent struct {
	Service *app.Service
	// Opener is the first guess. Empty lets the service choose.
	Opener domain.Word
}

// Play runs one game to a terminal state and returns the final session.
func (a *Agent) Play(ctx context.Context, secret domain.Word) (app.Session, error) {
	session, _, err := a.Service.Start(ctx, a.Opener)
	if err != nil {
		return app.Session{}, fmt.Errorf("start game for %s: %w", secret, err)
	}
	session.Secret = secret

	for !session.State.Terminal() {
		fb := domain.Compute(secret, session.Guess)
		session, _, err = a.Service.Advance(ctx, session, fb)
		if err != nil {
			return session, fmt.Errorf("round %d for %s: %w", session.Round+1, secret, err)
		}
	}
	return session, nil
}
