package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"wordlebot/internal/app"
	"wordlebot/internal/bot"
	"wordlebot/internal/domain"
)

// StartRequest is the optional payload of solver_start.
type StartRequest struct {
	Opener string `json:"opener,omitempty"`
}

// FeedbackRequest is the payload of solver_feedback.
type FeedbackRequest struct {
	Token    string `json:"token"`
	Feedback string `json:"feedback"`
}

// SessionResponse describes a session after solver_start or solver_feedback.
// Token is empty once the session is terminal.
type SessionResponse struct {
	Token      string   `json:"token,omitempty"`
	State      string   `json:"state"`
	Round      int      `json:"round"`
	Guess      string   `json:"guess,omitempty"`
	Source     string   `json:"source,omitempty"`
	Candidates int      `json:"candidates"`
	Answer     string   `json:"answer,omitempty"`
	Attempts   int      `json:"attempts,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Previous   []string `json:"previous,omitempty"`
}

// BotRunRequest is the payload of solver_bot_run.
type BotRunRequest struct {
	Games  int    `json:"games"`
	Seed   int64  `json:"seed,omitempty"`
	Opener string `json:"opener,omitempty"`
}

// BotRunResponse reports the statistics of a bot run.
type BotRunResponse struct {
	Games           int         `json:"games"`
	Wins            int         `json:"wins"`
	Losses          int         `json:"losses"`
	AverageAttempts float64     `json:"average_attempts"`
	OverPar         int         `json:"over_par"`
	ElapsedMS       int64       `json:"elapsed_ms"`
	Histogram       map[int]int `json:"histogram,omitempty"`
	Opener          string      `json:"opener"`
}

// rpcStart opens an assistant session and returns its first guess with a resume token.
func (m *Module) rpcStart(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req StartRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", codeInvalidArgument)
		}
	}

	var opener domain.Word
	if req.Opener != "" {
		var err error
		if opener, err = domain.ParseWord(req.Opener); err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
	}

	session, events, err := m.service.Start(ctx, opener)
	if err != nil {
		logger.Error("rpcStart: failed to start session: %v", err)
		return "", runtime.NewError("failed to start session", codeInternal)
	}
	return m.respond(logger, session, events)
}

// rpcFeedback applies feedback to the session carried by the token.
func (m *Module) rpcFeedback(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req FeedbackRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	resume, err := m.codec.Decode(req.Token)
	if err != nil {
		logger.Debug("rpcFeedback: rejected token: %v", err)
		return "", runtime.NewError("invalid or expired token", codeUnauthenticated)
	}
	session, err := m.service.Resume(resume)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	fb, err := domain.ParseFeedback(req.Feedback)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	session, events, err := m.service.Advance(ctx, session, fb)
	switch {
	case errors.Is(err, app.ErrSessionClosed), errors.Is(err, app.ErrNoGuess):
		return "", runtime.NewError(err.Error(), codeFailedPrecondition)
	case err != nil:
		logger.Error("rpcFeedback: failed to advance session: %v", err)
		return "", runtime.NewError("failed to choose next guess", codeInternal)
	}
	return m.respond(logger, session, events)
}

// rpcBotRun plays unattended games server-side and records the run for the caller.
func (m *Module) rpcBotRun(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req BotRunRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	if req.Games <= 0 {
		return "", runtime.NewError("games must be positive", codeInvalidArgument)
	}
	if limit := m.settings.BotMaxGames; limit > 0 && req.Games > limit {
		return "", runtime.NewError("too many games requested", codeInvalidArgument)
	}

	agent := &bot.Agent{Service: m.service}
	if req.Opener != "" {
		opener, err := domain.ParseWord(req.Opener)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		agent.Opener = opener
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	harness, err := bot.NewHarness(agent, m.service.Vocabulary().Answers, rand.New(rand.NewSource(seed)), newZapLogger(logger))
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInternal)
	}

	stats, err := harness.Run(ctx, req.Games)
	if err != nil {
		logger.Error("rpcBotRun: run failed after %d games: %v", stats.Games, err)
		return "", runtime.NewError("bot run failed", codeInternal)
	}

	opener := agent.Opener
	if opener == "" {
		// The service memoizes its opener, so this does not search again.
		session, _, err := m.service.Start(ctx, "")
		if err == nil {
			opener = session.Opener
		}
	}
	if err := m.recorder.RecordRun(ctx, stats.Report(opener, time.Now())); err != nil {
		logger.Warn("rpcBotRun: failed to record run: %v", err)
	}

	out, err := json.Marshal(BotRunResponse{
		Games:           stats.Games,
		Wins:            stats.Wins,
		Losses:          stats.Losses,
		AverageAttempts: stats.AverageAttempts(),
		OverPar:         stats.OverPar,
		ElapsedMS:       stats.Elapsed.Milliseconds(),
		Histogram:       stats.Histogram,
		Opener:          string(opener),
	})
	if err != nil {
		return "", runtime.NewError("failed to marshal response", codeInternal)
	}
	return string(out), nil
}

func (m *Module) respond(logger runtime.Logger, session app.Session, events []app.Event) (string, error) {
	resp := sessionResponse(session, events)
	if !session.State.Terminal() {
		token, err := m.codec.Encode(session)
		if err != nil {
			logger.Error("failed to sign resume token: %v", err)
			return "", runtime.NewError("failed to sign token", codeInternal)
		}
		resp.Token = token
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("failed to marshal response", codeInternal)
	}
	return string(out), nil
}

func sessionResponse(session app.Session, events []app.Event) SessionResponse {
	resp := SessionResponse{
		State:      string(session.State),
		Round:      session.Round,
		Guess:      string(session.Guess),
		Candidates: len(session.Pool),
		Answer:     string(session.Answer),
		Attempts:   session.Attempts,
		Reason:     session.Reason,
	}
	for _, ev := range events {
		if p, ok := ev.Payload.(app.GuessProposedPayload); ok {
			resp.Source = string(p.Source)
		}
	}
	if session.State == app.StateExhausted {
		resp.Previous = make([]string, len(session.PreviousPool))
		for i, w := range session.PreviousPool {
			resp.Previous[i] = string(w)
		}
	}
	return resp
}
