package bot

import (
	"context"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"wordlebot/internal/app"
	"wordlebot/internal/domain"
)

func TestHarness_NoRepeatWithinCycle(t *testing.T) {
	h, err := NewHarness(&Agent{Service: testService(t)}, testAnswers, rand.New(rand.NewSource(7)), nil)
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}

	for cycle := 0; cycle < 3; cycle++ {
		seen := make(map[domain.Word]bool, len(testAnswers))
		for i := 0; i < len(testAnswers); i++ {
			secret := h.nextSecret()
			if seen[secret] {
				t.Fatalf("cycle %d repeated %s", cycle, secret)
			}
			seen[secret] = true
		}
		if len(seen) != len(testAnswers) {
			t.Fatalf("cycle %d drew %d distinct secrets", cycle, len(seen))
		}
	}
}

func TestHarness_SeedIsReproducible(t *testing.T) {
	draw := func() []domain.Word {
		h, err := NewHarness(&Agent{Service: testService(t)}, testAnswers, rand.New(rand.NewSource(42)), nil)
		if err != nil {
			t.Fatalf("NewHarness: %v", err)
		}
		out := make([]domain.Word, 30)
		for i := range out {
			out[i] = h.nextSecret()
		}
		return out
	}
	a, b := draw(), draw()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestHarness_RunSolvesEveryAnswer(t *testing.T) {
	agent := &Agent{Service: testService(t), Opener: "trace"}
	h, err := NewHarness(agent, testAnswers, rand.New(rand.NewSource(1)), zap.NewNop())
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}

	stats, err := h.Run(context.Background(), len(testAnswers))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Games != len(testAnswers) || stats.Wins != len(testAnswers) || stats.Losses != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	// trace solves itself in one; every other answer needs two or three.
	if stats.Histogram[1] != 1 || stats.Histogram[1]+stats.Histogram[2]+stats.Histogram[3] != stats.Wins {
		t.Fatalf("histogram = %v", stats.Histogram)
	}
	if stats.OverPar != 0 {
		t.Fatalf("over par = %d", stats.OverPar)
	}
	if stats.Elapsed <= 0 {
		t.Fatal("elapsed not recorded")
	}
}

func TestHarness_RunStopsOnCancel(t *testing.T) {
	h, err := NewHarness(&Agent{Service: testService(t), Opener: "trace"}, testAnswers, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := h.Run(ctx, 5)
	if err == nil || stats.Games != 0 {
		t.Fatalf("Run = %+v, %v; want canceled before any game", stats, err)
	}
}

func TestNewHarness_Validates(t *testing.T) {
	if _, err := NewHarness(nil, testAnswers, nil, nil); err == nil {
		t.Fatal("expected error for nil agent")
	}
	if _, err := NewHarness(&Agent{Service: testService(t)}, nil, nil, nil); err == nil {
		t.Fatal("expected error for empty answers")
	}
}

func TestAgent_PlayRecordsSecret(t *testing.T) {
	agent := &Agent{Service: testService(t), Opener: "trace"}
	session, err := agent.Play(context.Background(), "drape")
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if session.Secret != "drape" || session.Answer != "drape" || !session.State.Won() {
		t.Fatalf("session = %+v", session)
	}
}

func TestAgent_PlayWithRoundLimit(t *testing.T) {
	agent := &Agent{Service: testService(t, app.WithLimits(app.Limits{MaxRounds: 1})), Opener: "trace"}
	session, err := agent.Play(context.Background(), "slate")
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if session.State != app.StateExhausted || session.Reason != app.ReasonRoundLimit {
		t.Fatalf("state=%s reason=%s", session.State, session.Reason)
	}
}
