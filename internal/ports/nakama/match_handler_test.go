package nakama

import (
	"context"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/require"

	"wordlebot/internal/app"
)

func newTestMatch(t *testing.T) (*matchHandler, *MatchState) {
	t.Helper()
	mh := newMatchHandler(testService(t))
	state, tickRate, label := mh.MatchInit(context.Background(), noopLogger{}, nil, nil, nil)
	require.Equal(t, 1, tickRate)
	require.NotEmpty(t, label)
	return mh, state.(*MatchState)
}

func feedbackMessage(userID, feedback string) runtime.MatchData {
	return testMatchData{
		userID: userID,
		opCode: OpSubmitFeedback,
		data:   []byte(`{"feedback":"` + feedback + `"}`),
	}
}

func TestMatchJoinStartsSessionWithOpener(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{testPresence{userID: "u1"}})

	session, ok := state.Sessions["u1"]
	require.True(t, ok)
	require.Equal(t, app.StateGuessing, session.State)

	msg := dispatcher.last(t)
	require.Equal(t, OpGuessProposed, msg.opCode)
	require.Equal(t, []string{"u1"}, msg.recipients)
	fields := msg.fields(t)
	require.Equal(t, "crane", fields["guess"])
	require.Equal(t, string(app.SourceOpener), fields["source"])
	require.EqualValues(t, len(testAnswers), fields["candidates"])

	require.Len(t, dispatcher.labels, 1)
}

func TestMatchLoopSolvesAndRepliesToOwnerOnly(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}
	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{
		testPresence{userID: "u1"},
		testPresence{userID: "u2"},
	})
	dispatcher.sent = nil

	mh.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{feedbackMessage("u1", "ggggg")})

	require.Len(t, dispatcher.sent, 1)
	msg := dispatcher.sent[0]
	require.Equal(t, OpSolved, msg.opCode)
	require.Equal(t, []string{"u1"}, msg.recipients)
	fields := msg.fields(t)
	require.Equal(t, "crane", fields["answer"])
	require.EqualValues(t, 1, fields["attempts"])
	require.Equal(t, false, fields["deduced"])

	require.Equal(t, app.StateSolved, state.Sessions["u1"].State)
	require.Equal(t, app.StateGuessing, state.Sessions["u2"].State)
	require.EqualValues(t, 2, state.Tick)
}

func TestMatchLoopProposesNextGuess(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}
	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{testPresence{userID: "u1"}})

	// crane against crate or craze
	mh.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{feedbackMessage("u1", "ggg-g")})

	msg := dispatcher.last(t)
	require.Equal(t, OpGuessProposed, msg.opCode)
	fields := msg.fields(t)
	require.EqualValues(t, 2, fields["round"])
	require.EqualValues(t, 2, fields["candidates"])
	require.Equal(t, 1, state.Sessions["u1"].Round)
}

func TestMatchLoopRejectsInvalidFeedback(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}
	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{testPresence{userID: "u1"}})
	before := state.Sessions["u1"]

	mh.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{feedbackMessage("u1", "gxg")})

	msg := dispatcher.last(t)
	require.Equal(t, OpInvalidFeedback, msg.opCode)
	require.Equal(t, "gxg", msg.fields(t)["feedback"])
	require.Equal(t, before.Version, state.Sessions["u1"].Version)
}

// closedDispatcher records messages but reports every broadcast as failed.
type closedDispatcher struct {
	*mockDispatcher
}

func (cd closedDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	_ = cd.mockDispatcher.BroadcastMessage(opCode, data, presences, sender, reliable)
	return errors.New("presence stream closed")
}

func TestMatchLoopLogsFailedInvalidFeedbackSend(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}
	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{testPresence{userID: "u1"}})

	var lines []logLine
	logger := recordingLogger{lines: &lines}
	mh.MatchLoop(ctx, logger, nil, nil, closedDispatcher{dispatcher}, 2, state, []runtime.MatchData{feedbackMessage("u1", "gxg")})

	require.Equal(t, OpInvalidFeedback, dispatcher.last(t).opCode)
	var found bool
	for _, line := range lines {
		if line.level == "error" && line.msg == "Failed to send invalid feedback to u1: presence stream closed" {
			found = true
		}
	}
	require.True(t, found, "broadcast failure not logged: %+v", lines)
}

func TestMatchLoopAcceptsPlainTextFeedback(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}
	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{testPresence{userID: "u1"}})

	mh.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		testMatchData{userID: "u1", opCode: OpSubmitFeedback, data: []byte("GGGGG\n")},
	})

	require.Equal(t, OpSolved, dispatcher.last(t).opCode)
}

func TestMatchLoopRestartAfterSolve(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}
	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{testPresence{userID: "u1"}})
	mh.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{feedbackMessage("u1", "ggggg")})

	mh.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{feedbackMessage("u1", "ggggg")})
	require.Equal(t, OpInvalidFeedback, dispatcher.last(t).opCode)

	mh.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 4, state, []runtime.MatchData{
		testMatchData{userID: "u1", opCode: OpRestart},
	})
	require.Equal(t, OpGuessProposed, dispatcher.last(t).opCode)
	require.Equal(t, app.StateGuessing, state.Sessions["u1"].State)
	require.Equal(t, 0, state.Sessions["u1"].Round)
}

func TestMatchJoinAttemptRejectsFullMatch(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	for i := 0; i < maxAssistSessions; i++ {
		p := testPresence{userID: string(rune('a' + i))}
		state.Presences[p.userID] = p
	}

	_, ok, reason := mh.MatchJoinAttempt(ctx, noopLogger{}, nil, nil, &mockDispatcher{}, 1, state, testPresence{userID: "late"}, nil)
	require.False(t, ok)
	require.Equal(t, "Match full", reason)

	_, ok, _ = mh.MatchJoinAttempt(ctx, noopLogger{}, nil, nil, &mockDispatcher{}, 1, state, testPresence{userID: "a"}, nil)
	require.True(t, ok, "rejoining user is admitted")
}

func TestMatchLeaveTerminatesWhenEmpty(t *testing.T) {
	ctx := context.Background()
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}
	u1, u2 := testPresence{userID: "u1"}, testPresence{userID: "u2"}
	mh.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{u1, u2})

	next := mh.MatchLeave(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.Presence{u1})
	require.NotNil(t, next)
	require.NotContains(t, state.Sessions, "u1")
	require.Contains(t, state.Sessions, "u2")

	require.Nil(t, mh.MatchLeave(ctx, noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.Presence{u2}))
}
