package nakama

import (
	"context"
	"database/sql"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"wordlebot/internal/app"
	"wordlebot/internal/domain"
)

// MatchState holds the authoritative runtime state of an assistant match.
// Every user gets a private session; events go to the owning presence only.
type MatchState struct {
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	Sessions  map[string]app.Session      `json:"-"` // Map UserId -> solving session
}

func (ms *MatchState) open() bool {
	return len(ms.Presences) < maxAssistSessions
}

type matchHandler struct {
	service *app.Service
}

func newMatchHandler(service *app.Service) *matchHandler {
	return &matchHandler{service: service}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		Sessions:  make(map[string]app.Session),
	}

	label, err := matchLabel(true, 0)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if _, rejoin := matchState.Presences[presence.GetUserId()]; !rejoin && !matchState.open() {
		return state, false, "Match full"
	}
	return state, true, ""
}

// MatchJoin starts a session for each new user and sends them its opener.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if _, ok := matchState.Sessions[p.GetUserId()]; ok {
			logger.Debug("MatchJoin: User %s rejoined, keeping session.", p.GetUserId())
			continue
		}
		mh.startSession(ctx, matchState, dispatcher, logger, p.GetUserId())
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave drops the sessions of departing users and ends the match once empty.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		delete(matchState.Sessions, p.GetUserId())
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating empty match.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpSubmitFeedback:
			mh.handleFeedback(ctx, matchState, dispatcher, logger, msg)
		case OpRestart:
			mh.startSession(ctx, matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

func (mh *matchHandler) startSession(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	session, events, err := mh.service.Start(ctx, "")
	if err != nil {
		logger.Error("Failed to start session for %s: %v", userID, err)
		mh.sendInvalid(state, dispatcher, logger, userID, "", "failed to start session")
		return
	}
	state.Sessions[userID] = session
	mh.sendEvents(state, dispatcher, logger, userID, events)
}

func (mh *matchHandler) handleFeedback(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	raw := decodeFeedback(msg.GetData())

	session, ok := state.Sessions[userID]
	if !ok {
		mh.sendInvalid(state, dispatcher, logger, userID, raw, "no session, send restart")
		return
	}
	if session.State.Terminal() {
		mh.sendInvalid(state, dispatcher, logger, userID, raw, "session finished, send restart")
		return
	}

	fb, err := domain.ParseFeedback(raw)
	if err != nil {
		mh.sendInvalid(state, dispatcher, logger, userID, raw, err.Error())
		return
	}

	next, events, err := mh.service.Advance(ctx, session, fb)
	if err != nil {
		logger.Error("Failed to advance session for %s: %v", userID, err)
		mh.sendInvalid(state, dispatcher, logger, userID, raw, "failed to choose next guess")
		return
	}
	state.Sessions[userID] = next
	mh.sendEvents(state, dispatcher, logger, userID, events)
}

func (mh *matchHandler) sendEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, events []app.Event) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	for _, ev := range events {
		opCode, fields, ok := eventMessage(ev)
		if !ok {
			continue
		}
		data, err := marshalStruct(fields)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}
		if err := dispatcher.BroadcastMessage(opCode, data, []runtime.Presence{presence}, nil, true); err != nil {
			logger.Error("Failed to send event %v to %s: %v", ev.Kind, userID, err)
		}
	}
}

// sendInvalid tells a user their message was rejected. Their session is unchanged.
func (mh *matchHandler) sendInvalid(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, feedback, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	data, err := marshalStruct(map[string]interface{}{
		"feedback": feedback,
		"message":  message,
	})
	if err != nil {
		logger.Error("Failed to marshal invalid feedback message: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpInvalidFeedback, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send invalid feedback to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state.open(), len(state.Presences))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with grace %d", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
