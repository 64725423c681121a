package nakama

const (
	RpcSolverStart    = "solver_start"
	RpcSolverFeedback = "solver_feedback"
	RpcSolverBotRun   = "solver_bot_run"
	// RpcAssistMatch finds or creates an assistant match clients can join.
	RpcAssistMatch = "solver_assist_match"

	// MatchNameAssist is the authoritative match handler name registered with Nakama.
	MatchNameAssist = "solver_assist"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpSubmitFeedback int64 = 1
	OpRestart        int64 = 2

	// Server -> Client events, sent to the session owner only
	OpGuessProposed   int64 = 101
	OpSolved          int64 = 102
	OpExhausted       int64 = 103
	OpInvalidFeedback int64 = 104
)

// gRPC status codes returned through runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)

const (
	lookupCollection = "solver_lookup"
	runsCollection   = "solver_runs"
)

const (
	labelKeyOpen     = "open"
	labelKeySessions = "sessions"
	labelKeyMode     = "mode"
	labelModeAssist  = "assist"

	// maxAssistSessions caps concurrent users in one assistant match.
	maxAssistSessions = 16
)
