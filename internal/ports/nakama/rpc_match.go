package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// AssistMatchResponse is returned to clients looking for an assistant match.
type AssistMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// matchFinder is the subset of runtime.NakamaModule used to find or create matches.
type matchFinder interface {
	MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error)
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

func rpcAssistMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	resp, err := findOrCreateAssistMatch(ctx, nk)
	if err != nil {
		logger.Error("rpcAssistMatch [User:%s]: %v", userID, err)
		return "", runtime.NewError("failed to find a match", codeInternal)
	}
	if resp.IsNew {
		logger.Info("rpcAssistMatch [User:%s]: Created new match %s", userID, resp.MatchID)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("failed to marshal response", codeInternal)
	}
	return string(b), nil
}

// findOrCreateAssistMatch returns an open assistant match, creating one when none has room.
func findOrCreateAssistMatch(ctx context.Context, finder matchFinder) (AssistMatchResponse, error) {
	query := fmt.Sprintf("+label.%s:T +label.%s:%s", labelKeyOpen, labelKeyMode, labelModeAssist)
	minSize := 0
	maxSize := maxAssistSessions - 1

	matches, err := finder.MatchList(ctx, 1, true, "", &minSize, &maxSize, query)
	if err != nil {
		return AssistMatchResponse{}, fmt.Errorf("failed to list matches: %w", err)
	}
	if len(matches) > 0 {
		return AssistMatchResponse{MatchID: matches[0].GetMatchId()}, nil
	}

	matchID, err := finder.MatchCreate(ctx, MatchNameAssist, map[string]interface{}{})
	if err != nil {
		return AssistMatchResponse{}, fmt.Errorf("failed to create match: %w", err)
	}
	return AssistMatchResponse{MatchID: matchID, IsNew: true}, nil
}
