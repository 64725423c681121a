package nakama

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"wordlebot/internal/app"
	"wordlebot/internal/domain"
)

func wordsToList(words []domain.Word) []interface{} {
	out := make([]interface{}, len(words))
	for i, w := range words {
		out[i] = string(w)
	}
	return out
}

// marshalStruct encodes fields as a protojson google.protobuf.Struct.
func marshalStruct(fields map[string]interface{}) ([]byte, error) {
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return protojson.Marshal(st)
}

// eventMessage maps an app event to its op code and payload fields.
// ok is false for events that are not sent to clients.
func eventMessage(ev app.Event) (opCode int64, fields map[string]interface{}, ok bool) {
	switch p := ev.Payload.(type) {
	case app.GuessProposedPayload:
		return OpGuessProposed, map[string]interface{}{
			"round":      p.Round,
			"guess":      string(p.Guess),
			"source":     string(p.Source),
			"candidates": p.Candidates,
		}, true
	case app.SolvedPayload:
		return OpSolved, map[string]interface{}{
			"answer":   string(p.Answer),
			"attempts": p.Attempts,
			"deduced":  p.Deduced,
		}, true
	case app.ExhaustedPayload:
		return OpExhausted, map[string]interface{}{
			"round":    p.Round,
			"reason":   p.Reason,
			"previous": wordsToList(p.Previous),
		}, true
	default:
		return 0, nil, false
	}
}

// decodeFeedback extracts the feedback text from a match message. Messages are
// protojson structs with a "feedback" field; bare text is accepted too.
func decodeFeedback(data []byte) string {
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(data, st); err == nil {
		if v, ok := st.GetFields()["feedback"]; ok {
			return v.GetStringValue()
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func matchLabel(open bool, sessions int) (string, error) {
	b, err := marshalStruct(map[string]interface{}{
		labelKeyOpen:     open,
		labelKeySessions: sessions,
		labelKeyMode:     labelModeAssist,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
