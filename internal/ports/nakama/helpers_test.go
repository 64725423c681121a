package nakama

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"wordlebot/internal/app"
	"wordlebot/internal/bot"
	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

var testAnswers = []domain.Word{"crane", "crate", "craze", "grape", "drape"}

func testService(t *testing.T, opts ...app.Option) *app.Service {
	t.Helper()
	vocab, err := domain.NewVocabulary(testAnswers, []domain.Word{"salty"})
	require.NoError(t, err)
	opts = append([]app.Option{app.WithOpener("crane")}, opts...)
	svc, err := app.NewService(vocab, bot.NewSelector(bot.Tuning{Workers: 2}), opts...)
	require.NoError(t, err)
	return svc
}

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type sentMessage struct {
	opCode     int64
	data       []byte
	recipients []string
}

// fields decodes the protojson payload of the message.
func (m sentMessage) fields(t *testing.T) map[string]interface{} {
	t.Helper()
	st := &structpb.Struct{}
	require.NoError(t, protojson.Unmarshal(m.data, st))
	return st.AsMap()
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	sent   []sentMessage
	labels []string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	msg := sentMessage{opCode: opCode, data: append([]byte(nil), data...)}
	for _, p := range presences {
		msg.recipients = append(msg.recipients, p.GetUserId())
	}
	md.sent = append(md.sent, msg)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labels = append(md.labels, label)
	return nil
}

func (md *mockDispatcher) last(t *testing.T) sentMessage {
	t.Helper()
	require.NotEmpty(t, md.sent, "no messages sent")
	return md.sent[len(md.sent)-1]
}

type testPresence struct {
	runtime.Presence
	userID string
}

func (p testPresence) GetUserId() string { return p.userID }

type testMatchData struct {
	runtime.MatchData
	userID string
	opCode int64
	data   []byte
}

func (d testMatchData) GetUserId() string { return d.userID }
func (d testMatchData) GetOpCode() int64  { return d.opCode }
func (d testMatchData) GetData() []byte   { return d.data }

// memoryStorage is an in-memory StorageReader and StorageWriter.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string]*api.StorageObject
	batches int
	readErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string]*api.StorageObject)}
}

func storageID(collection, key, userID string) string {
	return fmt.Sprintf("%s/%s/%s", collection, key, userID)
}

func (s *memoryStorage) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	var out []*api.StorageObject
	for _, r := range reads {
		if obj, ok := s.objects[storageID(r.Collection, r.Key, r.UserID)]; ok {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (s *memoryStorage) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	acks := make([]*api.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		s.objects[storageID(w.Collection, w.Key, w.UserID)] = &api.StorageObject{
			Collection:      w.Collection,
			Key:             w.Key,
			UserId:          w.UserID,
			Value:           w.Value,
			PermissionRead:  int32(w.PermissionRead),
			PermissionWrite: int32(w.PermissionWrite),
		}
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key, UserId: w.UserID})
	}
	return acks, nil
}

type memoryRecorder struct {
	runs []ports.RunSummary
}

func (r *memoryRecorder) RecordRun(ctx context.Context, run ports.RunSummary) error {
	r.runs = append(r.runs, run)
	return nil
}
