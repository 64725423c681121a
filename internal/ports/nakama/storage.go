package nakama

import (
	"context"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// StorageReader is the subset of runtime.NakamaModule used to read storage objects.
type StorageReader interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
}

// StorageWriter is the subset of runtime.NakamaModule used to write storage objects.
type StorageWriter interface {
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}
