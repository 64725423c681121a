package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

// lookupBatchSize bounds the objects sent in one StorageWrite call.
const lookupBatchSize = 100

type lookupValue struct {
	Guess string `json:"guess"`
}

func lookupKey(opener domain.Word, fb domain.Feedback) string {
	return string(opener) + "/" + fb.String()
}

// NakamaLookupAdapter implements ports.LookupPort on system-owned storage objects.
type NakamaLookupAdapter struct {
	reader StorageReader
}

// NewNakamaLookupAdapter creates a lookup adapter.
func NewNakamaLookupAdapter(reader StorageReader) *NakamaLookupAdapter {
	return &NakamaLookupAdapter{reader: reader}
}

// SecondGuess reads the entry stored for opener and fb.
func (a *NakamaLookupAdapter) SecondGuess(ctx context.Context, opener domain.Word, fb domain.Feedback) (domain.Word, bool, error) {
	objects, err := a.reader.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: lookupCollection,
		Key:        lookupKey(opener, fb),
	}})
	if err != nil {
		return "", false, fmt.Errorf("failed to read lookup entry: %w", err)
	}
	if len(objects) == 0 {
		return "", false, nil
	}

	var value lookupValue
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &value); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal lookup entry: %w", err)
	}
	guess, err := domain.ParseWord(value.Guess)
	if err != nil {
		return "", false, fmt.Errorf("lookup entry %s: %w", objects[0].GetKey(), err)
	}
	return guess, true, nil
}

// SeedLookup stores every entry of table as a public-read system object.
func SeedLookup(ctx context.Context, writer StorageWriter, table *ports.LookupTable) error {
	writes := make([]*runtime.StorageWrite, 0, lookupBatchSize)
	flush := func() error {
		if len(writes) == 0 {
			return nil
		}
		if _, err := writer.StorageWrite(ctx, writes); err != nil {
			return fmt.Errorf("failed to write lookup entries: %w", err)
		}
		writes = writes[:0]
		return nil
	}

	for fb, guess := range table.Entries {
		value, err := json.Marshal(lookupValue{Guess: string(guess)})
		if err != nil {
			return fmt.Errorf("failed to marshal lookup entry: %w", err)
		}
		writes = append(writes, &runtime.StorageWrite{
			Collection:      lookupCollection,
			Key:             lookupKey(table.Opener, fb),
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		})
		if len(writes) == lookupBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

var _ ports.LookupPort = (*NakamaLookupAdapter)(nil)
