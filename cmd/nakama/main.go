package main

import (
	"context"
	"database/sql"

	"wordlebot/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is unused: this package is loaded by Nakama as a plugin
// (-buildmode=plugin); it exists so `go build ./...` can link it.
func main() {}
