package nakama

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"wordlebot/internal/app"
	"wordlebot/internal/bot"
	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
	"wordlebot/internal/ports/file"
	"wordlebot/internal/wordlist"
)

// Module holds the solver service shared by every RPC and match.
type Module struct {
	service  *app.Service
	codec    *app.ResumeCodec
	recorder ports.RunRecorder
	settings Settings
}

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	vars, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	settings, err := LoadSettings(vars)
	if err != nil {
		return err
	}

	module, err := NewModule(ctx, logger, nk, settings)
	if err != nil {
		return err
	}
	if err := module.Register(initializer); err != nil {
		return err
	}

	logger.Info("Wordle solver module loaded.")
	return nil
}

// NewModule loads the word lists, seeds the second-guess lookup into storage
// and builds the solver service.
func NewModule(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, settings Settings) (*Module, error) {
	vocab, err := wordlist.Load(settings.AnswersPath, settings.GuessesPath)
	if err != nil {
		return nil, err
	}

	var opener domain.Word
	if settings.Opener != "" {
		if opener, err = domain.ParseWord(settings.Opener); err != nil {
			return nil, fmt.Errorf("solver_opener: %w", err)
		}
	}

	if settings.LookupPath != "" {
		table, err := file.LoadLookup(settings.LookupPath, opener)
		if err != nil {
			return nil, err
		}
		switch {
		case table == nil:
			logger.Warn("No lookup table at %s, second guesses will be searched.", settings.LookupPath)
		case table.Opener == "":
			logger.Warn("Lookup table %s names no opener, skipping seed.", settings.LookupPath)
		case opener != "" && table.Opener != opener:
			logger.Warn("Lookup table opener %s differs from solver_opener %s, skipping seed.", table.Opener, opener)
		default:
			if err := SeedLookup(ctx, nk, table); err != nil {
				return nil, err
			}
			logger.Info("Seeded %d lookup entries for opener %s.", len(table.Entries), table.Opener)
		}
	}

	selector := bot.NewSelector(bot.Tuning{Workers: settings.Workers})
	service, err := app.NewService(vocab, selector,
		app.WithLogger(newZapLogger(logger)),
		app.WithLookup(NewNakamaLookupAdapter(nk)),
		app.WithOpener(opener),
		app.WithLimits(app.Limits{MaxRounds: settings.MaxRounds}),
	)
	if err != nil {
		return nil, err
	}

	secret := settings.ResumeSecret
	if secret == "" {
		if secret, err = randomSecret(); err != nil {
			return nil, err
		}
		logger.Warn("solver_resume_secret is not set, resume tokens will not survive a restart.")
	}
	codec, err := app.NewResumeCodec(secret, settings.ResumeIssuer, settings.ResumeTTL)
	if err != nil {
		return nil, err
	}

	return &Module{
		service:  service,
		codec:    codec,
		recorder: NewNakamaRunRecorder(nk),
		settings: settings,
	}, nil
}

// Register installs the solver RPCs and the assistant match handler.
func (m *Module) Register(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcSolverStart:    m.rpcStart,
		RpcSolverFeedback: m.rpcFeedback,
		RpcSolverBotRun:   m.rpcBotRun,
		RpcAssistMatch:    rpcAssistMatch,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return fmt.Errorf("register rpc %s: %w", id, err)
		}
	}

	return initializer.RegisterMatch(MatchNameAssist, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(m.service), nil
	})
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate resume secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
