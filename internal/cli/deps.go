package cli

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"wordlebot/internal/app"
	"wordlebot/internal/bot"
	"wordlebot/internal/domain"
	"wordlebot/internal/ports/file"
	"wordlebot/internal/wordlist"
)

func (o *rootOptions) vocabulary() (*domain.Vocabulary, error) {
	return wordlist.Load(o.cfg.AnswersPath, o.cfg.GuessesPath)
}

func (o *rootOptions) tuning() bot.Tuning {
	return bot.Tuning{Workers: o.cfg.Workers}
}

// opener resolves a --opener flag against the configured opener.
// Empty means the service selects one.
func (o *rootOptions) opener(flag string) (domain.Word, error) {
	raw := flag
	if raw == "" {
		raw = o.cfg.Opener
	}
	if raw == "" {
		return "", nil
	}
	return domain.ParseWord(raw)
}

// service builds the solver with the file lookup, when one exists.
func (o *rootOptions) service(vocab *domain.Vocabulary, opener domain.Word) (*app.Service, error) {
	opts := []app.Option{
		app.WithLogger(o.logger),
		app.WithOpener(opener),
		app.WithLimits(app.Limits{MaxRounds: o.cfg.MaxRounds}),
	}
	if o.cfg.LookupPath != "" {
		table, err := file.LoadLookup(o.cfg.LookupPath, opener)
		if err != nil {
			return nil, err
		}
		if table != nil {
			opts = append(opts, app.WithLookup(table))
		}
	}
	return app.NewService(vocab, bot.NewSelector(o.tuning()), opts...)
}

// progress renders a progress bar for offline sweeps. report is safe for
// concurrent use and counts one step per call.
type progress struct {
	out  io.Writer
	desc string

	once sync.Once
	bar  *progressbar.ProgressBar
}

func newProgress(out io.Writer, desc string) *progress {
	return &progress{out: out, desc: desc}
}

func (p *progress) report(_, total int) {
	p.once.Do(func() {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(p.desc),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	})
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
