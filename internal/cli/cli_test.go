package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wordlebot/internal/config"
	"wordlebot/internal/domain"
	"wordlebot/internal/ports/file"
)

func newTestOptions(t *testing.T) *rootOptions {
	t.Helper()
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	require.NoError(t, os.WriteFile(answers, []byte("crane\ncrate\ncraze\ngrape\ndrape\n"), 0o644))

	cfg := config.Default()
	cfg.AnswersPath = answers
	cfg.GuessesPath = ""
	cfg.Opener = "crane"
	cfg.LookupPath = filepath.Join(dir, "next_guess.txt")
	cfg.RankingPath = filepath.Join(dir, "first_guess.txt")
	cfg.HistoryPath = filepath.Join(dir, "history.db")
	cfg.Workers = 2
	return &rootOptions{cfg: cfg, logger: zap.NewNop()}
}

func TestRunAssistRepromptsThenSolves(t *testing.T) {
	o := newTestOptions(t)
	var out bytes.Buffer

	err := o.runAssist(context.Background(), strings.NewReader("gxg\nggggg\n"), &out, "")
	require.NoError(t, err)

	got := out.String()
	require.Contains(t, got, "guess 1: crane (5 candidates)")
	require.Contains(t, got, "invalid feedback")
	require.Contains(t, got, "solved: crane in 1 guesses")
	require.Equal(t, 2, strings.Count(got, "guess 1: crane"), "invalid feedback re-prompts the same guess")
}

func TestRunAssistContradiction(t *testing.T) {
	o := newTestOptions(t)
	var out bytes.Buffer

	require.NoError(t, o.runAssist(context.Background(), strings.NewReader("-----\n"), &out, ""))
	require.Contains(t, out.String(), "no candidates left")
	require.Contains(t, out.String(), "crane crate craze grape drape")
}

func TestRunAssistNarrowsPool(t *testing.T) {
	o := newTestOptions(t)
	var out bytes.Buffer

	// crane against crate or craze
	require.NoError(t, o.runAssist(context.Background(), strings.NewReader("ggg-g\n"), &out, ""))
	require.Contains(t, out.String(), "(2 candidates)")
}

func TestRunAssistStopsAtEOF(t *testing.T) {
	o := newTestOptions(t)
	var out bytes.Buffer

	require.NoError(t, o.runAssist(context.Background(), strings.NewReader(""), &out, "grape"))
	require.Contains(t, out.String(), "guess 1: grape")
}

func TestRunBotRecordsHistory(t *testing.T) {
	o := newTestOptions(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, o.runBot(ctx, &out, botFlags{games: 5, seed: 1, record: true}))
	require.True(t, strings.HasPrefix(out.String(), "games=5 "), out.String())

	out.Reset()
	require.NoError(t, o.runHistory(ctx, &out, 0))
	require.Contains(t, out.String(), "opener=crane games=5")
}

func TestRunBotRejectsNoGames(t *testing.T) {
	o := newTestOptions(t)
	require.Error(t, o.runBot(context.Background(), io.Discard, botFlags{games: 0}))
}

func TestRunHistoryEmpty(t *testing.T) {
	o := newTestOptions(t)
	var out bytes.Buffer
	require.NoError(t, o.runHistory(context.Background(), &out, 10))
	require.Equal(t, "no runs recorded\n", out.String())
}

func TestRunRankOpenersWritesRanking(t *testing.T) {
	o := newTestOptions(t)
	var out bytes.Buffer

	require.NoError(t, o.runRankOpeners(context.Background(), &out, io.Discard, 3))
	require.Equal(t, 3, strings.Count(out.String(), "\n"))

	f, err := os.Open(o.cfg.RankingPath)
	require.NoError(t, err)
	defer f.Close()
	ranked, err := file.ReadRanking(f)
	require.NoError(t, err)
	require.Len(t, ranked, 5)
	for i := 1; i < len(ranked); i++ {
		require.LessOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRunBuildLookupFeedsAssist(t *testing.T) {
	o := newTestOptions(t)
	var out bytes.Buffer

	require.NoError(t, o.runBuildLookup(context.Background(), &out, io.Discard, ""))
	require.Contains(t, out.String(), "for opener crane")

	table, err := file.LoadLookup(o.cfg.LookupPath, "")
	require.NoError(t, err)
	require.NotNil(t, table)
	require.Equal(t, domain.Word("crane"), table.Opener)

	fb, err := domain.ParseFeedback("ggg-g")
	require.NoError(t, err)
	guess, ok, err := table.SecondGuess(context.Background(), "crane", fb)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, guess.Valid())
}

func TestVersionCommandSkipsConfig(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--config", filepath.Join(t.TempDir(), "broken.yaml")})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "wordlebot dev\n", out.String())
}
