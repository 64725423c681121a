package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"wordlebot/internal/domain"
)

func TestRead(t *testing.T) {
	words, err := Read(strings.NewReader("crane\n\nTRACE\r\n  \nslate"))
	require.NoError(t, err)
	require.Equal(t, []domain.Word{"crane", "trace", "slate"}, words)
}

func TestRead_ReportsLine(t *testing.T) {
	_, err := Read(strings.NewReader("crane\ncranes\n"))
	require.ErrorIs(t, err, domain.ErrInvalidWord)
	require.Contains(t, err.Error(), "line 2")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	guesses := filepath.Join(dir, "guesses.txt")
	require.NoError(t, os.WriteFile(answers, []byte("crane\ntrace\n"), 0o644))
	require.NoError(t, os.WriteFile(guesses, []byte("salty\ncrane\n"), 0o644))

	vocab, err := Load(answers, guesses)
	require.NoError(t, err)
	require.Equal(t, []domain.Word{"crane", "trace", "salty"}, vocab.All())

	vocab, err = Load(answers, "")
	require.NoError(t, err)
	require.Equal(t, []domain.Word{"crane", "trace"}, vocab.All())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.txt"), "")
	require.True(t, errors.Is(err, os.ErrNotExist))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Load(empty, "")
	require.Error(t, err)
}
