package file

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

const (
	entrySeparator = " - "
	openerHeader   = "# opener:"
)

// ReadLookup parses a second-guess table. Lines are "<feedback> - <word>";
// the key may also be written as a list such as ['g', 'o', '-', '-', '-'].
// A "# opener: <word>" header overrides defaultOpener.
func ReadLookup(r io.Reader, defaultOpener domain.Word) (*ports.LookupTable, error) {
	table := ports.NewLookupTable(defaultOpener)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, openerHeader); ok {
			opener, err := domain.ParseWord(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: opener: %w", lineNo, err)
			}
			table.Opener = opener
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.LastIndex(line, entrySeparator)
		if idx < 0 {
			return nil, fmt.Errorf("line %d: missing %q separator", lineNo, entrySeparator)
		}
		fb, err := domain.ParseFeedback(feedbackSymbols(line[:idx]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		guess, err := domain.ParseWord(line[idx+len(entrySeparator):])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		table.Entries[fb] = guess
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lookup: %w", err)
	}
	return table, nil
}

// LoadLookup reads the table at path. A missing file yields a nil table and no error.
func LoadLookup(path string, defaultOpener domain.Word) (*ports.LookupTable, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open lookup: %w", err)
	}
	defer f.Close()
	return ReadLookup(f, defaultOpener)
}

// WriteLookup writes table with its opener header, entries ordered by feedback index.
func WriteLookup(w io.Writer, table *ports.LookupTable) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %s\n", openerHeader, table.Opener)

	keys := make([]domain.Feedback, 0, len(table.Entries))
	for fb := range table.Entries {
		keys = append(keys, fb)
	}
	slices.SortFunc(keys, func(a, b domain.Feedback) int { return a.Index() - b.Index() })
	for _, fb := range keys {
		fmt.Fprintf(bw, "%s%s%s\n", fb, entrySeparator, table.Entries[fb])
	}
	return bw.Flush()
}

// SaveLookup writes table to path, replacing any existing file.
func SaveLookup(path string, table *ports.LookupTable) error {
	return writeFile(path, func(w io.Writer) error { return WriteLookup(w, table) })
}

func feedbackSymbols(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case domain.HitChar, domain.PresentChar, domain.AbsentChar, 'G', 'O':
			b.WriteByte(key[i])
		}
	}
	return b.String()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
