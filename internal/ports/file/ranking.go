package file

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

// WriteRanking writes one "<word> - <score>" line per entry with two decimals.
func WriteRanking(w io.Writer, ranked []ports.RankedWord) error {
	bw := bufio.NewWriter(w)
	for _, r := range ranked {
		fmt.Fprintf(bw, "%s%s%.2f\n", r.Word, entrySeparator, r.Score)
	}
	return bw.Flush()
}

// SaveRanking writes ranked to path, replacing any existing file.
func SaveRanking(path string, ranked []ports.RankedWord) error {
	return writeFile(path, func(w io.Writer) error { return WriteRanking(w, ranked) })
}

// ReadRanking parses a ranking written by WriteRanking.
func ReadRanking(r io.Reader) ([]ports.RankedWord, error) {
	var ranked []ports.RankedWord
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, score, ok := strings.Cut(line, entrySeparator)
		if !ok {
			return nil, fmt.Errorf("line %d: missing %q separator", lineNo, entrySeparator)
		}
		w, err := domain.ParseWord(word)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		s, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: score: %w", lineNo, err)
		}
		ranked = append(ranked, ports.RankedWord{Word: w, Score: s})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	return ranked, nil
}
