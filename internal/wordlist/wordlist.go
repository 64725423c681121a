package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"wordlebot/internal/domain"
)

// Read parses one word per line. Blank lines are skipped and words are
// lower-cased; anything else that is not a five-letter word is an error.
func Read(r io.Reader) ([]domain.Word, error) {
	var words []domain.Word
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		w, err := domain.ParseWord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadFile reads the word list at path.
func ReadFile(path string) ([]domain.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Load reads both lists and builds the vocabulary. An empty guessesPath means
// the answers are the only permitted guesses.
func Load(answersPath, guessesPath string) (*domain.Vocabulary, error) {
	answers, err := ReadFile(answersPath)
	if err != nil {
		return nil, err
	}
	var guesses []domain.Word
	if guessesPath != "" {
		if guesses, err = ReadFile(guessesPath); err != nil {
			return nil, err
		}
	}
	return domain.NewVocabulary(answers, guesses)
}
