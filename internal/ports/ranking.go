package ports

import "wordlebot/internal/domain"

// RankedWord is one entry of the opener ranking.
type RankedWord struct {
	Word  domain.Word
	Score float64
}
