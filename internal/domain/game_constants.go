package domain

const (
	// WordLength is the number of letters in every word and feedback vector.
	WordLength = 5

	// SymbolCount is the size of the feedback alphabet.
	SymbolCount = 3

	// OutcomeCount is the number of distinct feedback vectors, SymbolCount^WordLength.
	OutcomeCount = 243

	alphabetSize = 26
)
