package domain

import "iter"

// Outcomes yields every feedback vector exactly once by counting in base 3.
// The sequence is finite and each range over it starts from the beginning.
func Outcomes() iter.Seq[Feedback] {
	return func(yield func(Feedback) bool) {
		for idx := 0; idx < OutcomeCount; idx++ {
			if !yield(FeedbackFromIndex(idx)) {
				return
			}
		}
	}
}
