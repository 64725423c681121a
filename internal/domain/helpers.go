package domain

// Filter returns the words of pool consistent with guess and fb, preserving order.
// The result never aliases pool.
func Filter(pool []Word, guess Word, fb Feedback) []Word {
	out := make([]Word, 0, len(pool))
	for _, w := range pool {
		if IsConsistent(w, guess, fb) {
			out = append(out, w)
		}
	}
	return out
}

// CountConsistent counts the words of pool consistent with guess and fb.
func CountConsistent(pool []Word, guess Word, fb Feedback) int {
	n := 0
	for _, w := range pool {
		if IsConsistent(w, guess, fb) {
			n++
		}
	}
	return n
}

func countLetter(w Word, letter byte) int {
	n := 0
	for i := 0; i < len(w); i++ {
		if w[i] == letter {
			n++
		}
	}
	return n
}
