package domain

// Compute returns the feedback the game shows for guess when the secret is secret.
//
// Hits are marked first and consume one occurrence of their letter. Remaining
// positions are then scanned left to right: a letter is Present while the
// secret still has an unconsumed occurrence of it, Absent afterwards.
func Compute(secret, guess Word) Feedback {
	var fb Feedback
	var consumed [alphabetSize]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == secret[i] {
			fb[i] = Hit
			consumed[guess[i]-'a']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if fb[i] == Hit {
			continue
		}
		letter := guess[i] - 'a'
		if consumed[letter] < countLetter(secret, guess[i]) {
			fb[i] = Present
			consumed[letter]++
		}
	}
	return fb
}

// IsConsistent reports whether word could still be the secret after guess
// produced fb.
//
// Positions are checked grouped by symbol, Hits first, then Presents, then
// Absents. The grouping matters for repeated letters: an Absent only holds
// once every occurrence of its letter in word is explained by a Hit or a
// Present, wherever those appear in the guess.
func IsConsistent(word, guess Word, fb Feedback) bool {
	var used [alphabetSize]int

	for i := 0; i < WordLength; i++ {
		if fb[i] != Hit {
			continue
		}
		if word[i] != guess[i] {
			return false
		}
		used[guess[i]-'a']++
	}

	for i := 0; i < WordLength; i++ {
		if fb[i] != Present {
			continue
		}
		if word[i] == guess[i] {
			return false
		}
		letter := guess[i] - 'a'
		if used[letter] >= countLetter(word, guess[i]) {
			return false
		}
		used[letter]++
	}

	for i := 0; i < WordLength; i++ {
		if fb[i] != Absent {
			continue
		}
		count := countLetter(word, guess[i])
		if count > 0 && used[guess[i]-'a'] != count {
			return false
		}
	}
	return true
}
