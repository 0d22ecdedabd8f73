// Package xtest is shared test-support code used across the full-text
// index packages: a fixed golden corpus (spec.md §8's worked examples)
// and a randomized-corpus generator for property tests.
package xtest

import (
	"bytes"
	"math/rand/v2"
)

// AbracadabraCorpus is the corpus spec.md §8 works its end-to-end
// scenarios against, with its sentinel already appended.
func AbracadabraCorpus(sentinel byte) []byte {
	return append([]byte("abracadabra"), sentinel)
}

// RandomCorpus generates a random byte string of length n drawn from a
// small alphabet (so repeated substrings, and therefore interesting
// suffix-array/tree structure, are likely even at modest n), with
// sentinel appended as the final byte. sentinel must not appear
// elsewhere in the alphabet.
func RandomCorpus(prng *rand.Rand, n int, sentinel byte) []byte {
	const alphabet = "abcde"
	out := make([]byte, n+1)
	for i := 0; i < n; i++ {
		out[i] = alphabet[prng.IntN(len(alphabet))]
	}
	out[n] = sentinel
	return out
}

// RandomQuery returns a random contiguous substring of corpus (excluding
// its final sentinel byte), of length in [1, maxLen].
func RandomQuery(prng *rand.Rand, corpus []byte, maxLen int) []byte {
	body := corpus[:len(corpus)-1]
	if len(body) == 0 {
		return nil
	}
	l := 1 + prng.IntN(maxLen)
	if l > len(body) {
		l = len(body)
	}
	start := prng.IntN(len(body) - l + 1)
	return append([]byte(nil), body[start:start+l]...)
}

// BruteForceSearch returns every offset where q occurs in text by
// direct scan, for use as a reference oracle. It returns nil for an
// empty q.
func BruteForceSearch(text, q []byte) []int {
	if len(q) == 0 {
		return nil
	}
	var out []int
	for i := 0; i+len(q) <= len(text); i++ {
		if bytes.Equal(text[i:i+len(q)], q) {
			out = append(out, i)
		}
	}
	return out
}
