// Package wordfreq computes stopword-filtered word frequencies over OCR
// text, feeding the stats command and the run journal.
package wordfreq

import (
	"fmt"
	"sort"
	"strings"
)

// Frequencies tokenizes lower-cased text, strips punctuation from token
// edges, drops stopwords, and counts the rest.
func Frequencies(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	freqs := make(map[string]int)

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if word == "" || IsStopword(word) {
			continue
		}
		freqs[word]++
	}

	return freqs
}

// Merge aggregates per-file frequency maps into one.
func Merge(maps []map[string]int) map[string]int {
	total := make(map[string]int)
	for _, m := range maps {
		for word, count := range m {
			total[word] += count
		}
	}
	return total
}

// Top returns the n most frequent words, formatted as "word:count",
// sorted by descending count with ties broken alphabetically so output is
// stable.
func Top(freqs map[string]int, n int) []string {
	type kv struct {
		word  string
		count int
	}

	pairs := make([]kv, 0, len(freqs))
	for w, c := range freqs {
		pairs = append(pairs, kv{w, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].word < pairs[j].word
	})

	if n > len(pairs) {
		n = len(pairs)
	}
	out := make([]string, 0, n)
	for _, p := range pairs[:n] {
		out = append(out, fmt.Sprintf("%s:%d", p.word, p.count))
	}
	return out
}
