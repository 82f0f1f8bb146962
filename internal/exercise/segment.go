package exercise

import "strings"

// Segment splits a paragraph into sentences.
//
// A sentence runs up to and including a run of '.', '!' or '?' plus at most
// one closing quote. Text after the last terminator becomes its own sentence.
// Abbreviations such as "Dr." and decimal points end a sentence too.
func Segment(paragraph string) []string {
	runes := []rune(paragraph)
	var out []string

	emit := func(from, to int) {
		s := strings.TrimSpace(string(runes[from:to]))
		if s != "" {
			out = append(out, s)
		}
	}

	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && isTerminator(runes[end]) {
			end++
		}
		if end < len(runes) && isClosingQuote(runes[end]) {
			end++
		}
		emit(start, end)
		start = end
		i = end - 1
	}
	if start < len(runes) {
		emit(start, len(runes))
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClosingQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '”', '«', '»', '’':
		return true
	}
	return false
}
