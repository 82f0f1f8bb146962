package exercise

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinEligibleRunes is the minimum length of a cleaned word for it to
	// become a gap.
	MinEligibleRunes = 3

	// MinEligibleWords is the number of eligible words a sentence needs
	// before any gap is cut from it.
	MinEligibleWords = 2

	// MaxGapsPerSentence caps the number of gaps in one sentence.
	MaxGapsPerSentence = 3

	gapRatio = 0.3
)

// SegmentKind distinguishes literal text from gaps in a GapTemplate.
type SegmentKind string

const (
	SegmentText SegmentKind = "text"
	SegmentGap  SegmentKind = "gap"
)

// TemplateSegment is one piece of a gap template.
type TemplateSegment struct {
	Kind SegmentKind `json:"kind"`

	// Content is set for text segments.
	Content string `json:"content,omitempty"`

	// GapID, Original and Hint are set for gap segments.
	GapID    int    `json:"gap_id,omitempty"`
	Original string `json:"original,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

// GapTemplate is a sentence split into literal text and gaps.
type GapTemplate struct {
	Segments []TemplateSegment `json:"segments"`
}

// Gaps returns the gap segments in sentence order.
func (t *GapTemplate) Gaps() []TemplateSegment {
	var gaps []TemplateSegment
	for _, s := range t.Segments {
		if s.Kind == SegmentGap {
			gaps = append(gaps, s)
		}
	}
	return gaps
}

// GapIDs returns the ids of all gaps in sentence order.
func (t *GapTemplate) GapIDs() []int {
	var ids []int
	for _, s := range t.Segments {
		if s.Kind == SegmentGap {
			ids = append(ids, s.GapID)
		}
	}
	return ids
}

// Gap returns the gap segment with the given id.
func (t *GapTemplate) Gap(id int) (TemplateSegment, bool) {
	for _, s := range t.Segments {
		if s.Kind == SegmentGap && s.GapID == id {
			return s, true
		}
	}
	return TemplateSegment{}, false
}

// Render joins the template, asking fill for the text of every gap.
func (t *GapTemplate) Render(fill func(gap TemplateSegment) string) string {
	var b strings.Builder
	for _, s := range t.Segments {
		if s.Kind == SegmentGap {
			b.WriteString(fill(s))
			continue
		}
		b.WriteString(s.Content)
	}
	return b.String()
}

// Reconstruct renders the template with every gap filled by its original
// word. The result equals the sentence the template was built from.
func (t *GapTemplate) Reconstruct() string {
	return t.Render(func(gap TemplateSegment) string { return gap.Original })
}

// GapCounter hands out gap ids that are unique across one text.
type GapCounter struct {
	next int
}

// Next returns the next id.
func (c *GapCounter) Next() int {
	id := c.next
	c.next++
	return id
}

// token is a whitespace-delimited run or a whitespace run.
type token struct {
	text  string
	space bool
}

func tokenize(s string) []token {
	var toks []token
	var b strings.Builder
	inSpace := false
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if i > 0 && sp != inSpace {
			toks = append(toks, token{text: b.String(), space: inSpace})
			b.Reset()
		}
		inSpace = sp
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		toks = append(toks, token{text: b.String(), space: inSpace})
	}
	return toks
}

func isWordEdge(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// CleanWord strips leading and trailing punctuation and symbols from a token.
func CleanWord(tok string) string {
	return strings.TrimFunc(tok, isWordEdge)
}

// IsEligible reports whether a token may become a gap.
func IsEligible(tok string) bool {
	return utf8.RuneCountInString(CleanWord(tok)) >= MinEligibleRunes
}

// MaxGaps returns how many gaps a sentence with the given number of
// eligible words receives.
func MaxGaps(eligible int) int {
	if eligible < MinEligibleWords {
		return 0
	}
	n := int(math.Ceil(float64(eligible) * gapRatio))
	return max(1, min(n, MaxGapsPerSentence))
}

// Hint returns the first rune of word followed by one underscore per
// remaining rune.
func Hint(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return ""
	}
	return string(r) + strings.Repeat("_", utf8.RuneCountInString(word)-1)
}

// BuildGapTemplate cuts gaps out of sentence. Gap selection is seeded by
// Hash(sentence), so the same sentence always yields the same gaps. Ids are
// drawn from counter. It returns nil when the sentence is too short or no
// gap could be placed; the counter is not advanced in that case.
func BuildGapTemplate(sentence string, counter *GapCounter) *GapTemplate {
	toks := tokenize(sentence)

	var unique []string
	seen := make(map[string]bool)
	eligible := 0
	for _, tk := range toks {
		if tk.space || !IsEligible(tk.text) {
			continue
		}
		eligible++
		key := strings.ToLower(CleanWord(tk.text))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, key)
		}
	}

	maxGaps := MaxGaps(eligible)
	if maxGaps == 0 {
		return nil
	}

	shuffled := SeededShuffle(unique, Hash(sentence))
	chosen := make(map[string]bool, maxGaps)
	for _, w := range shuffled[:min(maxGaps, len(shuffled))] {
		chosen[w] = true
	}

	tmpl := &GapTemplate{}
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			tmpl.Segments = append(tmpl.Segments, TemplateSegment{Kind: SegmentText, Content: literal.String()})
			literal.Reset()
		}
	}

	used := make(map[string]bool)
	for _, tk := range toks {
		if tk.space || !IsEligible(tk.text) {
			literal.WriteString(tk.text)
			continue
		}
		clean := CleanWord(tk.text)
		key := strings.ToLower(clean)
		if !chosen[key] || used[key] {
			literal.WriteString(tk.text)
			continue
		}
		used[key] = true

		start := len(tk.text) - len(strings.TrimLeftFunc(tk.text, isWordEdge))
		literal.WriteString(tk.text[:start])
		flush()
		tmpl.Segments = append(tmpl.Segments, TemplateSegment{
			Kind:     SegmentGap,
			GapID:    counter.Next(),
			Original: clean,
			Hint:     Hint(clean),
		})
		literal.WriteString(tk.text[start+len(clean):])
	}
	flush()

	if len(used) == 0 {
		return nil
	}
	return tmpl
}

// GapSentence is one sentence of a text prepared for the fill and write
// modes.
type GapSentence struct {
	Text     string       `json:"text"`
	Template *GapTemplate `json:"template"`
}

// BuildGapSentences segments every paragraph and builds gap templates with
// one shared counter starting at zero. Sentences without gaps are dropped.
func BuildGapSentences(paragraphs []string) []GapSentence {
	counter := &GapCounter{}
	var out []GapSentence
	for _, p := range paragraphs {
		for _, s := range Segment(p) {
			if tmpl := BuildGapTemplate(s, counter); tmpl != nil {
				out = append(out, GapSentence{Text: s, Template: tmpl})
			}
		}
	}
	return out
}

// WordBank returns the sentence's gap words in a stable shuffled order.
func WordBank(s GapSentence) []string {
	var words []string
	for _, g := range s.Template.Gaps() {
		words = append(words, g.Original)
	}
	return SeededShuffle(words, Hash(s.Text))
}

// MatchesGap compares a learner's answer with a gap's original word,
// ignoring case and surrounding whitespace.
func MatchesGap(answer, original string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(original))
}
