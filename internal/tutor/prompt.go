package tutor

import (
	"fmt"
	"strings"
)

func translateSystem(target string) string {
	return fmt.Sprintf(`You translate German for a learner whose language is %s. Translate faithfully and naturally. Do not explain unless a note helps the learner.`, target)
}

func translatePrompt(text, passage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "German text:\n%s\n", text)
	if passage != "" && passage != text {
		fmt.Fprintf(&b, "\nIt appears in this passage:\n%s\n", passage)
	}
	return b.String()
}

func defineSystem(target string) string {
	return fmt.Sprintf(`You are a German dictionary for a learner whose language is %s. Describe the word as it is used in the given sentence. Write translation and meaning in %s and the example in German.`, target, target)
}

func definePrompt(word, sentence string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\n", word)
	if sentence != "" {
		fmt.Fprintf(&b, "Sentence: %s\n", sentence)
	}
	return b.String()
}

const dialogueSystem = `You are a friendly German teacher holding a short conversation with a learner about a text they just read. Ask simple questions in German that can be answered in one or two sentences using the text. Use the same level of language as the text.`

func dialoguePrompt(title string, paragraphs []string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\n", title)
	for _, p := range paragraphs {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Ask exactly %d questions, in the order of the text.", n)
	return b.String()
}

const evaluateSystem = `You are a patient German teacher. A learner answered a question about a text by speaking; the answer is a speech transcript, so ignore punctuation and capitalisation. Accept answers that are relevant and understandable even with small mistakes. Write feedback in simple German.`

func evaluatePrompt(question, answer string, paragraphs []string) string {
	var b strings.Builder
	if len(paragraphs) > 0 {
		b.WriteString("Text:\n")
		for _, p := range paragraphs {
			b.WriteString(p)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Question: %s\nAnswer: %s\n", question, answer)
	return b.String()
}
