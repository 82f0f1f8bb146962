package tutor

import "errors"

// ErrEmptyInput is returned when the text to work on is blank.
var ErrEmptyInput = errors.New("empty input")

// Translation is a translated word or sentence.
type Translation struct {
	Source      string `json:"source"`
	Translation string `json:"translation"`
	Note        string `json:"note,omitempty"`
}

// Definition is a dictionary entry for a word as it appears in a sentence.
type Definition struct {
	Term         string `json:"term"`
	BaseForm     string `json:"base_form"`
	PartOfSpeech string `json:"part_of_speech"`
	Gender       string `json:"gender,omitempty"`
	Translation  string `json:"translation"`
	Meaning      string `json:"meaning"`
	Example      string `json:"example,omitempty"`
}

// Dialogue is a list of comprehension questions about one text.
type Dialogue struct {
	Questions []string `json:"questions"`
}

// Evaluation judges a learner's answer to a dialogue question.
type Evaluation struct {
	Acceptable bool   `json:"acceptable"`
	Feedback   string `json:"feedback"`
	Correction string `json:"correction,omitempty"`
}
