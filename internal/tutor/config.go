package tutor

// Config holds generation settings for the tutor.
type Config struct {
	// TargetLanguage is the learner's language translations are written in.
	TargetLanguage string

	MaxTokens         int
	DialogueMaxTokens int
	Temperature       float64

	// DialogueQuestions is how many questions GenerateDialogue asks for.
	DialogueQuestions int
}

// DefaultConfig returns the settings used by the CLI and server.
func DefaultConfig() Config {
	return Config{
		TargetLanguage:    "English",
		MaxTokens:         400,
		DialogueMaxTokens: 800,
		Temperature:       0.2,
		DialogueQuestions: 4,
	}
}
