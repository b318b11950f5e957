package config

const (
	// MaxLibraryNameLength is the maximum length for library names.
	MaxLibraryNameLength = 255

	// MaxItemNameLength is the maximum length for folder names and quiz/deck titles.
	MaxItemNameLength = 255

	// MaxDocumentNameLength is the maximum length for document names.
	MaxDocumentNameLength = 255

	// MaxQuestionsPerQuiz is the largest quiz stored as one library item.
	// Generated quizzes above it are split into numbered parts.
	MaxQuestionsPerQuiz = 40

	// MaxScoreHistory is how many score records a quiz keeps (newest first).
	MaxScoreHistory = 10

	// MnemonicSuggestionFailures is the SRS failure count at which a
	// question is suggested for a mnemonic.
	MnemonicSuggestionFailures = 3

	// MaxUploadBytes limits request bodies (imports carry base64 documents).
	MaxUploadBytes = 50 << 20
)
