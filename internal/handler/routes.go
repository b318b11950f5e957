package handler

import "net/http"

// Handlers groups every HTTP handler of the server
type Handlers struct {
	Library  *LibraryHandler
	Items    *ItemHandler
	Study    *StudyHandler
	Document *DocumentHandler
	Transfer *TransferHandler
}

// Register mounts all routes on mux (Go 1.22+ method patterns)
func (h *Handlers) Register(mux *http.ServeMux) {
	// Health check and full snapshot
	mux.HandleFunc("GET /health", h.Library.HealthCheck)
	mux.HandleFunc("GET /api/state", h.Library.GetState)

	// Library routes
	mux.HandleFunc("GET /api/libraries", h.Library.ListLibraries)
	mux.HandleFunc("POST /api/libraries", h.Library.CreateLibrary)
	mux.HandleFunc("GET /api/libraries/active", h.Library.GetActiveLibrary) // Must come before {id} routes
	mux.HandleFunc("PATCH /api/libraries/active", h.Library.RenameActiveLibrary)
	mux.HandleFunc("DELETE /api/libraries/active", h.Library.DeleteActiveLibrary)
	mux.HandleFunc("POST /api/libraries/{id}/activate", h.Library.ActivateLibrary)
	mux.HandleFunc("POST /api/libraries/{id}/reset-progress", h.Library.ResetProgress)

	// Tree routes
	mux.HandleFunc("POST /api/items/folders", h.Items.CreateFolder)
	mux.HandleFunc("POST /api/items/quizzes", h.Items.CreateQuizzes)
	mux.HandleFunc("POST /api/items/decks", h.Items.CreateDeck)
	mux.HandleFunc("POST /api/items/move", h.Items.MoveItems)
	mux.HandleFunc("POST /api/items/delete", h.Items.DeleteItems)
	mux.HandleFunc("GET /api/items/{id}", h.Items.GetItem)
	mux.HandleFunc("PATCH /api/items/{id}", h.Items.RenameItem)
	mux.HandleFunc("POST /api/items/{id}/toggle", h.Items.ToggleFolder)

	// Question routes
	mux.HandleFunc("POST /api/questions/move", h.Items.MoveQuestions)
	mux.HandleFunc("POST /api/questions/delete", h.Items.DeleteQuestions)
	mux.HandleFunc("POST /api/questions/flag", h.Items.FlagQuestions)
	mux.HandleFunc("POST /api/questions/search", h.Items.SearchQuestions)
	mux.HandleFunc("POST /api/questions/duplicates", h.Items.FindDuplicates)
	mux.HandleFunc("PUT /api/questions/{id}", h.Items.UpdateQuestion)
	mux.HandleFunc("PUT /api/questions/{id}/images/{kind}", h.Items.PutQuestionImage)
	mux.HandleFunc("GET /api/questions/{id}/images/{kind}", h.Items.GetQuestionImage)

	// Study routes
	mux.HandleFunc("POST /api/quiz/complete", h.Study.CompleteQuiz)
	mux.HandleFunc("GET /api/quiz/paused", h.Study.GetPausedQuiz)
	mux.HandleFunc("PUT /api/quiz/paused", h.Study.PauseQuiz)
	mux.HandleFunc("DELETE /api/quiz/paused", h.Study.DiscardPausedQuiz)
	mux.HandleFunc("GET /api/srs/due", h.Study.DueReviews)
	mux.HandleFunc("GET /api/challenges/{kind}", h.Study.GetChallenge)
	mux.HandleFunc("POST /api/flashcards/results", h.Study.RecordFlashcardResult)
	mux.HandleFunc("PUT /api/study-plan", h.Study.SetStudyPlan)
	mux.HandleFunc("POST /api/mnemonics", h.Study.SaveMnemonic)
	mux.HandleFunc("DELETE /api/mnemonics/{id}", h.Study.DeleteMnemonic)
	mux.HandleFunc("GET /api/mnemonics/{id}/image", h.Study.GetMnemonicImage)
	mux.HandleFunc("GET /api/settings", h.Study.GetSettings)

	// Document routes
	mux.HandleFunc("GET /api/documents", h.Document.ListDocuments)
	mux.HandleFunc("POST /api/documents/folders", h.Document.CreateFolder)
	mux.HandleFunc("POST /api/documents/files", h.Document.UploadFile)
	mux.HandleFunc("POST /api/documents/urls", h.Document.CreateURL)
	mux.HandleFunc("POST /api/documents/move", h.Document.MoveDocuments)
	mux.HandleFunc("POST /api/documents/delete", h.Document.DeleteDocuments)
	mux.HandleFunc("PATCH /api/documents/{id}", h.Document.RenameDocument)
	mux.HandleFunc("GET /api/documents/{id}/content", h.Document.GetFileContent)

	// Export / import routes
	mux.HandleFunc("POST /api/export", h.Transfer.Export)
	mux.HandleFunc("POST /api/export/workbook", h.Transfer.ExportWorkbook)
	mux.HandleFunc("POST /api/import", h.Transfer.Import)
}
