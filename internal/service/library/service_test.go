package library

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"queenzz/internal/config"
	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/repository/memory"
)

type testEnv struct {
	store    *Store
	appData  *memory.AppDataRepository
	assets   *memory.AssetRepository
	library  svc.LibraryService
	items    svc.ItemService
	study    *studyService
	docs     svc.DocumentService
	transfer svc.TransferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	settings, err := config.DefaultStudySettings()
	require.NoError(t, err)

	appData := memory.NewAppDataRepository()
	assets := memory.NewAssetRepository()
	store := NewStore(appData, assets, memory.NewTransactionManager(), logger)
	store.SetClock(func() time.Time { return testNow })
	sanitizer := NewTextSanitizer()

	return &testEnv{
		store:    store,
		appData:  appData,
		assets:   assets,
		library:  NewLibraryService(store, logger),
		items:    NewItemService(store, sanitizer, logger),
		study:    newStudyService(store, settings, rand.New(rand.NewPCG(7, 7)), logger),
		docs:     NewDocumentService(store, logger),
		transfer: NewTransferService(store, sanitizer, logger),
	}
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func (e *testEnv) assetKeys(t *testing.T) []string {
	t.Helper()
	keys, err := e.assets.Keys(context.Background())
	require.NoError(t, err)
	return keys
}

// addCellsQuiz stores a two question quiz in the active library
func (e *testEnv) addCellsQuiz(t *testing.T) *models.Item {
	t.Helper()
	created, err := e.items.AddQuizzes(context.Background(), &svc.AddQuizzesRequest{
		Quizzes: []models.GeneratedQuiz{{
			Title: "Cells",
			Questions: []models.Question{
				question("c1", "Nucleus?", "a", "b", "c", "d"),
				question("c2", "Ribosome?", "a", "b", "c", "d"),
			},
		}},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestStore_SnapshotPersistsFreshInstall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.store.Snapshot(ctx)
	require.NoError(t, err)
	second, err := env.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ActiveLibraryID, second.ActiveLibraryID)

	raw, err := env.appData.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, DefaultLibraryName, raw.Active().Name)
}

func TestStore_MigratesLegacyAssets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.appData.Save(ctx, &models.AppData{
		ActiveLibraryID: "lib",
		Libraries: map[string]*models.Library{"lib": {
			ID:          "lib",
			Name:        "Legacy",
			StoredFiles: []models.LegacyStoredFile{{ID: "f1", Name: "a.txt", Base64Content: b64("abc")}},
		}},
	}))

	data, err := env.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Active().Documents, 1)
	assert.Equal(t, []string{"f1"}, env.assetKeys(t))

	raw, err := env.appData.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, raw.Libraries["lib"].StoredFiles, "the migration is persisted")
}

func TestStore_FailedTransitionSavesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	before, err := env.store.Snapshot(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = env.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := env.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLibraryService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addCellsQuiz(t)

	_, err := env.library.CreateLibrary(ctx, &svc.CreateLibraryRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.library.CreateLibrary(ctx, &svc.CreateLibraryRequest{Name: strings.Repeat("x", config.MaxLibraryNameLength+1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	env.store.SetClock(func() time.Time { return testNow.Add(time.Hour) })
	chem, err := env.library.CreateLibrary(ctx, &svc.CreateLibraryRequest{Name: "Chemistry"})
	require.NoError(t, err)

	summaries, err := env.library.ListLibraries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, DefaultLibraryName, summaries[0].Name)
	assert.Equal(t, 1, summaries[0].QuizCount)
	assert.Equal(t, 2, summaries[0].QuestionCount)
	assert.False(t, summaries[0].Active)
	assert.True(t, summaries[1].Active)

	renamed, err := env.library.RenameLibrary(ctx, &svc.RenameLibraryRequest{Name: "Organic"})
	require.NoError(t, err)
	assert.Equal(t, chem.ID, renamed.ID)

	active, err := env.library.SwitchLibrary(ctx, summaries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, summaries[0].ID, active.ID)

	_, err = env.library.SwitchLibrary(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_DeleteDropsOrphanedAssets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mainLib, err := env.library.ActiveLibrary(ctx)
	require.NoError(t, err)
	env.addCellsQuiz(t)
	require.NoError(t, env.items.PutQuestionImage(ctx, "c1", svc.ImageQuestion, b64("img")))

	// A second library sharing question c1 through an import keeps its image alive
	exported, err := env.transfer.Export(ctx, &svc.ExportRequest{})
	require.NoError(t, err)
	_, err = env.transfer.Import(ctx, &svc.ImportRequest{Mode: svc.ImportAsNew, Data: exported.Library})
	require.NoError(t, err)
	file, err := env.docs.AddFile(ctx, &svc.AddDocumentFileRequest{Name: "notes.txt", MimeType: "text/plain", Base64Content: b64("notes")})
	require.NoError(t, err)

	next, err := env.library.DeleteActiveLibrary(ctx)
	require.NoError(t, err)
	assert.Equal(t, mainLib.ID, next.ID)
	assert.NotContains(t, env.assetKeys(t), file.ID)
	assert.Equal(t, []string{"q_image_c1"}, env.assetKeys(t), "the shared question image stays")

	_, err = env.library.DeleteActiveLibrary(ctx)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItemService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.items.AddQuizzes(ctx, &svc.AddQuizzesRequest{
		Quizzes: []models.GeneratedQuiz{{
			Title:     "<b>Cells</b>",
			Questions: []models.Question{question("c1", "<i>Nucleus</i>?", "<b>yes</b>", "no")},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cells", created[0].Title)
	assert.Equal(t, "yes", created[0].Questions[0].CorrectAnswer)

	_, err = env.items.AddQuizzes(ctx, &svc.AddQuizzesRequest{
		Quizzes: []models.GeneratedQuiz{{Title: "Broken", Questions: []models.Question{question("x", "x?", "only")}}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	folder, err := env.items.AddFolder(ctx, &svc.AddFolderRequest{Name: "Biology"})
	require.NoError(t, err)
	require.NoError(t, env.items.MoveItems(ctx, &svc.MoveItemsRequest{IDs: []string{created[0].ID}, TargetID: &folder.ID}))

	open, err := env.items.ToggleFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{folder.ID}, open)
	_, err = env.items.ToggleFolder(ctx, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := env.items.GetItem(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{created[0].ID}, ids(got.Children))

	_, err = env.items.SearchQuestions(ctx, &models.SearchParams{Flag: "spicy"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItemService_QuestionImages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.addCellsQuiz(t)

	require.NoError(t, env.items.PutQuestionImage(ctx, "c1", svc.ImageQuestion, b64("q")))
	require.NoError(t, env.items.PutQuestionImage(ctx, "c1", svc.ImageSource, b64("s")))
	require.NoError(t, env.items.PutQuestionImage(ctx, "c2", svc.ImageQuestion, b64("q2")))

	content, err := env.items.QuestionImage(ctx, "c1", svc.ImageSource)
	require.NoError(t, err)
	assert.Equal(t, b64("s"), content)

	assert.ErrorIs(t, env.items.PutQuestionImage(ctx, "nope", svc.ImageQuestion, b64("q")), domain.ErrNotFound)
	assert.ErrorIs(t, env.items.PutQuestionImage(ctx, "c1", "thumbnail", b64("q")), domain.ErrValidation)
	assert.ErrorIs(t, env.items.PutQuestionImage(ctx, "c1", svc.ImageQuestion, "%%%"), domain.ErrValidation)

	require.NoError(t, env.items.DeleteQuestions(ctx, &svc.SelectionRequest{IDs: []string{"c1"}}))
	assert.Equal(t, []string{"q_image_c2"}, env.assetKeys(t))

	require.NoError(t, env.items.DeleteItems(ctx, &svc.SelectionRequest{IDs: []string{quiz.ID}}))
	assert.Empty(t, env.assetKeys(t))
}

func TestStudyService_CompleteQuiz(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.addCellsQuiz(t)

	_, err := env.study.CompleteQuiz(ctx, &svc.CompleteQuizRequest{
		QuizID:    quiz.ID,
		QuizType:  models.QuizNormal,
		Questions: quiz.Questions,
		Answers:   models.AnswerMap{5: {IsCorrect: true}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "answer index out of range")

	_, err = env.study.CompleteQuiz(ctx, &svc.CompleteQuizRequest{QuizType: "marathon", Questions: quiz.Questions})
	assert.ErrorIs(t, err, domain.ErrValidation)

	result, err := env.study.CompleteQuiz(ctx, &svc.CompleteQuizRequest{
		QuizID:    quiz.ID,
		QuizType:  models.QuizNormal,
		Questions: quiz.Questions,
		Answers:   models.AnswerMap{0: {Selected: "a", IsCorrect: true}, 1: {Selected: "b", IsCorrect: false}},
	})
	require.NoError(t, err)
	// standard penalty from settings: (1 - 1/3) / 2 * 10
	assert.Equal(t, 3.33, result.Score)

	due, err := env.study.DueReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, due, "the first review is tomorrow")

	env.store.SetClock(func() time.Time { return testNow.AddDate(0, 0, 1) })
	due, err = env.study.DueReviews(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "c2", due[0].Question.ID)
}

func TestStudyService_Challenge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.addCellsQuiz(t)

	challenge, err := env.study.Challenge(ctx, models.QuizWeeklyChallenge)
	require.NoError(t, err)
	assert.Equal(t, "2024-11", challenge.Period)
	assert.False(t, challenge.Completed)
	assert.Len(t, challenge.Questions, 2)

	_, err = env.study.CompleteQuiz(ctx, &svc.CompleteQuizRequest{
		QuizType:  models.QuizWeeklyChallenge,
		Questions: quiz.Questions,
		Answers:   models.AnswerMap{0: {IsCorrect: true}, 1: {IsCorrect: true}},
	})
	require.NoError(t, err)

	challenge, err = env.study.Challenge(ctx, models.QuizWeeklyChallenge)
	require.NoError(t, err)
	assert.True(t, challenge.Completed)

	_, err = env.study.Challenge(ctx, models.QuizNormal)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStudyService_PausedQuiz(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.addCellsQuiz(t)

	_, err := env.study.PausedQuiz(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, env.study.PauseQuiz(ctx, &models.PausedQuizState{
		QuizID:       quiz.ID,
		QuizType:     models.QuizNormal,
		Questions:    quiz.Questions,
		CurrentIndex: 1,
	}))
	state, err := env.study.PausedQuiz(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentIndex)
	assert.True(t, testNow.Equal(state.PausedAt))

	assert.ErrorIs(t, env.study.PauseQuiz(ctx, &models.PausedQuizState{QuizType: models.QuizNormal, Questions: quiz.Questions, CurrentIndex: 9}), domain.ErrValidation)

	require.NoError(t, env.study.DiscardPausedQuiz(ctx))
	_, err = env.study.PausedQuiz(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStudyService_StudyPlanValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     svc.StudyPlanRequest
		wantErr bool
	}{
		{"valid", svc.StudyPlanRequest{Config: &models.StudyPlanConfig{StartDate: "2024-03-14", EndDate: "2024-04-01", MinutesPerDay: 20}}, false},
		{"clear", svc.StudyPlanRequest{}, false},
		{"bad date", svc.StudyPlanRequest{Config: &models.StudyPlanConfig{StartDate: "14/03/2024", EndDate: "2024-04-01", MinutesPerDay: 20}}, true},
		{"ends before start", svc.StudyPlanRequest{Config: &models.StudyPlanConfig{StartDate: "2024-04-02", EndDate: "2024-04-01", MinutesPerDay: 20}}, true},
		{"no minutes", svc.StudyPlanRequest{Config: &models.StudyPlanConfig{StartDate: "2024-03-14", EndDate: "2024-04-01"}}, true},
		{"bad session date", svc.StudyPlanRequest{Sessions: []models.StudyPlanSession{{Date: "tomorrow"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.study.SetStudyPlan(ctx, &tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStudyService_MnemonicImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addCellsQuiz(t)

	_, err := env.study.SaveMnemonic(ctx, &svc.SaveMnemonicRequest{QuestionID: "missing", Text: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rule, err := env.study.SaveMnemonic(ctx, &svc.SaveMnemonicRequest{QuestionID: "c1", Text: "Home of DNA", ImageBase64: b64("png")})
	require.NoError(t, err)
	assert.Equal(t, "mnemonic_"+rule.ID, rule.ImageRef)

	// Editing the text keeps the stored image
	edited, err := env.study.SaveMnemonic(ctx, &svc.SaveMnemonicRequest{ID: rule.ID, QuestionID: "c1", Text: "DNA lives here"})
	require.NoError(t, err)
	assert.Equal(t, rule.ImageRef, edited.ImageRef)

	img, err := env.study.MnemonicImage(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, b64("png"), img)

	require.NoError(t, env.study.DeleteMnemonic(ctx, rule.ID))
	_, err = env.study.MnemonicImage(ctx, rule.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStudyService_Flashcards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	deck, err := env.items.AddDeck(ctx, &svc.AddDeckRequest{Title: "Organelles", Cards: []models.Flashcard{{Front: "ATP", Back: "energy"}}})
	require.NoError(t, err)
	cardID := deck.Cards[0].ID

	require.NoError(t, env.study.RecordFlashcardResult(ctx, &svc.FlashcardResultRequest{CardID: cardID, Correct: false}))
	lib, err := env.library.ActiveLibrary(ctx)
	require.NoError(t, err)
	assert.Len(t, lib.FailedFlashcards, 1)

	assert.ErrorIs(t, env.study.RecordFlashcardResult(ctx, &svc.FlashcardResultRequest{}), domain.ErrValidation)
}

func TestDocumentService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.docs.AddFolder(ctx, &svc.AddDocumentFolderRequest{Name: "Lectures"})
	require.NoError(t, err)
	file, err := env.docs.AddFile(ctx, &svc.AddDocumentFileRequest{
		FolderID:      &folder.ID,
		Name:          "week1.txt",
		MimeType:      "text/plain",
		Base64Content: b64("hello world"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), file.Size)

	_, err = env.docs.AddFile(ctx, &svc.AddDocumentFileRequest{Name: "x", MimeType: "text/plain", Base64Content: "not base64!"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.docs.AddURL(ctx, &svc.AddDocumentURLRequest{URL: "not a url"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	bookmark, err := env.docs.AddURL(ctx, &svc.AddDocumentURLRequest{URL: "https://example.edu"})
	require.NoError(t, err)

	meta, content, err := env.docs.FileContent(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "week1.txt", meta.Name)
	assert.Equal(t, b64("hello world"), content)
	_, _, err = env.docs.FileContent(ctx, bookmark.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listed, err := env.docs.ListDocuments(ctx, "az")
	require.NoError(t, err)
	assert.Equal(t, []string{folder.ID, bookmark.ID}, docIDs(listed))
	_, err = env.docs.ListDocuments(ctx, "newest")
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, env.docs.Delete(ctx, &svc.SelectionRequest{IDs: []string{folder.ID}}))
	assert.Empty(t, env.assetKeys(t))
}

func TestTransferService_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.addCellsQuiz(t)
	_, err := env.docs.AddFile(ctx, &svc.AddDocumentFileRequest{Name: "notes.txt", MimeType: "text/plain", Base64Content: b64("notes")})
	require.NoError(t, err)

	exported, err := env.transfer.Export(ctx, &svc.ExportRequest{IncludeDocuments: true})
	require.NoError(t, err)
	assert.Equal(t, "main-library_export.json", exported.Filename)
	assert.Equal(t, []string{quiz.ID}, ids(exported.Library.Items))
	assert.Equal(t, b64("notes"), exported.Library.Documents[0].Base64Content)

	_, err = env.transfer.Import(ctx, &svc.ImportRequest{Mode: svc.ImportInto, Data: exported.Library})
	assert.ErrorIs(t, err, domain.ErrValidation, "into needs a target")

	lib, err := env.transfer.Import(ctx, &svc.ImportRequest{
		Mode:             svc.ImportAsNew,
		Name:             "Copy",
		IncludeDocuments: true,
		Data:             exported.Library,
	})
	require.NoError(t, err)
	assert.Equal(t, "Copy", lib.Name)
	assert.Len(t, env.assetKeys(t), 2, "the copy owns its own file content")

	_, content, err := env.docs.FileContent(ctx, lib.Documents[0].ID)
	require.NoError(t, err)
	assert.Equal(t, b64("notes"), content)
}

func TestTransferService_ImportRejectsQuestionsWithoutID(t *testing.T) {
	env := newTestEnv(t)
	data := NewLibrary("Broken", testNow)
	data.Items = []*models.Item{quiz("q", "Quiz", question("", "No id?"))}

	_, err := env.transfer.Import(context.Background(), &svc.ImportRequest{Mode: svc.ImportAsNew, Data: data})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransferService_ImportRekeysDuplicateIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	data := NewLibrary("Messy", testNow)
	data.Items = []*models.Item{
		folder("same", "Folder"),
		quiz("same", "Quiz", question("m1", "Mitosis?")),
		folder("", "Blank"),
		folder("", "Blank"),
	}

	lib, err := env.transfer.Import(ctx, &svc.ImportRequest{Mode: svc.ImportAsNew, Data: data})
	require.NoError(t, err)
	stored := ids(Flatten(lib.Items))
	require.Len(t, stored, 4)
	assert.Len(t, CollectIDs(lib.Items), 4)
	assert.NotContains(t, stored, "")

	target := stored[0]
	require.NoError(t, env.items.MoveItems(ctx, &svc.MoveItemsRequest{IDs: []string{stored[1]}, TargetID: &target}))
	moved, err := env.items.GetItem(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, []string{stored[1]}, ids(moved.Children))
}

func TestTransferService_ImportRejectsMalformedTree(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"null item", `{"name":"Broken","library":[null]}`},
		{"unknown type", `{"name":"Broken","library":[{"type":"banana","id":"b1"}]}`},
		{"null document", `{"name":"Broken","library":[],"documentLibrary":[null]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			var data models.Library
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &data))

			_, err := env.transfer.Import(context.Background(), &svc.ImportRequest{Mode: svc.ImportAsNew, Data: &data})
			assert.ErrorIs(t, err, domain.ErrValidation)

			libs, err := env.library.ListLibraries(context.Background())
			require.NoError(t, err)
			assert.Len(t, libs, 1, "nothing is stored")
		})
	}
}

func TestTransferService_Workbook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.addCellsQuiz(t)

	result, err := env.transfer.ExportWorkbook(ctx, &svc.WorkbookRequest{QuizIDs: []string{quiz.ID}})
	require.NoError(t, err)
	assert.Equal(t, "main-library_export.xlsx", result.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(result.Content))
	require.NoError(t, err)
	defer f.Close()
	title, err := f.GetCellValue("Questions", "A1")
	require.NoError(t, err)
	assert.Equal(t, DefaultLibraryName, title)

	_, err = env.transfer.ExportWorkbook(ctx, &svc.WorkbookRequest{QuizIDs: []string{"missing"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
