package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
	"queenzz/internal/httputil"
	"queenzz/internal/repository/memory"
	"queenzz/internal/service/library"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	settings, err := config.DefaultStudySettings()
	require.NoError(t, err)

	store := library.NewStore(memory.NewAppDataRepository(), memory.NewAssetRepository(), memory.NewTransactionManager(), logger)
	store.SetClock(func() time.Time { return time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC) })
	sanitizer := library.NewTextSanitizer()

	h := &Handlers{
		Library:  NewLibraryHandler(library.NewLibraryService(store, logger), logger),
		Items:    NewItemHandler(library.NewItemService(store, sanitizer, logger), logger),
		Study:    NewStudyHandler(library.NewStudyService(store, settings, logger), logger),
		Document: NewDocumentHandler(library.NewDocumentService(store, logger), logger),
		Transfer: NewTransferHandler(library.NewTransferService(store, sanitizer, logger), logger),
	}
	mux := http.NewServeMux()
	h.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// do sends a JSON request and decodes a JSON response into out when given
func do(t *testing.T, srv *httptest.Server, method, path, body string, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp
}

const quizBody = `{"quizzes":[{"title":"Cells","questions":[
	{"id":"c1","question":"Powerhouse?","options":["Mitochondria","Ribosome"],"correctAnswer":"Mitochondria"},
	{"id":"c2","question":"Protein factory?","options":["Mitochondria","Ribosome"],"correctAnswer":"Ribosome"}
]}]}`

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]string
	resp := do(t, srv, http.MethodGet, "/health", "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestLibraryRoutes(t *testing.T) {
	srv := newTestServer(t)

	var created models.Library
	resp := do(t, srv, http.MethodPost, "/api/libraries", `{"name":"Chemistry"}`, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var active models.Library
	do(t, srv, http.MethodGet, "/api/libraries/active", "", &active)
	assert.Equal(t, created.ID, active.ID)

	var problem httputil.ProblemDetail
	resp = do(t, srv, http.MethodPost, "/api/libraries", `{"name":""}`, &problem)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "/api/libraries", problem.Instance)

	resp = do(t, srv, http.MethodPost, "/api/libraries/nope/activate", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/libraries", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItemRoutes(t *testing.T) {
	srv := newTestServer(t)

	var quizzes []models.Item
	resp := do(t, srv, http.MethodPost, "/api/items/quizzes", quizBody, &quizzes)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, quizzes, 1)

	var folder models.Item
	resp = do(t, srv, http.MethodPost, "/api/items/folders", `{"name":"Biology"}`, &folder)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing target", `{"ids":["` + quizzes[0].ID + `"]}`, http.StatusBadRequest},
		{"unknown target", `{"ids":["` + quizzes[0].ID + `"],"targetId":"nope"}`, http.StatusNotFound},
		{"into folder", `{"ids":["` + quizzes[0].ID + `"],"targetId":"` + folder.ID + `"}`, http.StatusNoContent},
		{"back to root", `{"ids":["` + quizzes[0].ID + `"],"targetId":null}`, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodPost, "/api/items/move", tt.body, nil)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	var toggled struct {
		OpenFolderIDs []string `json:"openFolderIds"`
	}
	resp = do(t, srv, http.MethodPost, "/api/items/"+folder.ID+"/toggle", "", &toggled)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{folder.ID}, toggled.OpenFolderIDs)

	resp = do(t, srv, http.MethodGet, "/api/items/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuestionRoutes(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/items/quizzes", quizBody, nil)

	resp := do(t, srv, http.MethodPost, "/api/questions/flag", `{"ids":["c1"]}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "flag must be present")
	resp = do(t, srv, http.MethodPost, "/api/questions/flag", `{"ids":["c1"],"flag":"review"}`, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var found []models.Question
	resp = do(t, srv, http.MethodPost, "/api/questions/search", `{"flag":"review"}`, &found)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, found, 1)
	assert.Equal(t, "c1", found[0].ID)

	resp = do(t, srv, http.MethodPut, "/api/questions/c2",
		`{"id":"c1","question":"x?","options":["a","b"],"correctAnswer":"a"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path and body ids differ")

	resp = do(t, srv, http.MethodPut, "/api/questions/c1/images/question", `{"base64Content":"aW1n"}`, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodGet, "/api/questions/c1/images/source", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStudyRoutes(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/items/quizzes", quizBody, nil)

	var challenge struct {
		Period    string            `json:"period"`
		Questions []models.Question `json:"questions"`
	}
	resp := do(t, srv, http.MethodGet, "/api/challenges/weekly", "", &challenge)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-11", challenge.Period)
	assert.Len(t, challenge.Questions, 2)

	resp = do(t, srv, http.MethodGet, "/api/challenges/daily", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/quiz/paused", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var due []models.SRSEntry
	resp = do(t, srv, http.MethodGet, "/api/srs/due", "", &due)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, due)

	var settings config.StudySettings
	do(t, srv, http.MethodGet, "/api/settings", "", &settings)
	assert.Equal(t, 3, settings.SRS.GraduationRequirement)
}

func TestDocumentRoutes(t *testing.T) {
	srv := newTestServer(t)

	var file models.DocumentItem
	resp := do(t, srv, http.MethodPost, "/api/documents/files",
		`{"name":"notes.txt","mimeType":"text/plain","base64Content":"aGVsbG8="}`, &file)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(5), file.Size)

	var content fileContentResponse
	resp = do(t, srv, http.MethodGet, "/api/documents/"+file.ID+"/content", "", &content)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "aGVsbG8=", content.Base64Content)

	resp = do(t, srv, http.MethodGet, "/api/documents?sort=newest", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/documents/move", `{"ids":["`+file.ID+`"]}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransferRoutes(t *testing.T) {
	srv := newTestServer(t)
	var quizzes []models.Item
	do(t, srv, http.MethodPost, "/api/items/quizzes", quizBody, &quizzes)

	var exported models.Library
	resp := do(t, srv, http.MethodPost, "/api/export", `{}`, &exported)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="main-library_export.json"`, resp.Header.Get("Content-Disposition"))
	require.Len(t, exported.Items, 1)

	resp = do(t, srv, http.MethodPost, "/api/export/workbook", `{"quizIds":["`+quizzes[0].ID+`"]}`, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))

	payload, err := json.Marshal(map[string]any{"mode": "new", "name": "Copy", "data": exported})
	require.NoError(t, err)
	var imported models.Library
	resp = do(t, srv, http.MethodPost, "/api/import", string(payload), &imported)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Copy", imported.Name)

	resp = do(t, srv, http.MethodPost, "/api/import", `{"mode":"sideways","data":{}}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
