package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aagmanpal/Intervyo/internal/auth"
	"github.com/aagmanpal/Intervyo/internal/repository"
	"github.com/aagmanpal/Intervyo/internal/service"
	"github.com/aagmanpal/Intervyo/pkg/model"
)

type memInterviews struct {
	byID map[string]*model.Interview
}

func (m *memInterviews) Create(_ context.Context, iv *model.Interview) error {
	cp := *iv
	m.byID[iv.ID] = &cp
	return nil
}

func (m *memInterviews) GetByIDAndUser(_ context.Context, id, userID string) (*model.Interview, error) {
	iv, ok := m.byID[id]
	if !ok || iv.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *iv
	return &cp, nil
}

func (m *memInterviews) Update(_ context.Context, iv *model.Interview) error {
	cp := *iv
	m.byID[iv.ID] = &cp
	return nil
}

func (m *memInterviews) ListByUser(_ context.Context, userID string) ([]model.Interview, error) {
	var out []model.Interview
	for _, iv := range m.byID {
		if iv.UserID == userID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (m *memInterviews) DeleteByIDAndUser(_ context.Context, id, userID string) (*model.Interview, error) {
	iv, ok := m.byID[id]
	if !ok || iv.UserID != userID {
		return nil, repository.ErrNotFound
	}
	delete(m.byID, id)
	return iv, nil
}

type memSessions struct {
	byInterview map[string]*model.InterviewSession
}

func (m *memSessions) Create(_ context.Context, s *model.InterviewSession) error {
	cp := *s
	m.byInterview[s.InterviewID] = &cp
	return nil
}

func (m *memSessions) GetByInterviewID(_ context.Context, interviewID string) (*model.InterviewSession, error) {
	s, ok := m.byInterview[interviewID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Update(_ context.Context, s *model.InterviewSession) error {
	cp := *s
	m.byInterview[s.InterviewID] = &cp
	return nil
}

func (m *memSessions) DeleteByInterviewID(_ context.Context, interviewID string) error {
	delete(m.byInterview, interviewID)
	return nil
}

type memUploader struct{}

func (memUploader) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://storage.example.com/" + key, nil
}

func (memUploader) Delete(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *memInterviews) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ivs := &memInterviews{byID: map[string]*model.Interview{}}
	sess := &memSessions{byInterview: map[string]*model.InterviewSession{}}
	app := &Application{
		Logger:     zap.NewNop(),
		Interviews: service.NewInterviewService(ivs, sess, memUploader{}, nil, zap.NewNop()),
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("claims", &auth.UserClaims{UserID: "u1", Email: "u1@example.com"})
	})
	r.POST("/interviews", app.CreateInterview)
	r.GET("/interviews/:id", app.GetInterview)
	r.POST("/interviews/:id/start", app.StartInterview)
	r.POST("/interviews/:id/end", app.EndInterview)
	r.GET("/interviews/:id/session", app.GetInterviewSession)
	r.GET("/interviews/:id/results", app.GetInterviewResults)
	r.DELETE("/interviews/:id", app.DeleteInterview)
	return r, ivs
}

func multipartCreateBody(t *testing.T, withResume bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("role", "Backend Engineer"))
	require.NoError(t, w.WriteField("difficulty", "medium"))
	require.NoError(t, w.WriteField("duration_minutes", "30"))
	require.NoError(t, w.WriteField("scheduled_at", time.Now().Add(time.Hour).Format(time.RFC3339)))
	if withResume {
		fw, err := w.CreateFormFile("resume", "resume.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func doJSON(r *gin.Engine, method, url string, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func createInterview(t *testing.T, r *gin.Engine) string {
	t.Helper()
	body, contentType := multipartCreateBody(t, true)
	req := httptest.NewRequest(http.MethodPost, "/interviews", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	data, ok := env["data"].(map[string]any)
	require.True(t, ok)
	id, ok := data["interview_id"].(string)
	require.True(t, ok)
	return id
}

func TestCreateInterviewWithoutResume(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartCreateBody(t, false)
	req := httptest.NewRequest(http.MethodPost, "/interviews", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "resume file is required")
}

func TestInterviewLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createInterview(t, r)

	rec := doJSON(r, http.MethodPost, "/interviews/"+id+"/start", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	data := env["data"].(map[string]any)
	assert.NotEmpty(t, data["session_id"])
	iv := data["interview"].(map[string]any)
	assert.Equal(t, "in-progress", iv["status"])

	// results are gated until the interview completes
	rec = doJSON(r, http.MethodGet, "/interviews/"+id+"/results", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not yet completed")

	rec = doJSON(r, http.MethodPost, "/interviews/"+id+"/end", `{
		"overall_score": 85,
		"feedback": {"summary": "strong showing"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodGet, "/interviews/"+id+"/results", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env = decodeEnvelope(t, rec)
	data = env["data"].(map[string]any)
	fb := data["feedback"].(map[string]any)
	assert.Equal(t, 85.0, fb["overall_score"])
	sess := data["session"].(map[string]any)
	assert.Equal(t, id, sess["interview_id"])
}

func TestStartCompletedInterviewConflicts(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createInterview(t, r)

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/interviews/"+id+"/start", "").Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/interviews/"+id+"/end", `{"overall_score": 80}`).Code)

	rec := doJSON(r, http.MethodPost, "/interviews/"+id+"/start", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEndScheduledInterviewConflicts(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createInterview(t, r)

	rec := doJSON(r, http.MethodPost, "/interviews/"+id+"/end", `{"overall_score": 80}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetUnknownInterview(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(r, http.MethodGet, "/interviews/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteInterviewRemovesSession(t *testing.T) {
	r, ivs := newTestRouter(t)
	id := createInterview(t, r)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/interviews/"+id+"/start", "").Code)

	rec := doJSON(r, http.MethodDelete, "/interviews/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ivs.byID)

	rec = doJSON(r, http.MethodGet, "/interviews/"+id+"/session", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
