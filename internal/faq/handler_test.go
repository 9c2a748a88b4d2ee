package faq

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

func postJSON(t *testing.T, h http.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestAnswerHandler_Curated(t *testing.T) {
	svc := NewService(newTestRepo(t), nil, &fakeAssistant{answer: "unused"}, nil, logging.New("error"))
	h := NewHandler(svc, logging.New("error"))

	rec, payload := postJSON(t, h.Answer, `{"question":"visiting hours"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Visiting hours are 9am to 8pm daily.", payload["answer"])
	_, hasSource := payload["source"]
	assert.False(t, hasSource)
}

func TestAnswerHandler_GeneratedTaggedAsAI(t *testing.T) {
	svc := NewService(newTestRepo(t), nil, &fakeAssistant{answer: "generated"}, nil, logging.New("error"))
	h := NewHandler(svc, logging.New("error"))

	rec, payload := postJSON(t, h.Answer, `{"question":"something novel"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "generated", payload["answer"])
	assert.Equal(t, "ai", payload["source"])
}

func TestAnswerHandler_MissingQuestion(t *testing.T) {
	svc := NewService(newTestRepo(t), nil, &fakeAssistant{}, nil, logging.New("error"))
	h := NewHandler(svc, logging.New("error"))

	rec, payload := postJSON(t, h.Answer, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing question", payload["message"])
}

func TestQueryHandler(t *testing.T) {
	svc := NewService(newTestRepo(t), nil, &fakeAssistant{answer: "generated"}, nil, logging.New("error"))
	h := NewHandler(svc, logging.New("error"))

	rec, payload := postJSON(t, h.Query, `{"query":"anything"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "generated", payload["response"])

	rec, payload = postJSON(t, h.Query, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing query", payload["message"])
}
