package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nail-llm/internal/domain"
	"nail-llm/internal/llm"
	"nail-llm/internal/service"
)

func planJSON(concept string) string {
	return `{"concept": "` + concept + `", "design": "細いラインアート", "colors": ["ピンクベージュ"], "technique": "ワンカラー"}`
}

func evalJSON() string {
	return `{"evaluations": [
		{"id": "cand_classic", "scores": {"adherence": 90, "daily_fit": 85, "novelty": 20, "refinement": 70}, "free_alignment": 80},
		{"id": "cand_trend", "scores": {"adherence": 70, "daily_fit": 60, "novelty": 75, "refinement": 65}, "free_alignment": 60},
		{"id": "cand_bold", "scores": {"adherence": 50, "daily_fit": 30, "novelty": 95, "refinement": 55}, "free_alignment": 40}
	]}`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	genClient := &llm.MockClient{
		Responses: []string{planJSON("上品ワンカラー"), planJSON("ミラーフレンチ"), planJSON("アシメアート"), evalJSON()},
	}
	elicitSvc := service.NewElicitationService(
		service.NewFreeSpecService(&llm.MockClient{}, logger),
		service.NewCandidateService(genClient, logger),
		service.NewMemorySessionStore(time.Minute),
		&llm.MockImageClient{B64: "ZWRpdGVk"},
		nil,
		logger,
	)

	handler := NewMakeupHandler(logger, elicitSvc)
	return NewRouter(logger, []string{"https://drsprinter.github.io"}, handler)
}

func multipartStartRequest(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if withImage {
		part, err := w.CreateFormFile("image", "nail.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/makeup", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestMakeupStartNeedsMoreQuestions(t *testing.T) {
	router := newTestRouter(t)

	req := multipartStartRequest(t, map[string]string{
		"q_novelty": "try",
		"q_color":   "smoky",
		"q_scene":   "weekend",
	}, true)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.ElicitationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if resp.Status != domain.StatusNeedMore {
		t.Fatalf("expected need_more, got %s", resp.Status)
	}
	if resp.Token == "" || resp.Question == nil {
		t.Fatalf("expected token and question, got %+v", resp)
	}
}

func TestMakeupStartMissingImage(t *testing.T) {
	router := newTestRouter(t)

	req := multipartStartRequest(t, map[string]string{"purpose": "仕事用"}, false)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "爪の写真が必要です") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestMakeupStartThenAnswerOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	startReq := multipartStartRequest(t, map[string]string{
		"q_novelty": "try",
		"q_color":   "smoky",
		"q_scene":   "weekend",
	}, true)
	startRec := httptest.NewRecorder()
	router.ServeHTTP(startRec, startReq)
	if startRec.Code != http.StatusOK {
		t.Fatalf("start failed: %d %s", startRec.Code, startRec.Body.String())
	}

	var started domain.ElicitationResponse
	if err := json.Unmarshal(startRec.Body.Bytes(), &started); err != nil {
		t.Fatalf("invalid start response: %v", err)
	}
	if started.Status != domain.StatusNeedMore {
		t.Fatalf("expected need_more, got %s", started.Status)
	}

	body, _ := json.Marshal(map[string]string{
		"token":       started.Token,
		"question_id": started.Question.ID,
		"answer":      "none",
	})
	answerReq := httptest.NewRequest(http.MethodPost, "/api/makeup/answer", bytes.NewReader(body))
	answerReq.Header.Set("Content-Type", "application/json")
	answerRec := httptest.NewRecorder()
	router.ServeHTTP(answerRec, answerReq)

	if answerRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", answerRec.Code, answerRec.Body.String())
	}
	var final domain.ElicitationResponse
	if err := json.Unmarshal(answerRec.Body.Bytes(), &final); err != nil {
		t.Fatalf("invalid answer response: %v", err)
	}
	if final.Status != domain.StatusFinal {
		t.Fatalf("expected final, got %s", final.Status)
	}
	if final.Result == nil || !strings.HasPrefix(final.Result.ImageDataURL, "data:image/png;base64,") {
		t.Fatalf("expected final result with image, got %+v", final.Result)
	}
}

func TestMakeupAnswerUnknownToken(t *testing.T) {
	router := newTestRouter(t)

	body := `{"token": "no-such-token", "question_id": "q_sparkle", "answer": "none"}`
	req := httptest.NewRequest(http.MethodPost, "/api/makeup/answer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "セッションが見つかりません") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestMakeupAnswerInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/makeup/answer", strings.NewReader(`{"answer": "none"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCORSPreflightAllowedOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/makeup", nil)
	req.Header.Set("Origin", "https://drsprinter.github.io")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://drsprinter.github.io" {
		t.Fatalf("unexpected allow-origin header: %q", got)
	}
}

func TestCORSUnknownOriginGetsNoHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/makeup", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
}
