package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mazadly/boardgen/board"
	"github.com/mazadly/boardgen/cache"
)

// stubRenderer validates like the real renderer but produces fixed bytes.
type stubRenderer struct {
	calls int
}

func (r *stubRenderer) Render(_ context.Context, a *board.Announcement) ([]byte, error) {
	if err := board.Validate(a); err != nil {
		return nil, err
	}
	r.calls++
	return []byte("%PDF-1.7 stub"), nil
}

func newTestServer(t *testing.T, store cache.Store) (*Server, *stubRenderer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer := &stubRenderer{}
	return New(renderer, store, Options{Addr: ":0", MaxBodyBytes: 1 << 20}), renderer
}

func validPayload() map[string]any {
	return map[string]any{
		"title":          "مزاد الرياض العقاري الكبير",
		"organizer":      "شركة المزادات الأولى",
		"license_no":     "ر-١٢٣٤",
		"weekday":        "السبت",
		"date_hijri":     "١٥ ذو القعدة ١٤٤٧هـ",
		"date_gregorian": "2026-05-02",
		"time":           "٤ عصراً",
		"city":           "الرياض",
		"venue":          "قاعة المؤتمرات طريق الملك فهد",
		"phone":          "0501234567",
		"auction_url":    "https://example.com/auctions/42",
		"logo":           "aGVsbG8=",
	}
}

func postBoard(t *testing.T, s *Server, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/board", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleBoardSuccess(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := postBoard(t, s, validPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	require.Contains(t, rec.Header().Get("Content-Disposition"), ".pdf")
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestHandleBoardValidationErrors(t *testing.T) {
	s, _ := newTestServer(t, nil)

	payload := validPayload()
	payload["title"] = ""
	delete(payload, "logo")

	rec := postBoard(t, s, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "validation failed", body.Error)
	require.Contains(t, body.Fields, "title")
	require.Contains(t, body.Fields, "logo")
}

func TestHandleBoardRejectsMalformedJSON(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/board", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBoardPayloadTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New(&stubRenderer{}, nil, Options{Addr: ":0", MaxBodyBytes: 16})

	rec := postBoard(t, s, validPayload())
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleBoardUsesCache(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	s, renderer := newTestServer(t, store)

	rec := postBoard(t, s, validPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-Cache"))

	rec = postBoard(t, s, validPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hit", rec.Header().Get("X-Cache"))
	require.Equal(t, 1, renderer.calls, "second request must come from cache")
}

func TestHandleSchema(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/schema", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Fields []board.FieldSpec `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, len(board.Schema))
	require.Equal(t, "title", body.Fields[0].Key)
}

func TestHandleHealthAndIndex(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "board-form")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
