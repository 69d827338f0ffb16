package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/generation"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/rag"
	"github.com/hyperjump/kotae/internal/store"
)

type mockWatchService struct {
	dirs []string
}

func (m *mockWatchService) Directories() []string {
	return append([]string(nil), m.dirs...)
}

func (m *mockWatchService) AddDirectory(path string, _ bool) error {
	for _, d := range m.dirs {
		if d == path {
			return nil
		}
	}
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *mockWatchService) RemoveDirectory(path string) error {
	for i, d := range m.dirs {
		if d == path {
			m.dirs = append(m.dirs[:i], m.dirs[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestServer(t *testing.T, watch WatchService) (*Server, *store.Store) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "store.json"))
	svc := rag.NewService(embedding.NewMockEmbedder(8), generation.NewMockGenerator("a fine answer"), st)
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return NewServer(svc, st, cfg, zap.NewNop(), watch, ""), st
}

func TestHandleAsk(t *testing.T) {
	srv, st := newTestServer(t, nil)
	if err := st.Upsert(context.Background(), "doc1", "some indexed text", []float32{1, 0}); err != nil {
		t.Fatal(err)
	}

	body, _ := json.Marshal(models.AskRequest{Question: "what is indexed?", TopK: 1})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/ask", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleAsk(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var out models.AskResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.Answer, "Answer: a fine answer") {
		t.Errorf("unexpected answer: %q", out.Answer)
	}
	if out.Question != "what is indexed?" {
		t.Errorf("question not echoed: %q", out.Question)
	}
}

func TestHandleAsk_EmptyStoreStillOK(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	body, _ := json.Marshal(models.AskRequest{Question: "anything?"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/ask", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleAsk(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("guidance responses are 200, got %d", w.Code)
	}
}

func TestHandleAsk_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	srv.handleAsk(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleIndexDocument(t *testing.T) {
	srv, st := newTestServer(t, nil)
	body, _ := json.Marshal(models.IndexInput{ID: "doc1", Text: "hello world"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleIndexDocument(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if st.Count() != 1 {
		t.Errorf("expected 1 record, got %d", st.Count())
	}
}

func TestHandleIndexDocument_GeneratesID(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	body, _ := json.Marshal(models.IndexInput{Text: "no id supplied"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleIndexDocument(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["id"] == "" {
		t.Error("expected a generated id in response")
	}
}

func TestHandleIndexDocument_MissingText(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	body, _ := json.Marshal(models.IndexInput{ID: "doc1"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleIndexDocument(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleListDocuments(t *testing.T) {
	srv, st := newTestServer(t, nil)
	if err := st.Upsert(context.Background(), "doc1", "text one", []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	srv.handleListDocuments(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Documents []documentSummary `json:"documents"`
		Count     int               `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Documents[0].ID != "doc1" {
		t.Errorf("unexpected listing: %+v", out)
	}
}

func TestHandleStatus(t *testing.T) {
	srv, st := newTestServer(t, nil)
	if err := st.Upsert(context.Background(), "doc1", "text", []float32{1}); err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.handleStatus(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["documents"].(float64) != 1 {
		t.Errorf("documents: got %v", out["documents"])
	}
	if _, ok := out["config"]; !ok {
		t.Error("expected config section in status")
	}
}

func TestHandleWatchDirectoriesList(t *testing.T) {
	srv, _ := newTestServer(t, &mockWatchService{dirs: []string{"/tmp/docs"}})
	r := httptest.NewRequest(http.MethodGet, "/api/v1/watch/directories", nil)
	w := httptest.NewRecorder()
	srv.handleWatchDirectoriesList(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	var out struct {
		Directories []string `json:"directories"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Directories) != 1 || out.Directories[0] != "/tmp/docs" {
		t.Errorf("directories: got %v", out.Directories)
	}
}

func TestHandleWatchDirectoriesList_NotEnabled(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/watch/directories", nil)
	w := httptest.NewRecorder()
	srv.handleWatchDirectoriesList(w, r)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status: got %d, want 501", w.Code)
	}
}

func TestHandleWatchDirectoriesAdd(t *testing.T) {
	mock := &mockWatchService{}
	srv, _ := newTestServer(t, mock)
	dir := t.TempDir()
	body, _ := json.Marshal(watchAddRequest{Path: dir})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/watch/directories", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleWatchDirectoriesAdd(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if len(mock.dirs) != 1 {
		t.Errorf("directory not added: %v", mock.dirs)
	}
}

func TestHandleWatchDirectoriesAdd_MissingDir(t *testing.T) {
	srv, _ := newTestServer(t, &mockWatchService{})
	body, _ := json.Marshal(watchAddRequest{Path: filepath.Join(t.TempDir(), "nope")})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/watch/directories", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleWatchDirectoriesAdd(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHandleWatchDirectoriesRemove(t *testing.T) {
	dir := t.TempDir()
	mock := &mockWatchService{dirs: []string{dir}}
	srv, _ := newTestServer(t, mock)
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/watch/directories?path="+dir, nil)
	w := httptest.NewRecorder()
	srv.handleWatchDirectoriesRemove(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if len(mock.dirs) != 0 {
		t.Errorf("directory not removed: %v", mock.dirs)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}
