package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"EchoMeta/config"
	"EchoMeta/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRecord(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetRecord(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "media",
		"show/generated/meta/folge-1.json", []byte(`{"title":"t"}`), "application/json"))

	cfg := &config.Config{Bucket: "media", GeneratedFolder: "generated"}
	router := NewRouter(cfg, &fakeProcessor{}, store)

	rec := getRecord(t, router, "/api/records/show/folge-1.json")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"title":"t"}`, rec.Body.String())
}

func TestHandleGetRecordNotFound(t *testing.T) {
	cfg := &config.Config{Bucket: "media", GeneratedFolder: "generated"}
	router := NewRouter(cfg, &fakeProcessor{}, storage.NewMemoryStore())

	rec := getRecord(t, router, "/api/records/show/missing.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetRecordRejectsTraversal(t *testing.T) {
	handler := NewRecordHandler(storage.NewMemoryStore(), "media", "generated")

	// 路由器会先规范化 URL，这里直接命中处理器验证其自身的防护
	req := httptest.NewRequest(http.MethodGet, "/api/records/x", nil)
	req = mux.SetURLVars(req, map[string]string{"path": "show/../secret.json"})
	rec := httptest.NewRecorder()
	handler.HandleGet(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
