package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func benchmarkFindOne(b *testing.B, withCache bool) {
	r, _ := newTestStack(b, zap.NewNop(), 0, withCache)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"username":"John Doe","email":"1@1.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		b.Fatalf("create: unexpected status %d", w.Code)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1", nil))
		if w.Code != http.StatusOK {
			b.Fatalf("find: unexpected status %d", w.Code)
		}
	}
}

func BenchmarkRouter_FindOne_Cached(b *testing.B) {
	benchmarkFindOne(b, true)
}

func BenchmarkRouter_FindOne_Uncached(b *testing.B) {
	benchmarkFindOne(b, false)
}
