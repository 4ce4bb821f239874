package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/taylorp5/dealwise/internal/config"
	"github.com/taylorp5/dealwise/internal/extractor"
	"github.com/taylorp5/dealwise/internal/model"
)

func testServer() *Server {
	return &Server{Engine: extractor.New(config.Defaults())}
}

func TestHandleExtract(t *testing.T) {
	body := `{"url":"https://example.com/vdp","html":"<html><head><script type=\"application/ld+json\">{\"@type\":\"Vehicle\",\"name\":\"2024 Honda Accord EX\",\"offers\":{\"price\":\"23450\"}}</script></head><body></body></html>"}`

	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	w := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var rec model.ListingRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if rec.Price != 23450 || rec.Make != "Honda" {
		t.Errorf("record = %+v", rec)
	}
	if rec.SourceURL != "https://example.com/vdp" {
		t.Errorf("source url = %q", rec.SourceURL)
	}
}

func TestHandlePaste(t *testing.T) {
	body := `{"text":"2019 Honda Civic LX\nOur Price: $18,500"}`

	req := httptest.NewRequest(http.MethodPost, "/api/paste", strings.NewReader(body))
	w := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var rec model.ListingRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if rec.Price != 18500 {
		t.Errorf("price = %d", rec.Price)
	}
	if rec.SourceURL != "pasted-text" {
		t.Errorf("source url = %q", rec.SourceURL)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	for _, path := range []string{"/api/extract", "/api/paste"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		testServer().Handler().ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s status = %d", path, w.Code)
		}
	}
}

func TestBadRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}
