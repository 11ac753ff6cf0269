package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStaticHandler(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<html>app</html>")
	writeFile(t, dir, "assets/app.js", "console.log(1)")

	h := NewStaticHandler(dir)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"existing asset", "/assets/app.js", http.StatusOK, "console.log(1)"},
		{"root serves index", "/", http.StatusOK, "<html>app</html>"},
		{"client route falls back to index", "/orders/history", http.StatusOK, "<html>app</html>"},
		{"missing asset is 404", "/assets/missing.js", http.StatusNotFound, ""},
		{"traversal rejected", "/../../etc/passwd", http.StatusOK, "<html>app</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
