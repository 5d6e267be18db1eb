package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDownload_MissingParams(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"no params", "/download"},
		{"missing name", "/download?url=https://example.com/f.pdf"},
		{"missing url", "/download?name=f.pdf"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, newStubDirectory(), http.MethodGet, tc.path, "", nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestDownload_StreamsUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "file-contents")
	}))
	defer upstream.Close()

	rec := serve(t, newStubDirectory(), http.MethodGet,
		"/download?url="+upstream.URL+"&name=report.txt", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "file-contents" {
		t.Fatalf("body not streamed, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="report.txt"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("upstream content type not forwarded, got %q", got)
	}
}

func TestDownload_SanitizesFilename(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "x")
	}))
	defer upstream.Close()

	rec := serve(t, newStubDirectory(), http.MethodGet,
		"/download?url="+upstream.URL+"&name=my+file%281%29.txt", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="my_file_1_.txt"` {
		t.Fatalf("filename not sanitized, got %q", got)
	}
}

func TestDownload_UpstreamErrorPassesThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	rec := serve(t, newStubDirectory(), http.MethodGet,
		"/download?url="+upstream.URL+"/missing&name=f.txt", "", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("upstream status must pass through, got %d", rec.Code)
	}
}

func TestDownload_UnreachableUpstream(t *testing.T) {
	rec := serve(t, newStubDirectory(), http.MethodGet,
		"/download?url=http://0.0.0.0:0/f&name=f.txt", "", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("transport failure expected 500, got %d", rec.Code)
	}
}
