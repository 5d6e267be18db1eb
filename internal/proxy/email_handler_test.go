package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

type stubDirectory struct {
	users   map[string]*domain.User
	err     error
	updates int
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{users: make(map[string]*domain.User)}
}

func (d *stubDirectory) UpdateEmail(_ context.Context, id, newEmail string) (*domain.User, error) {
	d.updates++
	if d.err != nil {
		return nil, d.err
	}
	u, ok := d.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Email = newEmail
	clone := *u
	return &clone, nil
}

func (d *stubDirectory) List(context.Context, string) ([]*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (d *stubDirectory) Update(context.Context, string, ports.UpdateUserInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (d *stubDirectory) UpdateStatus(context.Context, string, string) error {
	return errors.New("not implemented")
}
func (d *stubDirectory) Delete(context.Context, string) error { return errors.New("not implemented") }

func serve(t *testing.T, directory ports.UserService, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewRouter(directory, nil, "service-key", zerolog.Nop())

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestEmailHandler_PreflightReflectsOrigin(t *testing.T) {
	rec := serve(t, newStubDirectory(), http.MethodOptions, "/", "",
		map[string]string{"Origin": "https://dashboard.example.com"})

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example.com" {
		t.Fatalf("origin not reflected, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatalf("allow-headers missing")
	}
}

func TestEmailHandler_CORSOnErrorResponses(t *testing.T) {
	// The dashboard must be able to read failure bodies cross-origin.
	rec := serve(t, newStubDirectory(), http.MethodPost, "/", `{"userId":"","newEmail":""}`,
		map[string]string{"Origin": "https://dashboard.example.com"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example.com" {
		t.Fatalf("error response missing reflected origin, got %q", got)
	}
}

func TestEmailHandler_MethodNotAllowed(t *testing.T) {
	dir := newStubDirectory()
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := serve(t, dir, method, "/", "", nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s expected 405, got %d", method, rec.Code)
		}
	}
	if dir.updates != 0 {
		t.Fatalf("rejected methods must not mutate, saw %d updates", dir.updates)
	}
}

func TestEmailHandler_MalformedJSON(t *testing.T) {
	dir := newStubDirectory()
	rec := serve(t, dir, http.MethodPost, "/", `{"userId": `, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "invalid JSON body" {
		t.Fatalf("unexpected error message %q", msg)
	}
	if dir.updates != 0 {
		t.Fatalf("malformed body must not reach the directory")
	}
}

func TestEmailHandler_MissingFields(t *testing.T) {
	dir := newStubDirectory()
	tests := []string{
		`{}`,
		`{"userId":"u1"}`,
		`{"newEmail":"new@example.com"}`,
		`{"userId":"","newEmail":"new@example.com"}`,
	}
	for _, body := range tests {
		rec := serve(t, dir, http.MethodPost, "/", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s expected 400, got %d", body, rec.Code)
		}
		if msg := decodeError(t, rec); msg != "userId and newEmail are required" {
			t.Fatalf("body %s unexpected error %q", body, msg)
		}
	}
	if dir.updates != 0 {
		t.Fatalf("incomplete requests must not reach the directory")
	}
}

func TestEmailHandler_Success(t *testing.T) {
	dir := newStubDirectory()
	dir.users["u1"] = &domain.User{ID: "u1", Email: "old@example.com", Role: domain.RoleUser}

	rec := serve(t, dir, http.MethodPost, "/", `{"userId":"u1","newEmail":"new@example.com"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data *domain.User `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data == nil || body.Data.Email != "new@example.com" {
		t.Fatalf("response must carry the updated row, got %+v", body.Data)
	}

	// The write is visible to subsequent reads of the directory.
	if dir.users["u1"].Email != "new@example.com" {
		t.Fatalf("directory row not updated: %+v", dir.users["u1"])
	}
}

func TestEmailHandler_StoreRejections(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"email taken", domain.ErrEmailTaken},
		{"user not found", domain.ErrUserNotFound},
		{"invalid input", domain.ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := newStubDirectory()
			dir.err = tc.err

			rec := serve(t, dir, http.MethodPost, "/", `{"userId":"u1","newEmail":"new@example.com"}`, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if msg := decodeError(t, rec); msg != tc.err.Error() {
				t.Fatalf("store message must pass through, got %q", msg)
			}
		})
	}
}

func TestEmailHandler_UnexpectedStoreError(t *testing.T) {
	dir := newStubDirectory()
	dir.err = errors.New("connection reset")

	rec := serve(t, dir, http.MethodPost, "/", `{"userId":"u1","newEmail":"new@example.com"}`, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected errors must surface as 500, got %d", rec.Code)
	}
}
