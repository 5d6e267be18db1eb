package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret, uid, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   uid,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token := mintToken(t, testSecret, "u1", "a@example.com")

	c, err := invoke(t, Auth(testSecret), "Bearer "+token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if uid, _ := c.Get("uid").(string); uid != "u1" {
		t.Fatalf("uid claim not injected, got %v", c.Get("uid"))
	}
	if email, _ := c.Get("email").(string); email != "a@example.com" {
		t.Fatalf("email claim not injected, got %v", c.Get("email"))
	}
}

func TestAuth_Rejections(t *testing.T) {
	valid := mintToken(t, testSecret, "u1", "a@example.com")
	forged := mintToken(t, "wrong-secret", "u1", "a@example.com")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + valid},
		{"malformed", "Bearer"},
		{"bad signature", "Bearer " + forged},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invoke(t, Auth(testSecret), tc.header)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected HTTP error, got %v", err)
			}
			if httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", httpErr.Code)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   "u1",
		"email": "a@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, callErr := invoke(t, Auth(testSecret), "Bearer "+signed)
	httpErr, ok := callErr.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expired token must 401, got %v", callErr)
	}
}
