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

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "user-1",
		"role": "owner",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := c.Get("user_id").(string); got != "user-1" {
		t.Errorf("user_id claim = %q, want %q", got, "user-1")
	}
	if got, _ := c.Get("role").(string); got != "owner" {
		t.Errorf("role claim = %q, want %q", got, "owner")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := runAuth(t, "")
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, _, err := runAuth(t, "Token abc")
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, _, err := runAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, _, err := runAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
}
