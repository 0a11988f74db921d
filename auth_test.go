package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// newTestRouter builds a bare gin engine in test mode.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// TestToken_RoundTrip verifies a signed token parses back to its user id.
func TestToken_RoundTrip(t *testing.T) {
	token, err := issueToken(42, "test-secret")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	userID, err := parseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("parseToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

// TestToken_WrongSecret verifies a token signed with a different secret is
// rejected.
func TestToken_WrongSecret(t *testing.T) {
	token, err := issueToken(42, "test-secret")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	if _, err := parseToken(token, "other-secret"); err == nil {
		t.Error("expected parse error for wrong secret")
	}
}

// TestToken_Garbage verifies malformed tokens are rejected.
func TestToken_Garbage(t *testing.T) {
	if _, err := parseToken("not.a.token", "test-secret"); err == nil {
		t.Error("expected parse error for garbage token")
	}
}

// TestAuthMiddleware_MissingHeader verifies requests without a Bearer header
// get a 401 before reaching the handler.
func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := &Handler{cfg: Config{JWTSecret: "test-secret"}}
	router := newTestRouter()
	router.GET("/protected", h.authMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("user_id")})
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// TestAuthMiddleware_ValidToken verifies a valid Bearer token passes through
// with user_id set on the context.
func TestAuthMiddleware_ValidToken(t *testing.T) {
	h := &Handler{cfg: Config{JWTSecret: "test-secret"}}
	router := newTestRouter()
	router.GET("/protected", h.authMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("user_id")})
	})

	token, err := issueToken(7, "test-secret")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != `{"user_id":7}` {
		t.Errorf("body = %s, want {\"user_id\":7}", got)
	}
}
