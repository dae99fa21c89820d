package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

func setupProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doProtectedRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateToken(t *testing.T) {
	user := &models.User{Username: "alice", Email: "alice@example.com"}
	user.ID = uuid.New()

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("accepts_valid_token", func(t *testing.T) {
		user := &models.User{Username: "alice", Email: "alice@example.com"}
		user.ID = uuid.New()
		token, err := GenerateToken(user)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		router := setupProtectedRouter()
		w := doProtectedRequest(router, "Bearer "+token)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
		}
		if got := w.Body.String(); !strings.Contains(got, user.ID) {
			t.Errorf("expected user id %s in response, got %s", user.ID, got)
		}
	})

	t.Run("rejects_missing_header", func(t *testing.T) {
		router := setupProtectedRouter()
		w := doProtectedRequest(router, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects_malformed_header", func(t *testing.T) {
		router := setupProtectedRouter()
		w := doProtectedRequest(router, "Basic abc123")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects_garbage_token", func(t *testing.T) {
		router := setupProtectedRouter()
		w := doProtectedRequest(router, "Bearer not.a.token")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
