package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Yashraj221B/chemical-management-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET", "chemical_inventory_test_jwt_secret_42")
	code := m.Run()
	os.Exit(code)
}

func newGatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": UsernameFromContext(c)})
	})
	return router
}

func performGatedRequest(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	newGatedRouter().ServeHTTP(resp, req)
	return resp
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	resp := performGatedRequest(t, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Token abc", "Bearer a b"} {
		resp := performGatedRequest(t, header)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.Code)
		}
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	resp := performGatedRequest(t, "Bearer not-a-real-token")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := utils.GenerateToken("labadmin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	resp := performGatedRequest(t, "Bearer "+token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"username":"labadmin"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
