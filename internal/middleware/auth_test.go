package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func doAuthedRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{Base: models.Base{ID: 42}, Email: "alice@example.com"}

	t.Run("accepts valid access token", func(t *testing.T) {
		token, err := GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		r := setupAuthedRouter()

		rec := doAuthedRequest(r, "Bearer "+token)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseBody(t, rec)
		if result["user_id"].(float64) != 42 {
			t.Errorf("expected user_id 42, got %v", result["user_id"])
		}
	})

	t.Run("rejects missing header", func(t *testing.T) {
		r := setupAuthedRouter()

		rec := doAuthedRequest(r, "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		r := setupAuthedRouter()

		rec := doAuthedRequest(r, "NotBearer token")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		r := setupAuthedRouter()

		rec := doAuthedRequest(r, "Bearer not-a-jwt")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		result := parseBody(t, rec)
		errObj := result["error"].(map[string]interface{})
		if errObj["code"] != "UNAUTHORIZED" {
			t.Errorf("expected UNAUTHORIZED, got %v", errObj["code"])
		}
	})

	t.Run("rejects refresh token as access token", func(t *testing.T) {
		token, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		r := setupAuthedRouter()

		rec := doAuthedRequest(r, "Bearer "+token)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestValidateRefreshToken(t *testing.T) {
	user := &models.User{Base: models.Base{ID: 7}, Email: "bob@example.com"}

	t.Run("accepts refresh token", func(t *testing.T) {
		token, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		claims, err := ValidateRefreshToken(token)
		if err != nil {
			t.Fatalf("expected valid refresh token, got %v", err)
		}
		if claims.UserID != 7 {
			t.Errorf("expected user 7, got %d", claims.UserID)
		}
	})

	t.Run("rejects access token", func(t *testing.T) {
		token, err := GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if _, err := ValidateRefreshToken(token); err == nil {
			t.Fatal("expected access token to be rejected")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := ValidateRefreshToken("garbage"); err == nil {
			t.Fatal("expected garbage token to be rejected")
		}
	})
}

func TestHashToken(t *testing.T) {
	if HashToken("a") == HashToken("b") {
		t.Error("expected different tokens to hash differently")
	}
	if HashToken("same") != HashToken("same") {
		t.Error("expected hashing to be deterministic")
	}
	if len(HashToken("x")) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(HashToken("x")))
	}
}
