package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/config"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/service"
	"github.com/redis/go-redis/v9"
)

const testSecret = "test-secret"

func testAuthService() *service.AuthService {
	cfg := &config.Config{
		JWTSecret: testSecret,
		JWTExpiry: time.Hour,
	}
	// Points at nothing: any session lookup fails, which is exactly what the
	// validation-failure tests need.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	return service.NewAuthService(cfg, nil, rdb)
}

func signedToken(t *testing.T, role model.Role) string {
	t.Helper()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := testAuthService()

	router := gin.New()
	router.GET("/protected", RequireJWT(authService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		// Correctly signed, but no active session backs the JTI.
		{"valid signature without session", "Bearer " + signedToken(t, model.RoleStudent), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := runRequest(router, tt.authHeader)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestOptionalJWTLetsAnonymousThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := testAuthService()

	router := gin.New()
	router.GET("/protected", OptionalJWT(authService), func(c *gin.Context) {
		if GetClaims(c) != nil {
			c.Status(http.StatusTeapot)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("no token", func(t *testing.T) {
		if w := runRequest(router, ""); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("invalid token is ignored, not rejected", func(t *testing.T) {
		if w := runRequest(router, "Bearer junk"); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	withClaims := func(role model.Role) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(ContextKeyClaims, &service.Claims{UserID: uuid.New(), Role: role})
			c.Next()
		}
	}

	tests := []struct {
		name       string
		setup      gin.HandlerFunc
		allowed    []model.Role
		wantStatus int
	}{
		{"matching role", withClaims(model.RoleAdmin), []model.Role{model.RoleAdmin}, http.StatusOK},
		{"one of several", withClaims(model.RoleTutor), []model.Role{model.RoleTutor, model.RoleAdmin}, http.StatusOK},
		{"wrong role", withClaims(model.RoleStudent), []model.Role{model.RoleAdmin}, http.StatusForbidden},
		{"no claims", func(c *gin.Context) { c.Next() }, []model.Role{model.RoleAdmin}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/protected", tt.setup, RequireRole(tt.allowed...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := runRequest(router, "")
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
