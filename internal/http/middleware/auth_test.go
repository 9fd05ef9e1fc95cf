package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/db"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/repos"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

func newAuthStack(t *testing.T) (services.AuthService, *AuthMiddleware) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	log := logger.NewNop()
	authService := services.NewAuthService(gdb, log, repos.NewUserRepo(gdb, log), "test-secret")
	return authService, NewAuthMiddleware(log, authService)
}

func newProtectedRouter(am *AuthMiddleware, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", am.RequireAuth())
	if adminOnly {
		group.Use(am.RequireAdmin())
	}
	group.GET("/whoami", func(c *gin.Context) {
		identity := ctxutil.GetIdentity(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"email": identity.Email, "role": identity.Role})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	authService, am := newAuthStack(t)
	r := newProtectedRouter(am, false)

	result, err := authService.Register(context.Background(), "user@example.com", "secret123", "User")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + result.Token, http.StatusOK},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	authService, am := newAuthStack(t)
	r := newProtectedRouter(am, true)

	learner, err := authService.Register(context.Background(), "learner@example.com", "secret123", "Learner")
	if err != nil {
		t.Fatalf("register learner: %v", err)
	}
	if err := authService.SeedDefaultAdmin(context.Background(), "admin@example.com", "Admin@123", "Admin"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	admin, err := authService.Login(context.Background(), "admin@example.com", "Admin@123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	for _, tc := range []struct {
		name  string
		token string
		want  int
	}{
		{"learner forbidden", learner.Token, http.StatusForbidden},
		{"admin allowed", admin.Token, http.StatusOK},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}
