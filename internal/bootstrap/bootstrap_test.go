package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appControllers "github.com/yigit/collegesocial/internal/app/controllers"
	appRoutes "github.com/yigit/collegesocial/internal/app/routes"
	"github.com/yigit/collegesocial/internal/config"
	appMiddleware "github.com/yigit/collegesocial/internal/middleware"
	pkgAuth "github.com/yigit/collegesocial/internal/pkg/auth"
	"github.com/yigit/collegesocial/internal/pkg/email"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/metrics"
)

func TestNewNotifierSelectsDriver(t *testing.T) {
	cfg := &config.Config{}

	cfg.Email.Driver = config.EmailLog
	assert.IsType(t, &email.LogNotifier{}, newNotifier(cfg, zerolog.Nop()))

	cfg.Email.Driver = config.EmailSMTP
	cfg.Email.SMTPHost = "smtp.example.com"
	assert.IsType(t, &email.SMTPNotifier{}, newNotifier(cfg, zerolog.Nop()))

	cfg.Email.Driver = config.EmailSendGrid
	cfg.Email.SendGridAPIKey = "SG.test"
	assert.IsType(t, &email.SendGridNotifier{}, newNotifier(cfg, zerolog.Nop()))
}

func TestNewObjectStoreLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageLocal
	cfg.Server.StoragePath = t.TempDir()
	cfg.Server.PublicURL = "http://localhost:8080/"

	store, err := newObjectStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &filestorage.LocalStorage{}, store)
	assert.Equal(t, "posts/1/a", store.PublicIDFromURL("http://localhost:8080/uploads/posts/1/a"))
}

func TestSetupRouterMountsAmbientRoutes(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.Server.MaxUploadMB = 1
	cfg.Server.StoragePath = t.TempDir()
	cfg.Storage.Driver = config.StorageLocal

	jwt := pkgAuth.NewJWTService(pkgAuth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	deps := &Dependencies{
		Metrics:        metrics.New(),
		AuthMiddleware: appMiddleware.NewAuthMiddleware(jwt, "admin-token"),
		Controllers: appRoutes.Controllers{
			Health: appControllers.NewHealthController(map[string]appControllers.Pinger{}),
		},
	}
	router := SetupRouter(cfg, deps, zerolog.Nop())

	for path, want := range map[string]int{
		"/ping":              http.StatusOK,
		"/healthz":           http.StatusOK,
		"/metrics":           http.StatusOK,
		"/swagger/doc.json":  http.StatusOK,
		"/api/posts":         http.StatusUnauthorized,
		"/api/user/profile":  http.StatusUnauthorized,
		"/api/conversations": http.StatusUnauthorized,
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/upload", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
