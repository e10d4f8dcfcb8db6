package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/road-estimator/road-estimator-api/routes"
	"github.com/road-estimator/road-estimator-api/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// FakeIdentityProvider resolves callback codes from a fixed table.
type FakeIdentityProvider struct {
	Identities map[string]services.Identity
}

func (f *FakeIdentityProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (f *FakeIdentityProvider) Exchange(ctx context.Context, code string) (services.Identity, error) {
	identity, ok := f.Identities[code]
	if !ok {
		return services.Identity{}, errors.New("invalid_grant")
	}
	return identity, nil
}

// TestApp is the full router backed by an in-memory sqlite database.
type TestApp struct {
	Router   *gin.Engine
	DB       *gorm.DB
	Config   *config.Config
	Auth     *services.AuthService
	Provider *FakeIdentityProvider
	Archive  *services.MockS3Service
}

// TestConfig returns the configuration the test app runs with.
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:       ":memory:",
		DatabaseDriver:    "sqlite",
		GoEnv:             "test",
		FrontendOrigin:    "http://localhost:3000",
		SessionSecret:     "test-session-secret",
		SessionStore:      "database",
		SessionTTL:        24 * time.Hour,
		SessionCookieName: "sid",
		OTELServiceName:   "road-estimator-api-test",
	}
}

// NewTestApp migrates a fresh database and builds the router on top of it.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))

	cfg := TestConfig()
	config.SetConfig(cfg)
	config.SetDB(db)

	archive := services.NewMockS3Service()
	services.InitReportArchive(archive)

	auth := services.NewAuthService(services.AuthServiceConfig{
		Users:      services.NewGormUserStore(db),
		Sessions:   services.NewGormSessionStore(db),
		Verifier:   services.NewBcryptVerifier(bcrypt.MinCost),
		SessionTTL: cfg.SessionTTL,
	})
	provider := &FakeIdentityProvider{Identities: map[string]services.Identity{}}

	t.Cleanup(func() {
		services.SetReportArchive(nil)
		config.SetDB(nil)
		config.SetConfig(nil)
		_ = sqlDB.Close()
	})

	return &TestApp{
		Router: routes.Setup(&routes.Dependencies{
			Config:           cfg,
			Auth:             auth,
			IdentityProvider: provider,
		}),
		DB:       db,
		Config:   cfg,
		Auth:     auth,
		Provider: provider,
		Archive:  archive,
	}
}

// Do sends a JSON request through the router with the given cookies.
func (a *TestApp) Do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		raw, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// Register signs up a user and returns the session cookie it was issued.
func (a *TestApp) Register(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()
	w := a.Do(http.MethodPost, "/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cookie := FindCookie(w, a.Config.SessionCookieName)
	require.NotNil(t, cookie)
	return cookie
}

// FindCookie returns the named cookie set on the response, or nil.
func FindCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// DecodeObject unmarshals a JSON object response body.
func DecodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// DecodeList unmarshals a JSON array response body.
func DecodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
