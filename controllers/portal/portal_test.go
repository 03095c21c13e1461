package portalControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/notify"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Subscription{}, &models.PortalToken{}))
	return db
}

func seedSubscription(t *testing.T, db *gorm.DB, permanentToken string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Subscription{
		StripeSubscriptionID: "sub_test_1",
		StripeCustomerID:     "cus_test_1",
		CustomerEmail:        "mario@example.com",
		CustomerName:         "Mario Rossi",
		Status:               "active",
		PermanentToken:       permanentToken,
	}).Error)
}

func TestClaimTempTokenSingleUse(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.PortalToken{
		Token:     "tok-once",
		Email:     "mario@example.com",
		ExpiresAt: time.Now().Add(TokenTTL),
	}).Error)

	email, ok := claimTempToken(db, "tok-once")
	assert.True(t, ok)
	assert.Equal(t, "mario@example.com", email)

	_, ok = claimTempToken(db, "tok-once")
	assert.False(t, ok, "a claimed token never works twice")
}

func TestClaimTempTokenExpired(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.PortalToken{
		Token:     "tok-old",
		Email:     "mario@example.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	_, ok := claimTempToken(db, "tok-old")
	assert.False(t, ok)
}

func TestClaimTempTokenUnknown(t *testing.T) {
	db := openTestDB(t)

	_, ok := claimTempToken(db, "tok-missing")
	assert.False(t, ok)
}

func newProcessorStub(t *testing.T) (*httptest.Server, *payments.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/billing_portal/sessions" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"url":"https://billing.example.com/p/session_123"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	client := payments.NewClient(&config.Config{StripeAPIURL: srv.URL, StripeSecretKey: "sk_test"})
	return srv, client
}

func TestPortalAccessWithPermanentToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	seedSubscription(t, db, "perm-token-1")
	_, client := newProcessorStub(t)
	cfg := &config.Config{FrontendURL: "https://oliogalia.it"}

	r := gin.New()
	r.GET("/api/portal-access", PortalAccess(db, client, cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/portal-access?token=perm-token-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "billing.example.com")
}

func TestPortalAccessWithTempToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	seedSubscription(t, db, "")
	require.NoError(t, db.Create(&models.PortalToken{
		Token:     "tok-temp",
		Email:     "mario@example.com",
		ExpiresAt: time.Now().Add(TokenTTL),
	}).Error)
	_, client := newProcessorStub(t)
	cfg := &config.Config{FrontendURL: "https://oliogalia.it"}

	r := gin.New()
	r.GET("/api/portal-access", PortalAccess(db, client, cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/portal-access?token=tok-temp", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// the same link a second time is rejected
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/portal-access?token=tok-temp", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortalAccessRejectsUnknownToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	_, client := newProcessorStub(t)

	r := gin.New()
	r.GET("/api/portal-access", PortalAccess(db, client, &config.Config{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/portal-access?token=nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/portal-access", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePortalSessionRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	seedSubscription(t, db, "")

	emailSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	t.Cleanup(emailSrv.Close)
	mailer := notify.NewMailer(&config.Config{
		EmailAPIURL: emailSrv.URL,
		EmailAPIKey: "re_test",
		EmailFrom:   "ordini@oliogalia.it",
	})
	limiter := middleware.NewEmailLimiter(3, 10*time.Minute)
	cfg := &config.Config{FrontendURL: "https://oliogalia.it"}

	r := gin.New()
	r.POST("/api/create-portal-session", CreatePortalSession(db, cfg, mailer, limiter))

	body := `{"email":"mario@example.com"}`
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/create-portal-session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-portal-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCreatePortalSessionUnknownEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	mailer := notify.NewMailer(&config.Config{})
	limiter := middleware.NewEmailLimiter(3, 10*time.Minute)

	r := gin.New()
	r.POST("/api/create-portal-session", CreatePortalSession(db, &config.Config{}, mailer, limiter))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-portal-session", strings.NewReader(`{"email":"nobody@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
