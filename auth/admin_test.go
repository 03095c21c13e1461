package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/models"
)

func setupLoginRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AdminUser{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("segretissimo"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminUser{
		Email: "admin@oliogalia.it", Name: "Admin", PasswordHash: string(hash),
	}).Error)

	cfg := &config.Config{Mode: "dev", JWTSecret: "test-secret", SessionDuration: 24}
	r := gin.New()
	r.POST("/api/admin/login", LoginHandler(db, cfg))
	return r, db
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r, _ := setupLoginRouter(t)

	w := postLogin(r, `{"email":"admin@oliogalia.it","password":"segretissimo"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, middleware.SessionCookie+"=")
	assert.Contains(t, cookie, "HttpOnly")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := setupLoginRouter(t)

	wrongPassword := postLogin(r, `{"email":"admin@oliogalia.it","password":"sbagliata"}`)
	unknownEmail := postLogin(r, `{"email":"nobody@oliogalia.it","password":"segretissimo"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// unknown account and wrong password are indistinguishable
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginValidatesInput(t *testing.T) {
	r, _ := setupLoginRouter(t)

	assert.Equal(t, http.StatusBadRequest, postLogin(r, `{"email":"not-an-email","password":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(r, `{}`).Code)
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AdminUser{}))

	cfg := &config.Config{AdminEmail: "admin@oliogalia.it", AdminPassword: "$2a$10$fakehash"}
	require.NoError(t, EnsureAdmin(db, cfg))
	require.NoError(t, EnsureAdmin(db, cfg))

	var count int64
	db.Model(&models.AdminUser{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
