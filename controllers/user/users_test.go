package userControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/middleware"
	"github.com/contact-ergiva-dev/ergiva-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func newAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", RegisterHandler(db))
	r.POST("/auth/login", LoginHandler(db))
	r.GET("/user", middleware.RequireAuth(), GetUser(db))
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(t, db)

	w := postJSON(r, "/auth/register", RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "user", reg.User.Role)

	w = postJSON(r, "/auth/login", LoginRequest{Email: "asha@example.com", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// Token works against a protected route.
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), "asha@example.com")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(t, db)

	postJSON(r, "/auth/register", RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "s3cret-pass",
	})

	w := postJSON(r, "/auth/login", LoginRequest{Email: "asha@example.com", Password: "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(t, db)

	first := postJSON(r, "/auth/register", RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(r, "/auth/register", RegisterRequest{
		Name: "Other", Email: "asha@example.com", Password: "other-pass-123",
	})
	require.Equal(t, http.StatusConflict, second.Code)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordHashIsNeverSerialized(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(t, db)

	w := postJSON(r, "/auth/register", RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "s3cret-pass")
}
