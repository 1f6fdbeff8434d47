package testimonialControllers

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

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Testimonial{}))
	return db
}

func newTestimonialRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/testimonials", CreateTestimonialHandler(db))
	r.GET("/testimonials", ListApprovedHandler(db))
	r.PUT("/admin/testimonials/:id/approve", ApproveHandler(db))
	return r
}

func TestTestimonialModerationFlow(t *testing.T) {
	db := setupTestDB(t)
	r := newTestimonialRouter(db)

	data, _ := json.Marshal(TestimonialInput{Name: "Asha Rao", Rating: 5, Content: "Back on my feet in three weeks."})
	req := httptest.NewRequest(http.MethodPost, "/testimonials", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Hidden until moderated.
	req = httptest.NewRequest(http.MethodGet, "/testimonials", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Asha Rao")

	req = httptest.NewRequest(http.MethodPut, "/admin/testimonials/1/approve", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/testimonials", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "Asha Rao")
}

func TestTestimonialRejectsInvalidRating(t *testing.T) {
	db := setupTestDB(t)
	r := newTestimonialRouter(db)

	data, _ := json.Marshal(TestimonialInput{Name: "Asha Rao", Rating: 9, Content: "x"})
	req := httptest.NewRequest(http.MethodPost, "/testimonials", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
