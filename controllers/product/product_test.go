package productControllers

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
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}))
	return db
}

func newCatalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:id", GetProductByID(db))
	r.POST("/admin/products", CreateProduct(db))
	r.PUT("/admin/products/:id", UpdateProduct(db))
	r.DELETE("/admin/products/:id", DeleteProduct(db))
	return r
}

func TestCreateAndFetchProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newCatalogRouter(db)

	data, _ := json.Marshal(ProductInput{Name: "TENS Unit", Price: 50000, Stock: 5})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/products/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TENS Unit")
	assert.Contains(t, w.Body.String(), `"price":50000`)
}

func TestCreateInactiveProductStaysInactive(t *testing.T) {
	db := setupTestDB(t)
	r := newCatalogRouter(db)

	inactive := false
	data, _ := json.Marshal(ProductInput{Name: "Draft SKU", Price: 1000, Active: &inactive})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Product
	require.NoError(t, db.First(&got, 1).Error)
	assert.False(t, got.Active)
}

func TestStorefrontHidesInactiveProducts(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Product{Name: "Visible", Price: 1000, Active: true}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Hidden", Price: 1000, Active: false}).Error)
	r := newCatalogRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Visible")
	assert.NotContains(t, w.Body.String(), "Hidden")
}

func TestUpdateProductStockAndPrice(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Product{Name: "TENS Unit", Price: 50000, Stock: 5, Active: true}).Error)
	r := newCatalogRouter(db)

	price := int64(55000)
	stock := 12
	data, _ := json.Marshal(UpdateProductInput{Price: &price, Stock: &stock})
	req := httptest.NewRequest(http.MethodPut, "/admin/products/1", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Product
	require.NoError(t, db.First(&got, 1).Error)
	assert.Equal(t, int64(55000), got.Price)
	assert.Equal(t, 12, got.Stock)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Product{Name: "TENS Unit", Price: 50000, Active: true}).Error)
	r := newCatalogRouter(db)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Zero(t, count)

	// Soft delete keeps the row for order-item history.
	var total int64
	db.Unscoped().Model(&models.Product{}).Count(&total)
	assert.Equal(t, int64(1), total)

	req = httptest.NewRequest(http.MethodDelete, "/admin/products/99", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
