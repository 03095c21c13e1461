package adminController

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ProductVariant{}))
	return db
}

func productsRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/admin/products/:id", UpdateProduct(db))
	r.PUT("/api/admin/products/:id/variants/:variantID", UpdateVariant(db))
	return r
}

func seedProductWithVariant(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		ID: "olio-evo", Slug: "olio-evo", NameIT: "Olio EVO", NameEN: "EVO Oil",
		Price: 12.50, Stock: 10, Active: true,
		Variants: []models.ProductVariant{
			{ID: "1l", ProductID: "olio-evo", Price: 22.00, Stock: 5},
		},
	}).Error)
}

func putJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateProductValidation(t *testing.T) {
	db := openTestDB(t)
	seedProductWithVariant(t, db)
	r := productsRouter(db)

	assert.Equal(t, http.StatusBadRequest, putJSON(r, "/api/admin/products/olio-evo", `{"price":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, putJSON(r, "/api/admin/products/olio-evo", `{"stock":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, putJSON(r, "/api/admin/products/olio-evo", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, putJSON(r, "/api/admin/products/missing", `{"stock":1}`).Code)

	assert.Equal(t, http.StatusOK, putJSON(r, "/api/admin/products/olio-evo", `{"price":13.5,"stock":7}`).Code)
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", "olio-evo").Error)
	assert.Equal(t, 13.50, p.Price)
	assert.Equal(t, 7, p.Stock)
}

func TestUpdateVariantValidation(t *testing.T) {
	db := openTestDB(t)
	seedProductWithVariant(t, db)
	r := productsRouter(db)

	// variants reject non-positive prices just like products
	assert.Equal(t, http.StatusBadRequest, putJSON(r, "/api/admin/products/olio-evo/variants/1l", `{"price":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, putJSON(r, "/api/admin/products/olio-evo/variants/1l", `{"price":-5}`).Code)
	assert.Equal(t, http.StatusBadRequest, putJSON(r, "/api/admin/products/olio-evo/variants/1l", `{"stock":-1}`).Code)
	assert.Equal(t, http.StatusNotFound, putJSON(r, "/api/admin/products/olio-evo/variants/magnum", `{"stock":1}`).Code)

	assert.Equal(t, http.StatusOK, putJSON(r, "/api/admin/products/olio-evo/variants/1l", `{"price":24,"stock":2}`).Code)
	var v models.ProductVariant
	require.NoError(t, db.First(&v, "id = ?", "1l").Error)
	assert.Equal(t, 24.00, v.Price)
	assert.Equal(t, 2, v.Stock)
}
