package checkoutControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Customer{},
	))
	return db
}

func seedCheckoutCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		ID: "olio-evo", Slug: "olio-evo", NameIT: "Olio EVO", NameEN: "EVO Oil",
		Price: 12.50, Stock: 10, Active: true,
		Variants: []models.ProductVariant{
			{ID: "1l", ProductID: "olio-evo", NameIT: "1 litro", NameEN: "1 litre", Price: 22.00, WeightGrams: 1700, Stock: 5},
		},
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: "miele", Slug: "miele", NameIT: "Miele", NameEN: "Honey",
		Price: 8.00, WeightGrams: 500, Stock: 4, Active: true,
	}).Error)
}

func paidSession(id string) *payments.CheckoutSession {
	s := &payments.CheckoutSession{
		ID:            id,
		PaymentStatus: "paid",
		Currency:      "eur",
		AmountTotal:   5950,
		Metadata: map[string]string{
			"items":    `[{"p":"olio-evo","v":"1l","q":2,"pr":22,"w":1700},{"p":"miele","q":1,"pr":8,"w":500}]`,
			"zone":     "IT",
			"country":  "IT",
			"subtotal": "52.00",
			"shipping": "7.50",
		},
	}
	s.CustomerDetails.Name = "Mario Rossi"
	s.CustomerDetails.Email = "mario@example.com"
	s.CustomerDetails.Address.Line1 = "Via Roma 1"
	s.CustomerDetails.Address.City = "Bari"
	s.CustomerDetails.Address.PostalCode = "70121"
	s.CustomerDetails.Address.Country = "IT"
	return s
}

func TestRecordOrderCreatesOrderOnce(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}
	session := paidSession("cs_test_1")

	order, created, err := RecordOrder(db, cfg, session)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "cs_test_1", order.SessionID)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 52.00, order.Subtotal)
	assert.Equal(t, 7.50, order.ShippingCost)
	assert.Equal(t, 59.50, order.Total)
	assert.NotEmpty(t, order.OrderRef)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Olio EVO", order.Items[0].NameIT, "names resolved from the catalog")
	assert.Equal(t, 22.00, order.Items[0].UnitPrice)
}

func TestRecordOrderIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}

	first, created, err := RecordOrder(db, cfg, paidSession("cs_test_2"))
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := RecordOrder(db, cfg, paidSession("cs_test_2"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Total, second.Total)

	var orderCount int64
	db.Model(&models.Order{}).Where("session_id = ?", "cs_test_2").Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)

	// side effects ran exactly once
	var variant models.ProductVariant
	require.NoError(t, db.First(&variant, "id = ?", "1l").Error)
	assert.Equal(t, 3, variant.Stock)

	var honey models.Product
	require.NoError(t, db.First(&honey, "id = ?", "miele").Error)
	assert.Equal(t, 3, honey.Stock)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "email = ?", "mario@example.com").Error)
	assert.Equal(t, 1, customer.OrdersCount)
	assert.Equal(t, 59.50, customer.TotalSpent)
}

func TestRecordOrderClampsStockAtZero(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}

	session := paidSession("cs_test_3")
	session.Metadata["items"] = `[{"p":"miele","q":100,"pr":8,"w":500}]`

	_, created, err := RecordOrder(db, cfg, session)
	require.NoError(t, err)
	assert.True(t, created)

	var honey models.Product
	require.NoError(t, db.First(&honey, "id = ?", "miele").Error)
	assert.Equal(t, 0, honey.Stock, "oversell never drives stock negative")
}

func TestRecordOrderTracksCustomerAcrossOrders(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}

	_, _, err := RecordOrder(db, cfg, paidSession("cs_test_4a"))
	require.NoError(t, err)
	_, _, err = RecordOrder(db, cfg, paidSession("cs_test_4b"))
	require.NoError(t, err)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "email = ?", "mario@example.com").Error)
	assert.Equal(t, 2, customer.OrdersCount)
	assert.Equal(t, 119.00, customer.TotalSpent)
}

func TestRecordOrderUnpaidSessionStaysPending(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}

	session := paidSession("cs_test_5")
	session.PaymentStatus = "unpaid"

	order, _, err := RecordOrder(db, cfg, session)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestRecordOrderPromotesPendingPaymentOnSettlement(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}

	// verify runs right after redirect, before the async payment settles
	unpaid := paidSession("cs_test_8")
	unpaid.PaymentStatus = "unpaid"
	order, created, err := RecordOrder(db, cfg, unpaid)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	// the settlement webhook re-fetches the session, now paid
	settled, created, err := RecordOrder(db, cfg, paidSession("cs_test_8"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.PaymentStatusPaid, settled.PaymentStatus)

	// the promotion re-runs no side effects
	var variant models.ProductVariant
	require.NoError(t, db.First(&variant, "id = ?", "1l").Error)
	assert.Equal(t, 3, variant.Stock)
	var customer models.Customer
	require.NoError(t, db.First(&customer, "email = ?", "mario@example.com").Error)
	assert.Equal(t, 1, customer.OrdersCount)
}

func TestRecordOrderNeverDowngradesPaymentStatus(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}

	_, _, err := RecordOrder(db, cfg, paidSession("cs_test_9"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Order{}).
		Where("session_id = ?", "cs_test_9").
		Update("payment_status", models.PaymentStatusRefunded).Error)

	order, created, err := RecordOrder(db, cfg, paidSession("cs_test_9"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.PaymentStatusRefunded, order.PaymentStatus, "a refund is never overwritten")
}

func TestRecordOrderRejectsSessionWithoutItems(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{Currency: "eur"}

	session := paidSession("cs_test_6")
	delete(session.Metadata, "items")

	_, _, err := RecordOrder(db, cfg, session)
	assert.Error(t, err)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestRecordOrderKeepsItemsWhenProductDeleted(t *testing.T) {
	db := openTestDB(t)
	seedCheckoutCatalog(t, db)
	cfg := &config.Config{Currency: "eur"}

	session := paidSession("cs_test_7")
	session.Metadata["items"] = `[{"p":"ritirato","q":1,"pr":9.5,"w":300}]`
	session.AmountTotal = 0
	session.Metadata["subtotal"] = "9.50"
	session.Metadata["shipping"] = "7.50"

	order, created, err := RecordOrder(db, cfg, session)
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, order.Items, 1)
	assert.Empty(t, order.Items[0].NameIT, "name stays empty for retired products")
	assert.Equal(t, 9.50, order.Items[0].UnitPrice, "captured price survives catalog removal")
	assert.Equal(t, 17.00, order.Total, "total falls back to subtotal plus shipping")
}
