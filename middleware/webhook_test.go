package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/AndreaGalia/olio-galia-sub004/config"
)

func webhookRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/stripe-webhook", VerifyWebhook(cfg), func(c *gin.Context) {
		// the handler must still see the full body after verification
		body, _ := c.GetRawData()
		c.JSON(http.StatusOK, gin.H{"len": len(body)})
	})
	return r
}

func stripeHeader(payload, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookAcceptsSignedRequest(t *testing.T) {
	cfg := &config.Config{Mode: "prod", StripeWebhookSecret: "whsec_test"}
	r := webhookRouter(cfg)
	payload := `{"id":"evt_1","type":"checkout.session.completed"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stripe-webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", stripeHeader(payload, "whsec_test", time.Now()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"len":%d`, len(payload)), "body rewound for the handler")
}

func TestVerifyWebhookRejectsBadSignature(t *testing.T) {
	cfg := &config.Config{Mode: "prod", StripeWebhookSecret: "whsec_test"}
	r := webhookRouter(cfg)
	payload := `{"id":"evt_1"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stripe-webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", stripeHeader(payload, "whsec_other", time.Now()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyWebhookRejectsMissingSignature(t *testing.T) {
	cfg := &config.Config{Mode: "prod", StripeWebhookSecret: "whsec_test"}
	r := webhookRouter(cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/stripe-webhook", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyWebhookSkipsInSandbox(t *testing.T) {
	r := webhookRouter(&config.Config{Mode: "sandbox"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/stripe-webhook", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyWebhookPanicsWithoutSecretInProd(t *testing.T) {
	assert.Panics(t, func() {
		VerifyWebhook(&config.Config{Mode: "prod"})
	})
}
