package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func signHeader(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignatureValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)

	header := signHeader(payload, testSecret, now)

	assert.NoError(t, VerifySignature(payload, header, testSecret, 5*time.Minute, now))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id":"evt_1"}`)

	header := signHeader(payload, "whsec_other", now)

	assert.ErrorIs(t, VerifySignature(payload, header, testSecret, 5*time.Minute, now), ErrBadSignature)
}

func TestVerifySignatureTamperedPayload(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	header := signHeader([]byte(`{"amount":100}`), testSecret, now)

	err := VerifySignature([]byte(`{"amount":999}`), header, testSecret, 5*time.Minute, now)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifySignatureStale(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{}`)

	header := signHeader(payload, testSecret, now.Add(-6*time.Minute))
	assert.ErrorIs(t, VerifySignature(payload, header, testSecret, 5*time.Minute, now), ErrStaleWebhook)

	// timestamps from the future are rejected too
	header = signHeader(payload, testSecret, now.Add(6*time.Minute))
	assert.ErrorIs(t, VerifySignature(payload, header, testSecret, 5*time.Minute, now), ErrStaleWebhook)
}

func TestVerifySignatureMissingOrMalformedHeader(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, VerifySignature([]byte(`{}`), "", testSecret, 5*time.Minute, now), ErrNoSignature)
	assert.ErrorIs(t, VerifySignature([]byte(`{}`), "garbage", testSecret, 5*time.Minute, now), ErrBadSignature)
	assert.ErrorIs(t, VerifySignature([]byte(`{}`), "t=123", testSecret, 5*time.Minute, now), ErrBadSignature)
}
