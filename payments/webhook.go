package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Event is a webhook notification from the payment processor.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

var (
	ErrBadSignature = errors.New("invalid webhook signature")
	ErrStaleWebhook = errors.New("webhook timestamp outside tolerance")
	ErrNoSignature  = errors.New("missing webhook signature header")
)

// VerifySignature checks the processor signature header against the raw
// payload. The header carries "t=<unix>,v1=<hex hmac>"; the signed content is
// "<t>.<payload>" keyed with the endpoint secret.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	if header == "" {
		return ErrNoSignature
	}

	var ts int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, _ = strconv.ParseInt(kv[1], 10, 64)
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if ts == 0 || len(signatures) == 0 {
		return ErrBadSignature
	}

	sent := time.Unix(ts, 0)
	if now.Sub(sent) > tolerance || sent.Sub(now) > tolerance {
		return ErrStaleWebhook
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(strings.ToLower(sig))) {
			return nil
		}
	}
	return ErrBadSignature
}
