package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test_secret"

func sign(ts string, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	ts := "1756684800"
	valid := fmt.Sprintf("t=%s,v1=%s", ts, sign(ts, payload, testSecret))

	cases := []struct {
		name    string
		payload []byte
		header  string
		secret  string
		want    bool
	}{
		{"valid", payload, valid, testSecret, true},
		{"valid with spaces", payload, fmt.Sprintf("t=%s, v1=%s", ts, sign(ts, payload, testSecret)), testSecret, true},
		{"tampered payload", []byte(`{"type":"payment_intent.payment_failed"}`), valid, testSecret, false},
		{"wrong secret", payload, valid, "whsec_other", false},
		{"signed for another timestamp", payload, fmt.Sprintf("t=999,v1=%s", sign(ts, payload, testSecret)), testSecret, false},
		{"missing timestamp", payload, fmt.Sprintf("v1=%s", sign(ts, payload, testSecret)), testSecret, false},
		{"missing signature", payload, fmt.Sprintf("t=%s", ts), testSecret, false},
		{"empty header", payload, "", testSecret, false},
		{"garbage header", payload, "not-a-header", testSecret, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerifySignature(tc.payload, tc.header, tc.secret))
		})
	}
}
