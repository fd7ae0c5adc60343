package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "REPORT_THRESHOLD", "CATEGORIES", "REQUEST_TIMEOUT", "TX_MAX_RETRIES", "AUTH_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(5), cfg.ReportThreshold)
	assert.Equal(t, []string{"자유", "질문", "정보", "후기", "홍보"}, cfg.Categories)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint64(3), cfg.TxMaxRetries)
	assert.Equal(t, AuthProviderJWT, cfg.AuthProvider)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("REPORT_THRESHOLD", "2")
	t.Setenv("CATEGORIES", " news, , qna ")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("TX_MAX_RETRIES", "oops")
	t.Setenv("AUTH_PROVIDER", "Firebase")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, int64(2), cfg.ReportThreshold)
	assert.Equal(t, []string{"news", "qna"}, cfg.Categories)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint64(3), cfg.TxMaxRetries)
	assert.Equal(t, AuthProviderFirebase, cfg.AuthProvider)
}
