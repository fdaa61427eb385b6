package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ROBE_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("ROBE_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ROBE_TEST_MISSING", "fallback"))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_DB", "CLOUDINARY_FOLDER", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "robeDB", cfg.DBName)
	assert.Equal(t, "robe_products", cfg.CloudinaryFolder)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t,
		[]string{"http://a.com", "http://b.com"},
		splitCSV(" http://a.com, http://b.com ,"),
	)
}
