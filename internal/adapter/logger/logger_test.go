package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MikeRez0/quotapay/internal/adapter/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		conf    config.App
		wantNil bool
	}{
		{name: "develop", conf: config.App{LogLevel: "debug", Mode: config.AppModeDevelop}},
		{name: "production", conf: config.App{LogLevel: "info", Mode: config.AppModeProduction}},
		{name: "bad level", conf: config.App{LogLevel: "loud", Mode: config.AppModeProduction}, wantNil: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			log := NewLogger(&test.conf)
			if test.wantNil {
				assert.Nil(t, log)
				return
			}
			assert.NotNil(t, log)
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotapay.log")

	log := NewLogger(&config.App{LogLevel: "info", Mode: config.AppModeProduction, LogFile: path})
	require.NotNil(t, log)

	log.Info("order settled")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "order settled")
}
