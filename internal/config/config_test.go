package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcheck/internal/dictionary"
	"github.com/at-ishikawa/wordcheck/internal/dictionary/wiktionary"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3001,
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
			ShutdownTimeoutMs: 5000,
		},
		Wiktionary: WiktionaryConfig{
			BaseURL:   wiktionary.DefaultBaseURL,
			UserAgent: wiktionary.DefaultUserAgent,
			TimeoutMs: 30000,
		},
		Pipeline: PipelineConfig{
			RequestIntervalMs: 1000,
			MaxRetries:        3,
			RetryDelayMs:      2000,
			CacheLifetimeMs:   86400000,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:            "no config file uses defaults",
			useExplicitPath: false,
			want:            defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 8080
  cors:
    allowed_origins:
      - http://localhost:3000
pipeline:
  request_interval_ms: 500
  max_retries: 5
  retry_delay_ms: 100
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 8080
				cfg.Server.CORS.AllowedOrigins = []string{"http://localhost:3000"}
				cfg.Pipeline.RequestIntervalMs = 500
				cfg.Pipeline.MaxRetries = 5
				cfg.Pipeline.RetryDelayMs = 100
				return cfg
			},
		},
		{
			name: "config file found in working directory",
			configContent: `wiktionary:
  base_url: http://localhost:9999
  user_agent: wordcheck-test
`,
			useExplicitPath: false,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Wiktionary.BaseURL = "http://localhost:9999"
				cfg.Wiktionary.UserAgent = "wordcheck-test"
				return cfg
			},
		},
		{
			name:            "environment variables override defaults",
			useExplicitPath: false,
			env: map[string]string{
				"PORT":                "4000",
				"WIKTIONARY_BASE_URL": "http://wiktionary.test",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 4000
				cfg.Wiktionary.BaseURL = "http://wiktionary.test"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 8080
  invalid yaml format here [[[
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "out of range values",
			configContent: `server:
  port: 70000
pipeline:
  max_retries: -1
  cache_lifetime_ms: 0
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"port must be",
				"max_retries must be",
				"cache_lifetime_ms must be",
			},
		},
		{
			name: "invalid origin",
			configContent: `server:
  cors:
    allowed_origins:
      - http://localhost:3000/path
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				`allowed_origins[0] must be "*" or a scheme://host[:port] origin`,
			},
		},
		{
			name: "invalid base url",
			configContent: `wiktionary:
  base_url: not a url
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"base_url must be a valid URL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "wordcheck.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfig_Conversions(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout())
	assert.Equal(t, wiktionary.Config{
		BaseURL:   wiktionary.DefaultBaseURL,
		UserAgent: wiktionary.DefaultUserAgent,
		Timeout:   30 * time.Second,
	}, cfg.Wiktionary.ClientConfig())
	assert.Equal(t, dictionary.PipelineConfig{
		RequestInterval: time.Second,
		MaxRetries:      3,
		RetryDelay:      2 * time.Second,
		CacheLifetime:   24 * time.Hour,
	}, cfg.Pipeline.ServiceConfig())
}
