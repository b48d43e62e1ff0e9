package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Fakturo: FakturoConfig{
			URL:     "https://app.fakturo.io",
			APIKey:  "valid-api-key",
			Timeout: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "missing URL",
			mutate:  func(cfg *Config) { cfg.Fakturo.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing API key",
			mutate:  func(cfg *Config) { cfg.Fakturo.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "placeholder API key",
			mutate:  func(cfg *Config) { cfg.Fakturo.APIKey = "your-api-key-here" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *Config) { cfg.Fakturo.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "debug level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "debug" },
			wantErr: false,
		},
		{
			name:    "json format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "json" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
