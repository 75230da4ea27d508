package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestRequireEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		expected  int
		wantPanic bool
	}{
		{
			name:      "valid integer",
			key:       "TEST_INT",
			value:     "42",
			expected:  42,
			wantPanic: false,
		},
		{
			name:      "invalid integer",
			key:       "TEST_INT_INVALID",
			value:     "not_a_number",
			wantPanic: true,
		},
		{
			name:      "missing variable",
			key:       "TEST_INT_MISSING",
			value:     "",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnvInt() should have panicked")
					}
				}()
			}

			result := requireEnvInt(tt.key)
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("requireEnvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{
			name:     "single value",
			value:    "value1",
			expected: []string{"value1"},
		},
		{
			name:     "multiple values",
			value:    "value1, value2, value3",
			expected: []string{"value1", "value2", "value3"},
		},
		{
			name:     "quotes and blanks dropped",
			value:    `"https://a.test", , 'https://b.test'`,
			expected: []string{"https://a.test", "https://b.test"},
		},
		{
			name:     "empty",
			value:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() length = %v, want %v", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.StoreBackend != BackendSQLite {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendSQLite)
	}
	if cfg.StoreKey != "savedCards" {
		t.Errorf("StoreKey = %q, want savedCards", cfg.StoreKey)
	}
	if !cfg.ReaddOnDeselect {
		t.Error("ReaddOnDeselect should default to true")
	}
	if cfg.AffordanceDwell != 5*time.Second {
		t.Errorf("AffordanceDwell = %v, want 5s", cfg.AffordanceDwell)
	}
	if cfg.ResyncInterval != 30*time.Second {
		t.Errorf("ResyncInterval = %v, want 30s", cfg.ResyncInterval)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, redis settings should not load for sqlite", cfg.RedisAddr)
	}
}

func TestLoadBackends(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantPanic bool
		backend   string
	}{
		{
			name:    "memory",
			env:     map[string]string{"NOTARY_STORE_BACKEND": "memory"},
			backend: BackendMemory,
		},
		{
			name:    "backend is case insensitive",
			env:     map[string]string{"NOTARY_STORE_BACKEND": "SQLite"},
			backend: BackendSQLite,
		},
		{
			name: "redis with settings",
			env: map[string]string{
				"NOTARY_STORE_BACKEND":           "redis",
				"NOTARY_REDIS_ADDR":              "localhost:6379",
				"NOTARY_REDIS_DB":                "2",
				"NOTARY_REDIS_PASSWORD_REQUIRED": "false",
			},
			backend: BackendRedis,
		},
		{
			name:      "redis without addr",
			env:       map[string]string{"NOTARY_STORE_BACKEND": "redis"},
			wantPanic: true,
		},
		{
			name: "redis without required password",
			env: map[string]string{
				"NOTARY_STORE_BACKEND": "redis",
				"NOTARY_REDIS_ADDR":    "localhost:6379",
				"NOTARY_REDIS_DB":      "0",
			},
			wantPanic: true,
		},
		{
			name:      "unknown backend",
			env:       map[string]string{"NOTARY_STORE_BACKEND": "etcd"},
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("Load() should have panicked")
					}
				}()
			}

			cfg := Load()
			if !tt.wantPanic && cfg.StoreBackend != tt.backend {
				t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, tt.backend)
			}
		})
	}
}

func TestLoadRedisSettings(t *testing.T) {
	t.Setenv("NOTARY_STORE_BACKEND", "redis")
	t.Setenv("NOTARY_REDIS_ADDR", "redis:6379")
	t.Setenv("NOTARY_REDIS_DB", "3")
	t.Setenv("NOTARY_REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_POOL_SIZE", "4")

	cfg := Load()

	if cfg.RedisAddr != "redis:6379" || cfg.RedisDB != 3 || cfg.RedisPassword != "secret" {
		t.Errorf("redis settings = %s/%d/%s", cfg.RedisAddr, cfg.RedisDB, cfg.RedisPassword)
	}
	if cfg.RedisPoolSize != 4 {
		t.Errorf("RedisPoolSize = %d, want 4", cfg.RedisPoolSize)
	}
	if cfg.RedisConnectTimeout != 30*time.Second {
		t.Errorf("RedisConnectTimeout = %v, want 30s", cfg.RedisConnectTimeout)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
