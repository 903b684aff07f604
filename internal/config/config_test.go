package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LINKSHELF_BACKEND", "")
	t.Setenv("LINKSHELF_LOG_LEVEL", "error")

	cfg := Load()

	if cfg.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendFile)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.ProbeTimeout != 5*time.Second {
		t.Errorf("ProbeTimeout = %v, want 5s", cfg.ProbeTimeout)
	}
	if cfg.SnapshotInterval != time.Hour {
		t.Errorf("SnapshotInterval = %v, want 1h", cfg.SnapshotInterval)
	}
	if len(cfg.AllowedHosts) != 0 {
		t.Errorf("AllowedHosts = %v, want empty", cfg.AllowedHosts)
	}
}

func TestLoadPanicsOnInvalidBackend(t *testing.T) {
	t.Setenv("LINKSHELF_BACKEND", "s3")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked for unknown backend")
		}
	}()

	Load()
}

func TestLoadOptionsApplyBeforeValidate(t *testing.T) {
	t.Setenv("LINKSHELF_BACKEND", "s3")

	cfg := Load(func(c *Config) { c.Backend = BackendMemory })

	if cfg.Backend != BackendMemory {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendMemory)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Backend:        BackendMemory,
			ProbeTimeout:   5 * time.Second,
			RequestTimeout: 15 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "memory backend",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "redis without address",
			mutate:  func(c *Config) { c.Backend = BackendRedis },
			wantErr: true,
		},
		{
			name: "redis password required but missing",
			mutate: func(c *Config) {
				c.Backend = BackendRedis
				c.RedisAddr = "localhost:6379"
				c.RedisPasswordRequired = true
			},
			wantErr: true,
		},
		{
			name: "redis ok",
			mutate: func(c *Config) {
				c.Backend = BackendRedis
				c.RedisAddr = "localhost:6379"
			},
			wantErr: false,
		},
		{
			name:    "file backend without dir",
			mutate:  func(c *Config) { c.Backend = BackendFile },
			wantErr: true,
		},
		{
			name:    "bolt backend without path",
			mutate:  func(c *Config) { c.Backend = BackendBolt },
			wantErr: true,
		},
		{
			name:    "sqlite backend without path",
			mutate:  func(c *Config) { c.Backend = BackendSQLite },
			wantErr: true,
		},
		{
			name:    "request timeout shorter than probe",
			mutate:  func(c *Config) { c.RequestTimeout = 2 * time.Second },
			wantErr: true,
		},
		{
			name:    "negative snapshot interval",
			mutate:  func(c *Config) { c.SnapshotInterval = -time.Minute },
			wantErr: true,
		},
		{
			name:    "zero probe timeout",
			mutate:  func(c *Config) { c.ProbeTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
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
			t.Setenv(tt.key, tt.value)

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
		value    string
		def      bool
		expected bool
	}{
		{"true value", "true", false, true},
		{"false value", "false", true, false},
		{"invalid value uses default", "invalid", true, true},
		{"missing variable uses default", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)

			result := mustBool("TEST_BOOL", tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := getenvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getenvInt() = %d, want 42", got)
	}

	t.Setenv("TEST_INT", "forty-two")
	if got := getenvInt("TEST_INT", 7); got != 7 {
		t.Errorf("getenvInt() with invalid value = %d, want default 7", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{"empty", "", nil},
		{"single value", "value1", []string{"value1"}},
		{"multiple values", "value1, value2 ,value3", []string{"value1", "value2", "value3"}},
		{"quoted values", `"a.example", 'b.example'`, []string{"a.example", "b.example"}},
		{"drops blanks", "a,, ,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.in)
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
