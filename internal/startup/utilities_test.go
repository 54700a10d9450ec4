package startup

import (
	"testing"
	"time"
)

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue bool
		want         bool
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_BOOL_UNSET",
			defaultValue: true,
			want:         true,
			setEnv:       false,
		},
		{
			name:         "Returns default false when env var not set",
			key:          "TEST_BOOL_UNSET2",
			defaultValue: false,
			want:         false,
			setEnv:       false,
		},
		{
			name:         "Returns true when env var is 'true'",
			key:          "TEST_BOOL_TRUE",
			envValue:     "true",
			defaultValue: false,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns false when env var is 'false'",
			key:          "TEST_BOOL_FALSE",
			envValue:     "false",
			defaultValue: true,
			want:         false,
			setEnv:       true,
		},
		{
			name:         "Returns true when env var is '1'",
			key:          "TEST_BOOL_ONE",
			envValue:     "1",
			defaultValue: false,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns false when env var is '0'",
			key:          "TEST_BOOL_ZERO",
			envValue:     "0",
			defaultValue: true,
			want:         false,
			setEnv:       true,
		},
		{
			name:         "Returns true when env var is 'T'",
			key:          "TEST_BOOL_T_UPPER",
			envValue:     "T",
			defaultValue: false,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is invalid",
			key:          "TEST_BOOL_INVALID",
			envValue:     "not-a-bool",
			defaultValue: true,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is empty string",
			key:          "TEST_BOOL_EMPTY",
			envValue:     "",
			defaultValue: false,
			want:         false,
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is 'yes'",
			key:          "TEST_BOOL_YES",
			envValue:     "yes",
			defaultValue: false,
			want:         false,
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v (env: %q)", tt.key, tt.defaultValue, got, tt.want, tt.envValue)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue int
		want         int
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_INT_UNSET",
			defaultValue: 30,
			want:         30,
			setEnv:       false,
		},
		{
			name:         "Returns parsed value",
			key:          "TEST_INT_SET",
			envValue:     "100",
			defaultValue: 30,
			want:         100,
			setEnv:       true,
		},
		{
			name:         "Returns default for non-numeric value",
			key:          "TEST_INT_INVALID",
			envValue:     "lots",
			defaultValue: 30,
			want:         30,
			setEnv:       true,
		},
		{
			name:         "Returns default for zero",
			key:          "TEST_INT_ZERO",
			envValue:     "0",
			defaultValue: 30,
			want:         30,
			setEnv:       true,
		},
		{
			name:         "Returns default for negative value",
			key:          "TEST_INT_NEG",
			envValue:     "-5",
			defaultValue: 30,
			want:         30,
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt(%q, %d) = %d, want %d", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue time.Duration
		want         time.Duration
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_DUR_UNSET",
			defaultValue: time.Minute,
			want:         time.Minute,
			setEnv:       false,
		},
		{
			name:         "Returns parsed duration",
			key:          "TEST_DUR_SET",
			envValue:     "90s",
			defaultValue: time.Minute,
			want:         90 * time.Second,
			setEnv:       true,
		},
		{
			name:         "Returns parsed compound duration",
			key:          "TEST_DUR_COMPOUND",
			envValue:     "1h30m",
			defaultValue: time.Minute,
			want:         90 * time.Minute,
			setEnv:       true,
		},
		{
			name:         "Returns default for invalid duration",
			key:          "TEST_DUR_INVALID",
			envValue:     "soon",
			defaultValue: time.Minute,
			want:         time.Minute,
			setEnv:       true,
		},
		{
			name:         "Returns default for negative duration",
			key:          "TEST_DUR_NEG",
			envValue:     "-5m",
			defaultValue: time.Minute,
			want:         time.Minute,
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvDuration(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvDuration(%q, %v) = %v, want %v", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Empty secret",
			input: "",
			want:  "(not set)",
		},
		{
			name:  "Short secret fully masked",
			input: "abcd",
			want:  "****",
		},
		{
			name:  "Long secret keeps edges",
			input: "abcdef12",
			want:  "ab****12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskSecret(tt.input); got != tt.want {
				t.Errorf("maskSecret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadProviderLimits(t *testing.T) {
	t.Setenv("TESTPROV_MAX_REQUESTS", "50")
	t.Setenv("TESTPROV_WINDOW", "2m")
	t.Setenv("TESTPROV_MIN_DELAY", "250ms")

	limits := loadProviderLimits("TESTPROV", 10, time.Minute, time.Second)

	if limits.MaxRequests != 50 {
		t.Errorf("MaxRequests = %d, want 50", limits.MaxRequests)
	}
	if limits.Window != 2*time.Minute {
		t.Errorf("Window = %v, want 2m", limits.Window)
	}
	if limits.MinDelay != 250*time.Millisecond {
		t.Errorf("MinDelay = %v, want 250ms", limits.MinDelay)
	}
}

func TestLoadProviderLimitsDefaults(t *testing.T) {
	limits := loadProviderLimits("UNSETPROV", 10, time.Minute, time.Second)

	if limits.MaxRequests != 10 || limits.Window != time.Minute || limits.MinDelay != time.Second {
		t.Errorf("unexpected defaults: %+v", limits)
	}
}

func BenchmarkGetEnv(b *testing.B) {
	b.Setenv("BENCH_TEST_VAR", "test-value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = getEnv("BENCH_TEST_VAR", "default")
	}
}

func BenchmarkGetEnvBool(b *testing.B) {
	b.Setenv("BENCH_TEST_BOOL", "true")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = getEnvBool("BENCH_TEST_BOOL", false)
	}
}
