package envutil

import "testing"

func TestGetEnv(t *testing.T) {
	if got := GetEnv("ENVUTIL_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("missing var: got %q", got)
	}
	t.Setenv("ENVUTIL_TEST_SET", "value")
	if got := GetEnv("ENVUTIL_TEST_SET", "fallback", nil); got != "value" {
		t.Fatalf("set var: got %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	if got := GetEnvAsInt("ENVUTIL_TEST_MISSING", 8080, nil); got != 8080 {
		t.Fatalf("missing var: got %d", got)
	}
	t.Setenv("ENVUTIL_TEST_PORT", "9090")
	if got := GetEnvAsInt("ENVUTIL_TEST_PORT", 8080, nil); got != 9090 {
		t.Fatalf("set var: got %d", got)
	}
	t.Setenv("ENVUTIL_TEST_PORT", "not-a-number")
	if got := GetEnvAsInt("ENVUTIL_TEST_PORT", 8080, nil); got != 8080 {
		t.Fatalf("unparsable var: got %d", got)
	}
}
