package chromevideo

import (
	"os"
	"testing"
)

func TestResolveChromePath_ExplicitPath(t *testing.T) {
	result := ResolveChromePath("/custom/path/to/chrome")
	if result != "/custom/path/to/chrome" {
		t.Errorf("expected explicit path to be returned, got %s", result)
	}
}

func TestResolveChromePath_EnvVar(t *testing.T) {
	originalEnv := os.Getenv("CHROME_PATH")
	defer os.Setenv("CHROME_PATH", originalEnv)

	os.Setenv("CHROME_PATH", "/env/chrome")

	result := ResolveChromePath("")
	if result != "/env/chrome" {
		t.Errorf("expected CHROME_PATH to be used, got %s", result)
	}

	// Explicit path takes precedence over env
	result = ResolveChromePath("/explicit/chrome")
	if result != "/explicit/chrome" {
		t.Errorf("expected explicit path to take precedence, got %s", result)
	}
}

func TestResolveExecutable(t *testing.T) {
	result := resolveExecutable("definitely-not-a-real-command-xyz123")
	if result != "" {
		t.Errorf("expected empty for missing command, got %s", result)
	}

	result = resolveExecutable("/bin/sh")
	if result != "/bin/sh" {
		t.Errorf("expected /bin/sh, got %s", result)
	}
}
