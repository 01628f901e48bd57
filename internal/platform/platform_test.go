package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOS(t *testing.T) {
	got := OS()
	if got == "" {
		t.Fatal("OS() returned empty string")
	}
	if got != runtime.GOOS {
		t.Errorf("OS() = %q, want %q", got, runtime.GOOS)
	}
}

func TestShell(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"termux bash", "/data/data/com.termux/files/usr/bin/bash", "/data/data/com.termux/files/usr/bin/bash"},
		{"zsh", "/bin/zsh", "/bin/zsh"},
		{"empty falls back", "", "/bin/sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.env)
			got := Shell()
			if got != tt.want {
				t.Errorf("Shell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true, want false")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "plain.txt"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()

	if IsTerminal(f) {
		t.Error("IsTerminal(regular file) = true, want false")
	}
}
