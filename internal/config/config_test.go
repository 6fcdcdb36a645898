package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_ClampsWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetDir = "/tmp"

	cfg.Workers = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("workers clamped to %d, want 1", cfg.Workers)
	}

	cfg.Workers = 100
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Workers != MaxWorkers {
		t.Errorf("workers clamped to %d, want %d", cfg.Workers, MaxWorkers)
	}
}

func TestValidate_EffortBounds(t *testing.T) {
	for _, effort := range []int{0, 10, -1} {
		cfg := DefaultConfig()
		cfg.TargetDir = "/tmp"
		cfg.Effort = effort
		if err := cfg.Validate(); err == nil {
			t.Errorf("effort %d must be rejected", effort)
		}
	}
	for effort := MinEffort; effort <= MaxEffort; effort++ {
		cfg := DefaultConfig()
		cfg.TargetDir = "/tmp"
		cfg.Effort = effort
		if err := cfg.Validate(); err != nil {
			t.Errorf("effort %d: %v", effort, err)
		}
	}
}

func TestValidate_RequiresTarget(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("missing target must be rejected")
	}

	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("check-only mode needs no target: %v", err)
	}
}

func TestNormalizeDirArg(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/photos/", "/photos"},
		{"/photos///", "/photos"},
		{"/photos", "/photos"},
		{"/", "/"},
		{"//", "/"},
		{"///", "/"},
		{"relative/dir/", "relative/dir"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeDirArg(tc.in); got != tc.want {
			t.Errorf("NormalizeDirArg(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateTarget_MissingDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetDir = filepath.Join(t.TempDir(), "nope")
	if _, err := cfg.ValidateTarget(); err == nil {
		t.Error("missing directory must be rejected")
	}
}

func TestValidateTarget_FileNotDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.TargetDir = file
	if _, err := cfg.ValidateTarget(); err == nil {
		t.Error("regular file must be rejected as target")
	}
}

func TestValidateTarget_ResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cfg := DefaultConfig()
	cfg.TargetDir = link
	resolved, err := cfg.ValidateTarget()
	if err != nil {
		t.Fatalf("ValidateTarget: %v", err)
	}
	if filepath.Base(resolved) != "real" {
		t.Errorf("resolved = %s, want the symlink target", resolved)
	}
}

func TestValidateTarget_InPlaceRefusesProtectedDirs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InPlace = true
	cfg.TargetDir = "/usr"
	if _, err := cfg.ValidateTarget(); err == nil {
		t.Error("in-place on /usr must be refused")
	} else if !strings.Contains(err.Error(), "protected") {
		t.Errorf("unexpected error: %v", err)
	}

	// Without in-place the same directory is readable.
	cfg.InPlace = false
	if _, err := cfg.ValidateTarget(); err != nil {
		t.Errorf("read-only run on /usr: %v", err)
	}
}

func TestValidateTarget_InPlaceRefusesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}
	cfg := DefaultConfig()
	cfg.InPlace = true
	cfg.TargetDir = home
	if _, err := cfg.ValidateTarget(); err == nil {
		t.Error("in-place on the home directory must be refused")
	}
}
