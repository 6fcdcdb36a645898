package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// recordingRunner captures exiftool invocations.
type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.err
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMigrate_AllLayersSucceed(t *testing.T) {
	dir := t.TempDir()
	source := touch(t, dir, "in.jpg")
	dest := touch(t, dir, "out.jxl")

	r := &recordingRunner{}
	res := NewWithRunner(r).Migrate(source, dest)

	if !res.TagsCopied {
		t.Error("TagsCopied = false")
	}
	if !res.Timestamps {
		t.Error("Timestamps = false")
	}

	if len(r.calls) != 1 {
		t.Fatalf("exiftool invoked %d times, want 1", len(r.calls))
	}
	call := r.calls[0]
	if call[0] != CopierBin {
		t.Errorf("tool = %s, want %s", call[0], CopierBin)
	}
	want := []string{CopierBin, "-tagsfromfile", source, "-all:all", "-icc_profile", "-overwrite_original", dest}
	if len(call) != len(want) {
		t.Fatalf("args = %v, want %v", call, want)
	}
	for i := range want {
		if call[i] != want[i] {
			t.Errorf("arg %d = %s, want %s", i, call[i], want[i])
		}
	}
}

func TestMigrate_TagFailureDoesNotStopOtherLayers(t *testing.T) {
	dir := t.TempDir()
	source := touch(t, dir, "in.jpg")
	dest := touch(t, dir, "out.jxl")

	r := &recordingRunner{err: errors.New("exit status 1")}
	res := NewWithRunner(r).Migrate(source, dest)

	if res.TagsCopied {
		t.Error("TagsCopied must be false when exiftool fails")
	}
	if !res.Timestamps {
		t.Error("timestamp layer must still run")
	}
}

func TestCopyTimestamps(t *testing.T) {
	dir := t.TempDir()
	source := touch(t, dir, "in.jpg")
	dest := touch(t, dir, "out.jxl")

	atime := time.Date(2019, 6, 15, 8, 30, 0, 0, time.UTC)
	mtime := time.Date(2019, 6, 15, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(source, atime, mtime); err != nil {
		t.Fatal(err)
	}

	if err := CopyTimestamps(source, dest); err != nil {
		t.Fatalf("CopyTimestamps: %v", err)
	}
	gotAtime, gotMtime, err := fileTimes(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !gotMtime.Equal(mtime) {
		t.Errorf("dest mtime = %v, want %v", gotMtime, mtime)
	}
	if !gotAtime.Equal(atime) {
		t.Errorf("dest atime = %v, want %v", gotAtime, atime)
	}
}

func TestCopyTimestamps_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dest := touch(t, dir, "out.jxl")
	if err := CopyTimestamps(filepath.Join(dir, "gone.jpg"), dest); err == nil {
		t.Error("missing source must return an error")
	}
}
