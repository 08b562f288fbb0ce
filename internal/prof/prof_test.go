package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU: filepath.Join(dir, "cpu.pprof"),
		Mem: filepath.Join(dir, "mem.pprof"),
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{cfg.CPU, cfg.Mem} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s: %v", p, err)
		}
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	if err == nil {
		t.Fatal("expected an error")
	}
	// The failed start must not leave a profile running.
	s, err := Start(Config{CPU: filepath.Join(t.TempDir(), "cpu.pprof")})
	if err != nil {
		t.Fatalf("Start after failure: %v", err)
	}
	_ = s.Stop()
}
