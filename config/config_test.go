package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Field.Count != 80 {
		t.Errorf("Field.Count = %d, want 80", cfg.Field.Count)
	}
	if !cfg.Field.Interactive {
		t.Error("Field.Interactive = false, want true")
	}
	if cfg.Field.ConnectionDistance != 120 {
		t.Errorf("Field.ConnectionDistance = %v, want 120", cfg.Field.ConnectionDistance)
	}
	if cfg.Bookmarks.Key != "bookmarkedJobs" {
		t.Errorf("Bookmarks.Key = %q, want bookmarkedJobs", cfg.Bookmarks.Key)
	}
	if cfg.Meshes.FovY != 60 || cfg.Meshes.OrbitSpeed != 0.15 {
		t.Errorf("Meshes = %+v, want fov 60 and orbit 0.15", cfg.Meshes)
	}
	if cfg.Derived.ParticleCount != 80 {
		t.Errorf("Derived.ParticleCount = %d, want 80", cfg.Derived.ParticleCount)
	}
	if cfg.Derived.ScreenW32 != 1280 {
		t.Errorf("Derived.ScreenW32 = %v, want 1280", cfg.Derived.ScreenW32)
	}
	if want := time.Second / 60; cfg.Derived.FrameStep != want {
		t.Errorf("Derived.FrameStep = %v, want %v", cfg.Derived.FrameStep, want)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("field:\n  count: 5000\n  interactive: false\naudio:\n  volume: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Field.Interactive {
		t.Error("overlay should disable interactivity")
	}
	if cfg.Audio.Volume != 0.5 {
		t.Errorf("Audio.Volume = %v, want 0.5", cfg.Audio.Volume)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Field.ConnectionDistance != 120 {
		t.Errorf("ConnectionDistance = %v, want default 120", cfg.Field.ConnectionDistance)
	}
	if cfg.Derived.ParticleCount != MaxParticles {
		t.Errorf("ParticleCount = %d, want clamp to %d", cfg.Derived.ParticleCount, MaxParticles)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero connection distance", "field:\n  connection_distance: 0\n"},
		{"damping above one", "field:\n  boundary_damping: 1.5\n"},
		{"volume above one", "audio:\n  volume: 2\n"},
		{"empty bookmark key", "bookmarks:\n  key: \"\"\n"},
		{"field of view too wide", "meshes:\n  fov_y: 180\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Count = 42

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if reloaded.Field.Count != 42 {
		t.Errorf("Field.Count = %d, want 42", reloaded.Field.Count)
	}
}
