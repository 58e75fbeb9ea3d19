package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/resumefx/config"
)

func init() {
	config.MustInit("")
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Every method is safe on nil
	if err := om.WritePerf(PerfStats{}, 1, "x"); err != nil {
		t.Error(err)
	}
	if err := om.WriteField(FieldStats{}); err != nil {
		t.Error(err)
	}
	if om.RunID() != uuid.Nil || om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should report empty state")
	}
}

func TestOutputManagerWrites(t *testing.T) {
	root := t.TempDir()
	om, err := NewOutputManager(root)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(om.Dir()) != root || filepath.Base(om.Dir()) != om.RunID().String() {
		t.Errorf("run dir %s not <root>/<run id>", om.Dir())
	}

	stats := PerfStats{AvgFrame: time.Millisecond, PhasePct: map[string]float64{PhaseTick: 50}}
	for frame := int64(60); frame <= 180; frame += 60 {
		if err := om.WritePerf(stats, frame, "particles"); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteField(FieldStats{Frame: 60, Particles: 80}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	perf, err := os.ReadFile(filepath.Join(om.Dir(), "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(perf)), "\n")
	if len(lines) != 4 {
		t.Fatalf("perf.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "frame,scene,") {
		t.Errorf("perf header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "180,particles,1000,") {
		t.Errorf("last perf row = %q", lines[3])
	}

	field, _ := os.ReadFile(filepath.Join(om.Dir(), "field.csv"))
	if got := strings.Count(string(field), "\n"); got != 2 {
		t.Errorf("field.csv has %d lines, want 2", got)
	}

	if _, err := config.Load(filepath.Join(om.Dir(), "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
