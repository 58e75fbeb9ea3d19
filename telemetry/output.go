package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/resumefx/config"
)

// OutputManager writes run telemetry as CSV files in a per-run directory.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir   string
	runID uuid.UUID

	perf  *csvFile
	field *csvFile
}

// csvFile appends gocsv records, writing the header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(path string) (*csvFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &csvFile{f: f}, nil
}

func (c *csvFile) append(records any) error {
	if c.headerWritten {
		return gocsv.MarshalWithoutHeaders(records, c.f)
	}
	if err := gocsv.Marshal(records, c.f); err != nil {
		return err
	}
	c.headerWritten = true
	return nil
}

// NewOutputManager creates <root>/<run id>/ with perf.csv and field.csv.
// It returns nil if root is empty (output disabled).
func NewOutputManager(root string) (*OutputManager, error) {
	if root == "" {
		return nil, nil
	}

	id := uuid.New()
	dir := filepath.Join(root, id.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, runID: id}
	var err error
	if om.perf, err = createCSV(filepath.Join(dir, "perf.csv")); err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	if om.field, err = createCSV(filepath.Join(dir, "field.csv")); err != nil {
		om.perf.f.Close()
		return nil, fmt.Errorf("creating field.csv: %w", err)
	}
	return om, nil
}

// RunID returns the run identifier, or the nil UUID when output is off.
func (om *OutputManager) RunID() uuid.UUID {
	if om == nil {
		return uuid.Nil
	}
	return om.runID
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends a row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64, scene string) error {
	if om == nil {
		return nil
	}
	if err := om.perf.append([]PerfStatsCSV{stats.ToCSV(frame, scene)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteField appends a row to field.csv.
func (om *OutputManager) WriteField(stats FieldStats) error {
	if om == nil {
		return nil
	}
	if err := om.field.append([]FieldStats{stats}); err != nil {
		return fmt.Errorf("writing field stats: %w", err)
	}
	return nil
}

// Dir returns the run directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, c := range []*csvFile{om.perf, om.field} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
