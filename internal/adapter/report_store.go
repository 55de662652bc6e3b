package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/pedant/internal/model"
)

// ReportStore persists and retrieves validation run reports.
type ReportStore interface {
	Save(path m.Path, report *m.RunReport) error
	Load(path m.Path) (*m.RunReport, error)
}

type reportStore struct{}

// NewReportStore constructs a ReportStore backed by YAML files on disk.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) Save(path m.Path, report *m.RunReport) error {
	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func (rs *reportStore) Load(path m.Path) (*m.RunReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	return &report, nil
}
