package domain

import (
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/pedant/internal/adapter"
	"github.com/mouse-blink/pedant/internal/controller"
	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// Workflow defines the interface for validation operations.
type Workflow interface {
	Scan(roots ...m.Path) ([]m.Path, error)
	Validate(paths []m.Path, workers int) (*m.RunReport, error)
	SaveReport(path m.Path, report *m.RunReport) error
	LoadReport(path m.Path) (*m.RunReport, error)
}

type workflow struct {
	fs    adapter.ScriptFS
	store adapter.ReportStore
	game  m.Game
	ui    controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(game m.Game, fs adapter.ScriptFS, store adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		fs:    fs,
		store: store,
		game:  game,
		ui:    ui,
	}
}

// Scan walks the mod directories and returns every script file found.
func (w *workflow) Scan(roots ...m.Path) ([]m.Path, error) {
	if len(roots) == 0 {
		return []m.Path{}, nil
	}

	return w.fs.Scripts(roots)
}

// Validate runs the full two-pass check over the given script files. The
// first pass parses everything and fills the item database, so validation
// can resolve references regardless of file order. The second pass walks
// triggers, effects, events and values concurrently.
func (w *workflow) Validate(paths []m.Path, workers int) (*m.RunReport, error) {
	if workers <= 0 {
		workers = 1
	}

	tables := scopes.TablesFor(w.game)
	collector := adapter.NewCollector()
	parser := adapter.NewScriptParser(collector)
	db := adapter.NewDatabase()

	parsed := make(map[m.Path]*m.Block, len(paths))

	for _, path := range paths {
		src, err := w.fs.ReadFile(path)
		if err != nil {
			return nil, err
		}

		block := parser.Parse(path, src)
		parsed[path] = block
		db.AddFile(path, block)
	}

	if w.ui != nil {
		w.ui.DisplayScanInfo(len(paths), workers)
	}

	validator := NewValidator(tables, db, collector)

	var group errgroup.Group

	group.SetLimit(workers)

	for _, path := range paths {
		group.Go(func() error {
			validator.ValidateFile(path, parsed[path])
			return nil
		})
	}

	// Validators only report diagnostics, they do not fail.
	_ = group.Wait()

	return &m.RunReport{
		Game:        string(w.game),
		Files:       len(paths),
		Diagnostics: collector.Diagnostics(),
	}, nil
}

// SaveReport persists a run's outcome for later viewing.
func (w *workflow) SaveReport(path m.Path, report *m.RunReport) error {
	return w.store.Save(path, report)
}

// LoadReport reads back a persisted run report.
func (w *workflow) LoadReport(path m.Path) (*m.RunReport, error) {
	return w.store.Load(path)
}
