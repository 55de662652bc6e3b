package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/pedant/internal/adapter"
	m "github.com/mouse-blink/pedant/internal/model"
)

func writeModFile(t *testing.T, root, rel, src string) {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
}

func TestWorkflowEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	writeModFile(t, root, "common/traits/00_traits.txt", `
		brave = { icon = brave }
	`)
	writeModFile(t, root, "common/scripted_effects/00_effects.txt", `
		reward_effect = {
			add_gold = 50
		}
	`)
	writeModFile(t, root, "events/test_events.txt", `
		namespace = test

		test.1 = {
			type = character_event
			trigger = {
				has_trait = brave
			}
			immediate = {
				reward_effect = yes
			}
			option = {
				name = test.1.a
				has_trait = missing_trait
			}
		}
	`)

	w := NewWorkflow(m.GameCK3, adapter.NewScriptFS(), adapter.NewReportStore(), nil)

	files, err := w.Scan(m.Path(root))
	require.NoError(t, err)
	require.Len(t, files, 3)

	report, err := w.Validate(files, 2)
	require.NoError(t, err)
	assert.Equal(t, "ck3", report.Game)
	assert.Equal(t, 3, report.Files)

	// The option uses has_trait as an effect, and its argument does not
	// exist either way.
	require.NotEmpty(t, report.Diagnostics)

	found := false

	for _, d := range report.Diagnostics {
		if d.Message == "unknown effect `has_trait`" {
			found = true
		}
	}

	assert.True(t, found, "diagnostics: %v", report.Diagnostics)
}

func TestWorkflowCleanModHasNoDiagnostics(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	writeModFile(t, root, "common/scripted_triggers/00_triggers.txt", `
		eligible_trigger = {
			is_adult = yes
			is_imprisoned = no
		}
	`)
	writeModFile(t, root, "events/good_events.txt", `
		namespace = good

		good.1 = {
			type = character_event
			trigger = {
				eligible_trigger = yes
			}
			option = {
				name = good.1.a
				add_gold = 10
			}
		}
	`)

	w := NewWorkflow(m.GameCK3, adapter.NewScriptFS(), adapter.NewReportStore(), nil)

	files, err := w.Scan(m.Path(root))
	require.NoError(t, err)

	report, err := w.Validate(files, 1)
	require.NoError(t, err)
	assert.Empty(t, report.Diagnostics, "diagnostics: %v", report.Diagnostics)
}

func TestWorkflowReportRoundTrip(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	writeModFile(t, root, "events/bad_events.txt", `
		namespace = bad
		bad.1 = {
			trigger = { is_adultt = yes }
		}
	`)

	w := NewWorkflow(m.GameCK3, adapter.NewScriptFS(), adapter.NewReportStore(), nil)

	files, err := w.Scan(m.Path(root))
	require.NoError(t, err)

	report, err := w.Validate(files, 1)
	require.NoError(t, err)
	require.NotEmpty(t, report.Diagnostics)

	reportPath := m.Path(filepath.Join(root, "reports", "run.yaml"))
	require.NoError(t, w.SaveReport(reportPath, report))

	loaded, err := w.LoadReport(reportPath)
	require.NoError(t, err)
	assert.Equal(t, report.Game, loaded.Game)
	assert.Equal(t, len(report.Diagnostics), len(loaded.Diagnostics))
}

func TestWorkflowScanWithoutRoots(t *testing.T) {
	t.Parallel()

	w := NewWorkflow(m.GameCK3, adapter.NewScriptFS(), adapter.NewReportStore(), nil)

	files, err := w.Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}
