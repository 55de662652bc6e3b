package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/pedant/internal/model"
)

func TestReportStoreRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := m.Path(filepath.Join(dir, "reports", "run.yaml"))
	rs := NewReportStore()

	report := &m.RunReport{
		Game:  "ck3",
		Files: 2,
		Diagnostics: []m.Diagnostic{
			{
				Severity: m.SeverityError,
				Key:      m.KeyUnknownToken,
				Loc:      m.Loc{Path: "events/my_events.txt", Line: 12, Column: 9},
				Message:  "unknown token `nonexistent_token`",
			},
			{
				Severity: m.SeverityWarning,
				Key:      m.KeyKindMismatch,
				Loc:      m.Loc{Path: "events/my_events.txt", Line: 20, Column: 3},
				Message:  "`liege` is for character but scope seems to be province",
				Related:  []m.Related{{Loc: m.Loc{Path: "events/my_events.txt", Line: 18, Column: 3}, Note: "scope was deduced from `capital_county` here"}},
			},
		},
	}

	require.NoError(t, rs.Save(path, report))

	loaded, err := rs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, report, loaded)

	errs, warns := loaded.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warns)
}

func TestReportStoreLoadMissing(t *testing.T) {
	t.Parallel()

	rs := NewReportStore()

	_, err := rs.Load(m.Path(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.ErrorContains(t, err, "read report")
}

func TestReportStoreLoadMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\t: not yaml"), 0o644))

	_, err := NewReportStore().Load(m.Path(path))
	assert.ErrorContains(t, err, "decode report")
}
