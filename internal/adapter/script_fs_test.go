package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/pedant/internal/model"
)

func writeScript(t *testing.T, dir string, rel string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("key = value\n"), 0o644))

	return path
}

func TestScriptFSFindsScriptsRecursively(t *testing.T) {
	dir := t.TempDir()
	a := writeScript(t, dir, "events/a_events.txt")
	b := writeScript(t, dir, "common/traits/00_traits.txt")
	writeScript(t, dir, "README.md")
	writeScript(t, dir, "gfx/portrait.dds")

	scripts, err := NewScriptFS().Scripts([]m.Path{m.Path(dir)})
	require.NoError(t, err)

	assert.Equal(t, []m.Path{m.Path(b), m.Path(a)}, scripts)
}

func TestScriptFSAcceptsFileRoot(t *testing.T) {
	dir := t.TempDir()
	a := writeScript(t, dir, "a.txt")

	scripts, err := NewScriptFS().Scripts([]m.Path{m.Path(a)})
	require.NoError(t, err)
	assert.Equal(t, []m.Path{m.Path(a)}, scripts)
}

func TestScriptFSSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, ".git/objects/fake.txt")
	a := writeScript(t, dir, "events/a.txt")

	scripts, err := NewScriptFS().Scripts([]m.Path{m.Path(dir)})
	require.NoError(t, err)
	assert.Equal(t, []m.Path{m.Path(a)}, scripts)
}

func TestScriptFSMissingRoot(t *testing.T) {
	_, err := NewScriptFS().Scripts([]m.Path{m.Path(filepath.Join(t.TempDir(), "nope"))})
	assert.ErrorContains(t, err, "scan scripts")
}

func TestScriptFSReadFile(t *testing.T) {
	dir := t.TempDir()
	a := writeScript(t, dir, "a.txt")

	content, err := NewScriptFS().ReadFile(m.Path(a))
	require.NoError(t, err)
	assert.Equal(t, "key = value\n", string(content))

	_, err = NewScriptFS().ReadFile(m.Path(filepath.Join(dir, "nope.txt")))
	assert.ErrorContains(t, err, "read script")
}
