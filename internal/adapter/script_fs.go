package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/mouse-blink/pedant/internal/model"
)

// ScriptFS abstracts the filesystem operations the workflow needs when
// scanning a mod tree, so the domain layer can be tested without touching
// the disk.
type ScriptFS interface {
	// Scripts returns every script file under the given roots. A root that is
	// itself a script file is returned as-is.
	Scripts(roots []m.Path) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)
}

type localScriptFS struct{}

// NewScriptFS constructs a ScriptFS backed by the local filesystem.
func NewScriptFS() ScriptFS {
	return &localScriptFS{}
}

func (l *localScriptFS) Scripts(roots []m.Path) ([]m.Path, error) {
	var scripts []m.Path

	for _, root := range roots {
		info, err := os.Stat(string(root))
		if err != nil {
			return nil, fmt.Errorf("scan scripts: %w", err)
		}

		if !info.IsDir() {
			if isScript(string(root)) {
				scripts = append(scripts, root)
			}

			continue
		}

		err = filepath.WalkDir(string(root), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				// Mod directories sometimes carry editor backup dirs.
				if strings.HasPrefix(d.Name(), ".") && path != string(root) {
					return filepath.SkipDir
				}

				return nil
			}

			if isScript(path) {
				scripts = append(scripts, m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan scripts: %w", err)
		}
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i] < scripts[j] })

	return scripts, nil
}

func (l *localScriptFS) ReadFile(path m.Path) ([]byte, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return content, nil
}

func isScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}
