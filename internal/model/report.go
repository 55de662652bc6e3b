package model

// FileStats summarizes the diagnostics found in one script file.
type FileStats struct {
	Path     Path `json:"path"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Infos    int  `json:"infos"`
}

// RunReport is the persisted outcome of one validation run.
type RunReport struct {
	Game        string       `json:"game"`
	Files       int          `json:"files"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Stats aggregates the report's diagnostics per file, in no particular order.
func (r *RunReport) Stats() []FileStats {
	byPath := make(map[Path]*FileStats)

	for _, d := range r.Diagnostics {
		fs, ok := byPath[d.Loc.Path]
		if !ok {
			fs = &FileStats{Path: d.Loc.Path}
			byPath[d.Loc.Path] = fs
		}

		switch d.Severity {
		case SeverityError:
			fs.Errors++
		case SeverityWarning:
			fs.Warnings++
		case SeverityInfo:
			fs.Infos++
		}
	}

	stats := make([]FileStats, 0, len(byPath))
	for _, fs := range byPath {
		stats = append(stats, *fs)
	}

	return stats
}

// Counts returns the total number of errors and warnings in the report.
func (r *RunReport) Counts() (errors, warnings int) {
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	return errors, warnings
}
