// Package repository detects a project root for a given file or directory,
// adapted from the teacher's inspector/repository/detector.go marker-walk
// idiom and extended with JS/TS project markers alongside go.mod.
package repository

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Project describes a detected project root.
type Project struct {
	RootPath string
	Type     string
	Name     string
	GoModule *modfile.Module
}

// Detector walks up a directory tree looking for one of a configured set of
// marker file names.
type Detector struct {
	markers []string
}

// New returns a Detector configured with the markers recognised across the
// retrieval pack's language ecosystems: Go, JS/TS, and generic VCS root.
func New() *Detector {
	return &Detector{markers: []string{
		"package.json", "tsconfig.json", "go.mod", ".git",
	}}
}

// DetectProject walks up from filePath looking for a marker, returning the
// first directory found carrying one.
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	start := filePath
	if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
		start = filepath.Dir(filePath)
	}
	dir := start
	for {
		for _, marker := range d.markers {
			candidate := filepath.Join(dir, marker)
			if _, err := os.Stat(candidate); err == nil {
				return d.describe(dir, marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return &Project{RootPath: start, Type: "unknown"}, nil
}

func (d *Detector) describe(dir, marker string) (*Project, error) {
	switch marker {
	case "go.mod":
		data, err := os.ReadFile(filepath.Join(dir, marker))
		if err != nil {
			return &Project{RootPath: dir, Type: "go"}, nil
		}
		mf, err := modfile.Parse(marker, data, nil)
		if err != nil {
			return &Project{RootPath: dir, Type: "go"}, nil
		}
		name := dir
		if mf.Module != nil {
			name = mf.Module.Mod.Path
		}
		return &Project{RootPath: dir, Type: "go", Name: name, GoModule: mf.Module}, nil
	case "package.json", "tsconfig.json":
		return &Project{RootPath: dir, Type: "node", Name: filepath.Base(dir)}, nil
	default:
		return &Project{RootPath: dir, Type: "unknown", Name: filepath.Base(dir)}, nil
	}
}
