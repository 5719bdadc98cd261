package callgraph

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/astgraph/codescope/inspector/typescript"
)

// excludedDirs is the §6.2 directory exclusion list.
var excludedDirs = map[string]bool{
	"node_modules": true, ".git": true, ".svn": true, ".hg": true,
	"dist": true, "build": true, ".next": true, ".nuxt": true,
	"coverage": true, ".tox": true, "venv": true, ".venv": true,
	"__pycache__": true, ".cache": true,
}

// excludedFiles is the §6.2 file-name exclusion list.
var excludedFiles = map[string]bool{
	".DS_Store": true, "Thumbs.db": true, ".gitkeep": true,
}

// enumerateFiles walks projectRoot via afs, honouring §6.2's exclusion
// rules plus any caller-supplied extraDirs (the ambient Config's
// ExcludeDirs), and returns source file paths sorted deterministically
// for reproducible builds (§4.4 complexity note).
func enumerateFiles(ctx context.Context, fs afs.Service, projectRoot string, extraDirs ...string) ([]string, error) {
	extra := map[string]bool{}
	for _, d := range extraDirs {
		extra[d] = true
	}
	var files []string
	visitor := storage.OnVisit(func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		name := info.Name()
		if strings.HasPrefix(name, ".") && info.IsDir() {
			return false, nil
		}
		if info.IsDir() {
			if excludedDirs[name] || extra[name] {
				return false, nil
			}
			return true, nil
		}
		if strings.HasPrefix(name, ".") || excludedFiles[name] {
			return false, nil
		}
		if _, ok := typescript.DialectFor(name); !ok {
			return false, nil
		}
		files = append(files, url.Join(baseURL, parent, name))
		return true, nil
	})
	if err := fs.Walk(ctx, projectRoot, visitor); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// moduleName derives the qualified-name module prefix from a file path
// relative to projectRoot: extension stripped, separators normalised to
// "/", per §3's FunctionLocation definition.
func moduleName(projectRoot, filePath string) string {
	rel, err := filepath.Rel(projectRoot, filePath)
	if err != nil {
		rel = filePath
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}
