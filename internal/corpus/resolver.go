// Package corpus locates and reads project corpus files on durable
// storage. Resolution walks a fixed, ordered candidate list; the order
// is a deliberate tie-break (filename hint first, canonical extension
// order otherwise) and must stay stable for reproducible behavior.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ierrors "github.com/deepview/deepview-mcp/internal/errors"
)

const domainCorpus = "corpus"

// DefaultProject names the corpus held in the process-wide default slot.
const DefaultProject = "default"

// defaultFilenames is the canonical filename order tried after any hint.
var defaultFilenames = []string{"codebase.xml", "codebase.txt", "codebase.md", "codebase.json"}

// recognizedExtensions filters listing and default-directory loads.
var recognizedExtensions = map[string]bool{
	".xml":  true,
	".txt":  true,
	".md":   true,
	".json": true,
}

// Resource is a resolved corpus: project name, the file it came from,
// and its raw text. Resolved fresh per request and never cached.
type Resource struct {
	Project string
	Path    string
	Text    string
}

// Resolver finds corpus files under a deployment root plus the local
// fallback roots. Read-only; safe for concurrent use.
type Resolver struct {
	// root is the corpus deployment root, e.g. /app/codebase.
	root string
	// deployPrefix is the deployment prefix above root, e.g. /app.
	deployPrefix string
}

// NewResolver creates a resolver rooted at the corpus deployment root.
func NewResolver(root string) *Resolver {
	return &Resolver{
		root:         root,
		deployPrefix: filepath.Dir(root),
	}
}

// Root returns the corpus deployment root.
func (r *Resolver) Root() string {
	return r.root
}

// ResolveProject locates a project's corpus file. Candidate directories
// (deployment root, local relative root, bare relative root) are crossed
// with candidate filenames (hint first when supplied, then the fixed
// defaults); the first existing file wins.
func (r *Resolver) ResolveProject(project, hint string) (*Resource, error) {
	dirs := []string{
		filepath.Join(r.root, project),
		filepath.Join(".", "codebase", project),
		filepath.Join("codebase", project),
	}

	filenames := defaultFilenames
	if hint != "" {
		filenames = append([]string{hint}, defaultFilenames...)
	}

	for _, dir := range dirs {
		for _, name := range filenames {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return r.read(project, candidate)
			}
		}
	}

	return nil, ierrors.New(domainCorpus, "ResolveProject", ierrors.ErrNotFound,
		fmt.Errorf("no codebase file found in project: %s", project)).
		WithContext("project", project).
		WithContext("hint", hint)
}

// ResolveFile locates a corpus by bare file path, trying the literal
// path plus three deployment-relative variants, for backward-compatible
// single-file deployments. The project name is derived from the
// resolved file's containing directory.
func (r *Resolver) ResolveFile(path string) (*Resource, error) {
	candidates := []string{
		path,
		filepath.Join(r.deployPrefix, path),
		filepath.Join(".", "codebase", path),
		filepath.Join(r.deployPrefix, "codebase", path),
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return r.read(projectFromPath(candidate), candidate)
		}
	}

	return nil, ierrors.New(domainCorpus, "ResolveFile", ierrors.ErrNotFound,
		fmt.Errorf("codebase file not found at any of these paths: %v", candidates)).
		WithContext("path", path)
}

// List walks the deployment root recursively and returns relative paths
// of files with recognized extensions, in walk order.
func (r *Resolver) List() ([]string, error) {
	if _, err := os.Stat(r.root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ierrors.New(domainCorpus, "List", ierrors.ErrInternal, err)
	}

	var files []string
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !recognizedExtensions[filepath.Ext(path)] {
			return nil
		}
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, ierrors.New(domainCorpus, "List", ierrors.ErrInternal, err)
	}

	return files, nil
}

// DefaultFile returns the first .txt or .md file directly under the
// deployment root, for the startup default-corpus load. Returns "" when
// the root is missing or holds no candidate.
func (r *Resolver) DefaultFile() string {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".txt" || ext == ".md" {
			return filepath.Join(r.root, entry.Name())
		}
	}
	return ""
}

func (r *Resolver) read(project, path string) (*Resource, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, ierrors.New(domainCorpus, "read", ierrors.ErrInternal, err).
			WithContext("path", path)
	}
	return &Resource{
		Project: project,
		Path:    path,
		Text:    string(text),
	}, nil
}

// projectFromPath derives a project name from a corpus file's containing
// directory, falling back to the default project for bare filenames.
func projectFromPath(path string) string {
	dir := filepath.Base(filepath.Dir(path))
	if dir == "" || dir == "." || dir == string(filepath.Separator) || dir == "codebase" {
		return DefaultProject
	}
	return dir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
