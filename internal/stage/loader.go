package stage

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed stages/*.yaml
var embedded embed.FS

// Loader reads stage files from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over fsys. Every .yaml/.yml file below its
// root is a stage.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Embedded returns a loader over the built-in campaign.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "stages")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return NewLoader(sub)
}

// Dir returns a loader over a directory on disk.
func Dir(root string) *Loader {
	return NewLoader(os.DirFS(root))
}

// LoadAll loads every stage file, sorted by id.
func (l *Loader) LoadAll() ([]Stage, error) {
	var stages []Stage
	seen := make(map[int]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		s, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		if prev, dup := seen[s.ID]; dup {
			return fmt.Errorf("stage: id %d defined by both %s and %s", s.ID, prev, p)
		}
		seen[s.ID] = p
		stages = append(stages, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(stages, func(i, j int) bool {
		return stages[i].ID < stages[j].ID
	})

	return stages, nil
}

// LoadFile loads a single stage file.
func (l *Loader) LoadFile(p string) (Stage, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Stage{}, fmt.Errorf("stage: reading %s: %w", p, err)
	}

	ys, err := parseYAML(data)
	if err != nil {
		return Stage{}, fmt.Errorf("stage: parsing %s: %w", p, err)
	}

	s, err := build(ys)
	if err != nil {
		return Stage{}, fmt.Errorf("stage: %s: %w", p, err)
	}
	s.Source = p
	return s, nil
}

// LoadByID loads the stage with the given id.
func (l *Loader) LoadByID(id int) (Stage, error) {
	stages, err := l.LoadAll()
	if err != nil {
		return Stage{}, err
	}

	for _, s := range stages {
		if s.ID == id {
			return s, nil
		}
	}

	return Stage{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Count returns the number of stages.
func (l *Loader) Count() (int, error) {
	stages, err := l.LoadAll()
	if err != nil {
		return 0, err
	}
	return len(stages), nil
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range extensions {
		if ext == supported {
			return true
		}
	}
	return false
}
