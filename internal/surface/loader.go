package surface

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// profileFile is the on-disk form of a profile.
type profileFile struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Controls    map[string]controlFile `json:"controls"`
}

type controlFile struct {
	Kind    string `json:"kind"`
	Channel int    `json:"channel"`
}

var profileExtensions = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// Loader reads profile files from a list of search paths. A search path is
// either a directory, whose profile files are all loaded, or a single file.
type Loader struct {
	searchPaths []string
}

func NewLoader(searchPaths []string) (*Loader, error) {
	if _, err := profileSchema(); err != nil {
		return nil, err
	}
	return &Loader{searchPaths: searchPaths}, nil
}

// LoadAll loads every profile found on the search paths. Errors from
// individual files are joined so one report names every broken file.
func (l *Loader) LoadAll() ([]*Profile, error) {
	var (
		profiles []*Profile
		errs     []error
	)
	for _, searchPath := range l.searchPaths {
		files, err := profileFiles(searchPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, file := range files {
			p, err := l.Load(file)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			profiles = append(profiles, p)
		}
	}
	return profiles, errors.Join(errs...)
}

// Load reads, validates and converts a single profile file. YAML and JSON
// are both accepted since the YAML decoder reads JSON too.
func (l *Loader) Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := decodeProfile(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func profileFiles(searchPath string) ([]string, error) {
	info, err := os.Stat(searchPath)
	if err != nil {
		return nil, fmt.Errorf("profile search path: %w", err)
	}
	if !info.IsDir() {
		return []string{searchPath}, nil
	}

	entries, err := os.ReadDir(searchPath)
	if err != nil {
		return nil, fmt.Errorf("profile search path: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !profileExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(searchPath, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
