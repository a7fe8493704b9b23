// Package prompts loads named prompt templates from disk and substitutes
// {placeholder}-style variables into them.
package prompts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultDirectory is the conventional template location relative to the
// working directory, matching the openrouter config default.
const DefaultDirectory = "prompts"

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// NotFoundError reports a template that does not exist on disk.
type NotFoundError struct {
	Name string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("prompt template not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// MissingVariableError reports a placeholder the caller did not supply a
// value for. No partially substituted output accompanies it.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing required template variable: %s", e.Name)
}

// Store resolves template names to their text content under a directory.
// Templates are re-read on every Load; callers may cache the returned
// string if they need to.
type Store struct {
	dir string
}

// NewStore creates a store over dir, falling back to DefaultDirectory when
// dir is empty.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDirectory
	}
	return &Store{dir: dir}
}

// Load reads the template named name from <dir>/<name>.txt and trims
// surrounding whitespace. A missing file yields a *NotFoundError carrying
// the attempted path; other I/O failures propagate as-is.
func (s *Store) Load(name string) (string, error) {
	path := filepath.Join(s.dir, name+".txt")

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Name: name, Path: path}
		}
		return "", fmt.Errorf("read prompt template: %w", err)
	}

	return strings.TrimSpace(string(content)), nil
}

// Format substitutes each {name} placeholder in template with vars[name].
// A placeholder absent from vars yields a *MissingVariableError naming it;
// unused entries in vars are not an error.
func Format(template string, vars map[string]string) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})
	if missing != "" {
		return "", &MissingVariableError{Name: missing}
	}
	return out, nil
}

// LoadAndFormat loads the named template and formats it in one call. Either
// step's failure propagates unchanged.
func (s *Store) LoadAndFormat(name string, vars map[string]string) (string, error) {
	template, err := s.Load(name)
	if err != nil {
		return "", err
	}
	return Format(template, vars)
}
