package modules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/funvibe/ollang/internal/config"
	"github.com/funvibe/ollang/internal/parser"
	"github.com/funvibe/ollang/internal/utils"
)

// ErrModuleNotFound is returned when no candidate path exists.
var ErrModuleNotFound = errors.New("module not found")

// Loader resolves import paths and caches parsed modules by resolved path.
// A Loader belongs to one interpreter instance; it is safe for use by
// concurrent tasks of that interpreter.
type Loader struct {
	mu            sync.Mutex
	LoadedModules map[string]*Module // Cache of loaded modules by path

	// SearchPaths are tried after the importing file's directory and
	// before the working directory.
	SearchPaths []string
	Strict      bool
	Log         zerolog.Logger

	parseCount int
}

func NewLoader() *Loader {
	return &Loader{
		LoadedModules: make(map[string]*Module),
		Strict:        true,
		Log:           zerolog.Nop(),
	}
}

// NewLoaderFromSettings applies the import and lexer sections of s.
func NewLoaderFromSettings(s *config.Settings) *Loader {
	l := NewLoader()
	l.SearchPaths = append(l.SearchPaths, s.ImportPaths...)
	l.Strict = s.Lexer.Strict
	return l
}

// Resolve finds the file an import refers to. baseDir is the directory
// of the importing file, or "" for code without a file.
func (l *Loader) Resolve(importPath, baseDir string) (string, error) {
	name := config.ModuleFileName(importPath)

	var candidates []string
	if filepath.IsAbs(name) {
		candidates = []string{name}
	} else {
		if baseDir != "" {
			candidates = append(candidates, utils.ResolveImportPath(baseDir, name))
		}
		for _, dir := range l.SearchPaths {
			candidates = append(candidates, utils.ResolveImportPath(dir, name))
		}
		candidates = append(candidates, name)
	}

	for _, c := range candidates {
		if utils.IsRegularFile(c) {
			abs, err := filepath.Abs(c)
			if err != nil {
				return "", fmt.Errorf("resolve %s: %w", c, err)
			}
			return abs, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrModuleNotFound, importPath)
}

// Load returns the parsed module for importPath, parsing the file only
// the first time its resolved path is seen.
func (l *Loader) Load(importPath, baseDir string) (*Module, error) {
	path, err := l.Resolve(importPath, baseDir)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if mod, ok := l.LoadedModules[path]; ok {
		l.Log.Debug().Str("path", path).Msg("import cache hit")
		return mod, nil
	}
	l.Log.Debug().Str("path", path).Msg("import cache miss")

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}

	l.parseCount++
	program, err := parser.ParseSource(string(source), path, l.Strict)
	if err != nil {
		return nil, err
	}

	mod := &Module{
		Name:    utils.ExtractModuleName(path),
		Path:    path,
		Dir:     filepath.Dir(path),
		Program: program,
	}
	l.LoadedModules[path] = mod
	return mod, nil
}

// ParseCount reports how many files this loader has parsed.
func (l *Loader) ParseCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.parseCount
}
