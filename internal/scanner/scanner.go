// Package scanner finds the source files to analyze: a recursive walk with
// include/exclude pattern matching and optional .gitignore awareness.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/cddtools/icp/pkg/config"
	"github.com/cddtools/icp/pkg/parser"
)

// Scanner finds source files in a directory.
type Scanner struct {
	cfg      *config.Config
	matchers []gitignore.Matcher
}

// New creates a new file scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Scanner{cfg: cfg}
}

// findGitRoot finds the root of the git repository by looking for a .git
// directory. Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadGitignore reads all .gitignore files below the repository root so
// ignored trees are skipped like excluded ones.
func (s *Scanner) loadGitignore(root string) {
	gitRoot := findGitRoot(root)
	if gitRoot == "" {
		return
	}
	fsys := osfs.New(gitRoot)
	if patterns, err := gitignore.ReadPatterns(fsys, nil); err == nil && len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

func (s *Scanner) isIgnored(relPath string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}
	parts := strings.Split(relPath, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

// matchesPattern matches a relative path against one configured pattern,
// treating it as a doublestar glob first and as a regular expression when
// it is not a valid glob. Malformed patterns never match.
func matchesPattern(pattern, relPath string) bool {
	if matched, err := doublestar.Match(pattern, filepath.ToSlash(relPath)); err == nil {
		if matched {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.Base(relPath)); ok {
			return true
		}
		return false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(relPath) || re.MatchString(filepath.Base(relPath))
}

func matchesAny(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if matchesPattern(pattern, relPath) {
			return true
		}
	}
	return false
}

// included applies the include list (empty list includes everything) and
// then the exclude list.
func (s *Scanner) included(relPath string) bool {
	if len(s.cfg.Include) > 0 && !matchesAny(s.cfg.Include, relPath) {
		return false
	}
	return !matchesAny(s.cfg.Exclude, relPath)
}

// ScanDir recursively scans a directory for analyzable source files.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	files := make([]string, 0, 256)

	s.loadGitignore(root)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}

		if d.IsDir() {
			if relPath != "." && (s.isIgnored(relPath, true) || matchesAny(s.cfg.Exclude, relPath)) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isIgnored(relPath, false) || !s.included(relPath) {
			return nil
		}
		if parser.DetectLanguage(path) != parser.LangUnknown {
			files = append(files, path)
		}
		return nil
	})

	return files, walkErr
}

// ScanPaths scans files and directories, flattening everything into one
// file list.
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := s.ScanDir(path)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if parser.DetectLanguage(path) != parser.LangUnknown {
			files = append(files, path)
		}
	}
	return files, nil
}
