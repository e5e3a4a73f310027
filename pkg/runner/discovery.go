package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/footmark/pkg/langdetect"
)

// Discover finds the Markdown files selected by opts.
//
// Explicit file paths are kept when go-enry classifies them as Markdown.
// Directories are walked recursively, skipping hidden and vendored
// directories. Include and exclude globs are matched against paths relative
// to the working directory and support ** for any number of directories.
// The result holds absolute paths, sorted and free of duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	filter, err := newPathFilter(opts.IncludeGlobs, opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:        workDir,
		filter:         filter,
		followSymlinks: opts.FollowSymlinks,
		seen:           make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			d.consider(abs)
			continue
		}
		if err := d.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

type discoverer struct {
	workDir        string
	filter         *pathFilter
	followSymlinks bool
	seen           map[string]struct{}
	files          []string
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// consider adds a file when it is Markdown and passes the filter.
func (d *discoverer) consider(path string) {
	if !langdetect.IsMarkdown(path) || !d.filter.keepFile(d.rel(path)) {
		return
	}
	if _, dup := d.seen[path]; dup {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if skippableDir(root, path) || d.filter.excludeDir(d.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(ctx, path)
		}

		d.consider(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a link found while walking. Broken links are skipped.
// Directory links are walked at their target when following is enabled.
func (d *discoverer) symlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if !info.IsDir() {
		d.consider(path)
		return nil
	}
	if !d.followSymlinks {
		return nil
	}
	return d.walk(ctx, target)
}

// skippableDir reports whether a directory below root is vendored or hidden.
func skippableDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return langdetect.Skippable(rel + string(filepath.Separator))
}

// pathFilter holds compiled include and exclude globs.
type pathFilter struct {
	include []matcher
	exclude []matcher
}

// matcher is one compiled pattern. Patterns without a slash also match the
// base name, and a leading **/ also matches at the top level.
type matcher struct {
	globs    []glob.Glob
	baseName bool
}

func newPathFilter(include, exclude []string) (*pathFilter, error) {
	f := &pathFilter{}
	for _, pattern := range include {
		m, err := compileMatcher(pattern)
		if err != nil {
			return nil, err
		}
		f.include = append(f.include, m)
	}
	for _, pattern := range exclude {
		m, err := compileMatcher(pattern)
		if err != nil {
			return nil, err
		}
		f.exclude = append(f.exclude, m)
	}
	return f, nil
}

func compileMatcher(pattern string) (matcher, error) {
	pattern = filepath.ToSlash(pattern)

	variants := []string{pattern}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		variants = append(variants, rest)
	}

	m := matcher{baseName: !strings.Contains(pattern, "/")}
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return matcher{}, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

func (m matcher) match(rel string, dir bool) bool {
	candidates := []string{rel}
	if dir {
		candidates = append(candidates, rel+"/")
	}
	if m.baseName {
		candidates = append(candidates, pathBase(rel))
	}

	for _, g := range m.globs {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}

func pathBase(rel string) string {
	if idx := strings.LastIndexByte(rel, '/'); idx >= 0 {
		return rel[idx+1:]
	}
	return rel
}

func matchAny(matchers []matcher, rel string, dir bool) bool {
	return slices.ContainsFunc(matchers, func(m matcher) bool {
		return m.match(rel, dir)
	})
}

func (f *pathFilter) excludeDir(rel string) bool {
	return matchAny(f.exclude, rel, true)
}

func (f *pathFilter) keepFile(rel string) bool {
	if matchAny(f.exclude, rel, false) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.include, rel, false)
}
