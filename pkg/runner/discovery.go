package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	paths := opts.effectivePaths()

	// Use a map for deduplication.
	seen := make(map[string]struct{})
	var files []string

	for _, inputPath := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			discovered, err := walkDirectory(ctx, absPath, workDir, extensions, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				if _, ok := seen[f]; !ok {
					seen[f] = struct{}{}
					files = append(files, f)
				}
			}
		} else if matchesFile(absPath, workDir, extensions, opts) {
			if _, ok := seen[absPath]; !ok {
				seen[absPath] = struct{}{}
				files = append(files, absPath)
			}
		}
	}

	// Sort for deterministic ordering.
	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns matching Markdown files.
func walkDirectory(
	ctx context.Context,
	root string,
	workDir string,
	extensions []string,
	opts Options,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Handle permission errors gracefully.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			// Skip hidden directories (except root).
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}

			if matchesExcludePattern(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}

			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				// Broken symlink, skip silently.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				// Directory symlink: skip unless FollowSymlinks is set.
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the symlink TARGET (realPath), not the symlink itself.
				// This avoids infinite recursion since WalkDir uses Lstat on root.
				subFiles, err := walkDirectory(ctx, realPath, workDir, extensions, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
			// File symlink: continue to check as regular file.
		}

		// Skip hidden files.
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if matchesFile(path, workDir, extensions, opts) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesFile checks if a file path matches the inclusion criteria.
func matchesFile(path, workDir string, extensions []string, opts Options) bool {
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		relPath = path
	}

	if !hasMatchingExtension(path, extensions) {
		return false
	}

	// Backups produced by earlier runs carry a .md-looking name underneath
	// the suffix but must never be rewritten.
	if strings.HasSuffix(path, backupSuffix) {
		return false
	}

	if matchesExcludePattern(relPath, opts.ExcludeGlobs) {
		return false
	}

	if len(opts.IncludeGlobs) > 0 {
		if !matchesIncludePattern(relPath, opts.IncludeGlobs) {
			return false
		}
	}

	return true
}

// backupSuffix mirrors fsutil.BackupSuffix without importing the package
// into the hot path of matching.
const backupSuffix = ".mdfix.bak"

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesExcludePattern checks if the path matches any exclude pattern.
func matchesExcludePattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchesIncludePattern checks if the path matches any include pattern.
func matchesIncludePattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a glob pattern.
// It supports patterns like "*.md", "docs/**", "**/vendor/**", etc.
func matchGlob(path, pattern string) bool {
	// Normalize path separators for matching.
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStarPattern(path, pattern)
	}

	matched, matchErr := filepath.Match(pattern, path)
	if matchErr != nil {
		return false
	}
	if matched {
		return true
	}

	// Also try matching against just the filename.
	matched, matchErr = filepath.Match(pattern, filepath.Base(path))
	if matchErr != nil {
		return false
	}
	return matched
}

// matchDoubleStarPattern handles ** glob patterns.
func matchDoubleStarPattern(path, pattern string) bool {
	parts := strings.Split(pattern, "**")

	if len(parts) == 1 {
		matched, matchErr := filepath.Match(pattern, path)
		if matchErr != nil {
			return false
		}
		return matched
	}

	// "**/name/**" matches the directory name anywhere in the path.
	if len(parts) == 3 && parts[0] == "" && parts[2] == "" {
		middle := strings.Trim(parts[1], "/")
		if middle == "" {
			return true
		}
		return strings.Contains("/"+path+"/", "/"+middle+"/")
	}

	if parts[0] == "" && len(parts) == 2 {
		// Pattern starts with **/, e.g., "**/vendor".
		suffix := strings.TrimPrefix(parts[1], "/")
		if suffix == "" {
			// Just "**" matches everything.
			return true
		}

		if strings.HasSuffix(path, suffix) {
			return true
		}

		for _, part := range strings.Split(path, "/") {
			matched, matchErr := filepath.Match(suffix, part)
			if matchErr == nil && matched {
				return true
			}
		}

		return strings.Contains(path, suffix)
	}

	if parts[1] == "" || parts[1] == "/" {
		// Pattern ends with /**, e.g., "vendor/**".
		prefix := strings.TrimSuffix(parts[0], "/")
		if prefix == "" {
			return true
		}
		return strings.HasPrefix(path, prefix+"/") || path == prefix
	}

	// Pattern with ** in the middle: prefix must match the start and the
	// suffix the end.
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && !strings.HasPrefix(path, prefix) {
		return false
	}

	if suffix != "" && !strings.HasSuffix(path, suffix) {
		matched, matchErr := filepath.Match(suffix, filepath.Base(path))
		if matchErr != nil || !matched {
			return false
		}
	}

	return true
}
