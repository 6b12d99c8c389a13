// Package fetch resolves a scan target (a local path or a remote git
// URL) into a local directory ready for the file walker, cloning
// remote repositories with a shallow, history-free checkout: scanning
// only ever looks at repository HEAD state, never commit history.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsRemote reports whether target looks like a git URL rather than a
// local filesystem path.
func IsRemote(target string) bool {
	if strings.HasPrefix(target, "git@") {
		return true
	}
	u, err := url.Parse(target)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// RepoName extracts a directory-safe repository name from a git URL.
func RepoName(target string) string {
	var name string
	if strings.HasPrefix(target, "git@") {
		parts := strings.SplitN(target, ":", 2)
		name = parts[len(parts)-1]
	} else {
		u, err := url.Parse(target)
		if err != nil {
			name = target
		} else {
			name = strings.Trim(u.Path, "/")
		}
	}
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, ".git")
	if name == "" || name == "." {
		return "repo"
	}
	return name
}

// Clone performs a shallow (--depth 1) clone of target into a fresh
// temporary directory and returns its path. The caller owns cleanup via
// the returned cleanup func and should defer it immediately.
func Clone(ctx context.Context, target string) (dir string, cleanup func(), err error) {
	tmp, err := os.MkdirTemp("", "ai-truffle-hog-")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(tmp) }

	dest := filepath.Join(tmp, RepoName(target))
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--single-branch", target, dest)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("git clone %s: %w: %s", target, err, strings.TrimSpace(string(out)))
	}

	return dest, cleanup, nil
}

// HeadCommit returns the current HEAD commit hash of the repository at
// dir, or "" if dir is not a git repository.
func HeadCommit(ctx context.Context, dir string) string {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Resolve prepares target for scanning: if it is a remote URL, it is
// shallow-cloned and the temporary checkout's path is returned along
// with a cleanup function; if it is a local path, it is returned
// unchanged with a no-op cleanup.
func Resolve(ctx context.Context, target string) (dir string, cleanup func(), err error) {
	if !IsRemote(target) {
		return target, func() {}, nil
	}
	return Clone(ctx, target)
}
