package version

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/featuredoc/internal/logfields"
)

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/featuredoc/internal/version.Version=v1.4.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String describes the running binary for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}

// TimestampLayout is the layout used for generated build timestamps.
const TimestampLayout = "2006/01/02 15:04:05"

// ErrNotRepository is returned when no git repository encloses the source tree.
var ErrNotRepository = errors.New("source tree is not inside a git repository")

// DefaultTimestamp returns the build timestamp used when none was supplied:
// the ldflags BuildTime when set, otherwise now.
func DefaultTimestamp(now time.Time) string {
	if BuildTime != "" && BuildTime != "unknown" {
		return BuildTime
	}
	return now.Format(TimestampLayout)
}

// DefaultAbsoluteVersion returns the version stamped on generated pages when
// none was supplied. The ldflags Version wins; otherwise the HEAD commit of the
// repository enclosing sourceDir is used, suffixed with -dirty for a modified
// worktree.
func DefaultAbsoluteVersion(sourceDir string) string {
	if Version != "" && Version != "unknown" {
		return Version
	}
	v, err := HeadVersion(sourceDir)
	if err != nil {
		slog.Debug("Falling back to unknown version", logfields.Path(sourceDir), logfields.Error(err))
		return Version
	}
	return v
}

// HeadVersion describes the HEAD commit of the git repository enclosing dir.
func HeadVersion(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", ErrNotRepository
		}
		return "", fmt.Errorf("open repository: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	hash := ref.Hash().String()
	if len(hash) > 12 {
		hash = hash[:12]
	}

	v := hash
	if ref.Name().IsBranch() {
		v = ref.Name().Short() + "-" + hash
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to be dirty.
		return v, nil
	}
	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("worktree status: %w", err)
	}
	if !status.IsClean() {
		v += "-dirty"
	}
	return v, nil
}
