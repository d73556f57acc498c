// Package fsquery answers the few filesystem questions navsh asks.
// Every query is best-effort: failures read as "absent" or "empty".
package fsquery

import (
	"os"
)

// FS is the filesystem view used by the shell and the completion engine
type FS interface {
	// IsDir reports whether path exists and is a directory (symlinks followed)
	IsDir(path string) bool
	// ListSubdirs returns the names of the immediate subdirectories of path
	ListSubdirs(path string) []string
	// HomeDir returns the home directory, or "" if it cannot be determined
	HomeDir() string
}

// OS implements FS on top of the real filesystem.
// A non-empty Home overrides the environment lookup.
type OS struct {
	Home string
}

// IsDir reports whether path is an existing directory
func (o OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ListSubdirs lists immediate subdirectories of path, in directory order
func (o OS) ListSubdirs(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// HomeDir returns Home if set, then $HOME, then $USERPROFILE
func (o OS) HomeDir() string {
	if o.Home != "" {
		return o.Home
	}
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	return os.Getenv("USERPROFILE")
}
