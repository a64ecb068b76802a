// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package cs

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

// CleanAndExpandPath normalizes a user-supplied filesystem path, expanding
// POSIX-style $VARIABLE environment references and a leading ~ or ~username
// before cleaning the result. Config values and CLI flags go through this
// before being used as wallet, database or log locations.
func CleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}

	// Windows cmd.exe-style %VARIABLE% references are not expanded, but
	// $VARIABLE works on every platform.
	path = os.ExpandEnv(path)

	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	userName, rest := splitTildePrefix(path[1:])

	homeDir := ""
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if err == nil {
		homeDir = u.HomeDir
	}
	if homeDir == "" {
		// No resolvable home directory. Anchor at the working directory so
		// the caller still gets a usable path.
		homeDir = "."
	}

	return filepath.Join(homeDir, rest)
}

// splitTildePrefix separates the optional username between a leading ~ and
// the first path separator. Windows accepts both slash directions there. A
// bare remainder with no separator is treated as a path under the current
// user's home, not as a username.
func splitTildePrefix(path string) (userName, rest string) {
	seps := string(os.PathSeparator)
	if runtime.GOOS == "windows" {
		seps += "/"
	}
	if i := strings.IndexAny(path, seps); i != -1 {
		return path[:i], path[i:]
	}
	return "", path
}
