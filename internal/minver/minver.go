// Package minver pins dependency constraints to their declared
// minimums, so the test suite can prove the package still works with
// the oldest versions it claims to support.
package minver

import (
	"bytes"
	"os"
)

var (
	atLeast = []byte(">=")
	exactly = []byte("==")
)

// Rewrite turns every "at-least" constraint into an exact pin.
// Applying it twice yields the same bytes as applying it once.
func Rewrite(data []byte) []byte {
	return bytes.ReplaceAll(data, atLeast, exactly)
}

// RewriteFile rewrites a requirements file in place. Missing files are
// an error; the caller decides whether that aborts the job.
func RewriteFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, Rewrite(data), info.Mode().Perm())
}
