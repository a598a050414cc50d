// Package fs provides filesystem helpers and the artifact verifier adapter.
package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// CopyFile copies src to dst through a temporary file in dst's directory,
// fsyncs and renames, so a crashed copy never leaves a truncated destination.
func CopyFile(src, dst string) error {
	//nolint:gosec // paths come from validated build requests
	in, err := os.Open(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source file"), "path", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".crate-copy-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp file"), "dir", filepath.Dir(dst))
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file contents"), "src", src)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp file")
	}

	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return zerr.Wrap(err, "failed to set file mode")
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to rename temp file"), "dst", dst)
	}
	return nil
}

// CopyTree copies the directory tree rooted at src into dst, creating dst.
// Symlinks are skipped: build workspaces need regular files only.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk source tree"), "path", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.Wrap(err, "failed to resolve relative path")
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.Type()&os.ModeSymlink != 0:
			return nil
		case d.IsDir():
			if err := os.MkdirAll(target, 0o750); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", target)
			}
			return nil
		default:
			return CopyFile(path, target)
		}
	})
}
