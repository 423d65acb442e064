package filesystem

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultFileMode fs.FileMode = 0o644
	defaultDirMode  fs.FileMode = 0o755
)

// rename is swapped out in tests to simulate an interruption before the
// replacement becomes visible.
var rename = os.Rename

// processStart anchors the monotonic component of temporary link names.
var processStart = time.Now()

// ReadFileOrEmpty returns the file content, or "" when the file does not exist.
func ReadFileOrEmpty(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.WithStack(err)
	}
	return string(data), nil
}

// WriteFileAtomic replaces path with data so that readers observe either the
// previous content or the new content, never a partial write.
//
// The data is written to a temporary file in the same directory and renamed
// over the destination. Symlinks in path are followed so that a linked rc file
// keeps its link. An existing destination keeps its permission bits. The parent
// directory must exist.
func WriteFileAtomic(path string, data []byte) (err error) {
	path = ResolvePath(path)
	dir := filepath.Dir(path)

	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temporary file for %s", path)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", tmpPath)
	}
	if err = tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "chmod %s", tmpPath)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "sync %s", tmpPath)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpPath)
	}
	if err = rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

// SymlinkAtomic makes dir/<base of target> a symlink to target, replacing any
// existing entry of that name in one rename. dir is created when missing.
// It returns the path of the link.
func SymlinkAtomic(target, dir string) (string, error) {
	if err := os.MkdirAll(dir, defaultDirMode); err != nil {
		return "", errors.Wrapf(err, "create directory %s", dir)
	}

	name := filepath.Base(target)
	tmpLink := filepath.Join(dir, fmt.Sprintf("%s-%d-%d", name, os.Getpid(), time.Since(processStart).Nanoseconds()))
	if err := os.Symlink(target, tmpLink); err != nil {
		return "", errors.Wrapf(err, "create symlink %s", tmpLink)
	}

	link := filepath.Join(dir, name)
	if err := rename(tmpLink, link); err != nil {
		_ = os.Remove(tmpLink)
		return "", errors.Wrapf(err, "replace %s", link)
	}
	return link, nil
}

// IsSymlinkUnsupported reports whether err, as returned by SymlinkAtomic,
// means the filesystem cannot hold symlinks: vfat and exFAT mounts answer
// EPERM, some network filesystems ENOTSUP, Windows without the symlink
// privilege ERROR_PRIVILEGE_NOT_HELD.
func IsSymlinkUnsupported(err error) bool {
	var linkErr *os.LinkError
	if !stderrors.As(err, &linkErr) || linkErr.Op != "symlink" {
		return false
	}
	if stderrors.Is(linkErr.Err, stderrors.ErrUnsupported) {
		return true
	}
	for _, errno := range symlinkUnsupportedErrnos {
		if stderrors.Is(linkErr.Err, errno) {
			return true
		}
	}
	return false
}
