package filebrowser

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"
)

// Copy copies src into destDir, recursing into directories. Only regular
// files and directories are copied; symlinks and special files inside a
// directory are skipped, and copying one directly is an error.
func Copy(src, destDir string) error {
	dest := filepath.Join(destDir, filepath.Base(src))
	if dest == src {
		return errors.Errorf("%s is already in %s", filepath.Base(src), destDir)
	}
	info, err := os.Lstat(src)
	if err != nil {
		return errors.WrapPrefix(err, "copy", 0)
	}
	if info.IsDir() {
		if rel, err := filepath.Rel(src, destDir); err == nil && !strings.HasPrefix(rel, "..") {
			return errors.Errorf("cannot copy %s into itself", filepath.Base(src))
		}
		return copyDir(src, dest)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("cannot copy %s: not a regular file", filepath.Base(src))
	}
	return copyFile(src, dest, info.Mode())
}

func copyDir(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapPrefix(err, "copy", 0)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.WrapPrefix(err, "copy", 0)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.WrapPrefix(err, "copy", 0)
	}
	return out.Close()
}

// Move moves src into destDir.
func Move(src, destDir string) error {
	dest := filepath.Join(destDir, filepath.Base(src))
	if dest == src {
		return errors.Errorf("%s is already in %s", filepath.Base(src), destDir)
	}
	if err := os.Rename(src, dest); err != nil {
		return errors.WrapPrefix(err, "move", 0)
	}
	return nil
}

// Delete removes path, recursively for directories.
func Delete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.WrapPrefix(err, "delete", 0)
	}
	return nil
}

// Rename gives path a new base name in the same directory.
func Rename(path, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}
	if err := os.Rename(path, filepath.Join(filepath.Dir(path), newName)); err != nil {
		return errors.WrapPrefix(err, "rename", 0)
	}
	return nil
}

// Mkdir creates the directory name inside parent.
func Mkdir(parent, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.Mkdir(filepath.Join(parent, name), 0755); err != nil {
		return errors.WrapPrefix(err, "mkdir", 0)
	}
	return nil
}

func validName(name string) error {
	switch {
	case name == "" || name == "." || name == "..":
		return errors.Errorf("invalid name %q", name)
	case strings.ContainsRune(name, filepath.Separator):
		return errors.Errorf("name %q must not contain %c", name, filepath.Separator)
	}
	return nil
}
