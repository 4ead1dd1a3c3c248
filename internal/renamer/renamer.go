// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package renamer lists the regular files of a directory, orders them by
// modification time and renames them in place with a zero-padded ordinal
// prefix.
//
// The steps are exposed separately so the caller can put a confirmation
// between planning and renaming:
//
//	l, err := renamer.List(dir)
//	...
//	renamer.Sort(l.Entries)
//	ops := renamer.Plan(l.Entries, prefix)
//	n, err := renamer.Apply(ctx, ops)
package renamer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.astrophena.name/renamer/internal/logger"
)

// DefaultPrefix is inserted between the ordinal and the original name when
// the user does not choose another one.
const DefaultPrefix = "-"

// Config is the configuration of a single run.
type Config struct {
	Path   string // directory to operate on
	Prefix string // inserted between ordinal and original name
	Dry    bool   // only print the plan
}

// ErrNotDir is returned by [List] when the path is not a directory.
var ErrNotDir = errors.New("path does not point to a directory")

// ErrLeavesDir is wrapped by [Apply] when a new name would move a file out of
// its directory, for example because the prefix contains a path separator.
var ErrLeavesDir = errors.New("new name is not a plain filename")

// Entry is a regular file found at depth 1 of the listed directory.
type Entry struct {
	Path    string
	Name    string
	ModTime time.Time
}

// Listing is the result of [List].
type Listing struct {
	Entries []Entry
	// Skipped counts children whose metadata could not be read, such as
	// dangling symbolic links. They are left alone.
	Skipped int
}

// List returns the regular files that are direct children of dir, in
// filename order. Symbolic links are followed when classifying entries, so a
// link to a regular file is listed and a link to a directory is not.
//
// If dir is not a directory, the returned error wraps [ErrNotDir].
func List(dir string) (Listing, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return Listing{}, err
	}
	if !fi.IsDir() {
		return Listing{}, &fs.PathError{Op: "list", Path: dir, Err: ErrNotDir}
	}

	des, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, err
	}

	var l Listing
	for _, de := range des {
		path := filepath.Join(dir, de.Name())
		fi, err := os.Stat(path)
		if err != nil {
			l.Skipped++
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		l.Entries = append(l.Entries, Entry{
			Path:    path,
			Name:    de.Name(),
			ModTime: fi.ModTime(),
		})
	}
	return l, nil
}

// Sort orders entries by modification time, oldest first. Entries with equal
// modification times keep their relative order.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.ModTime.Compare(b.ModTime)
	})
}

// Op is a single planned rename.
type Op struct {
	Ordinal int    // 1-based position after sorting
	OldPath string // current path
	NewName string // new filename, without directory
	NewPath string // OldPath's directory joined with NewName
}

// Name returns the new filename for the file at 1-based position ordinal.
// The ordinal has a minimum width of two digits and is never truncated.
func Name(ordinal int, prefix, name string) string {
	return fmt.Sprintf("%02d%s%s", ordinal, prefix, name)
}

// Plan returns one rename per entry, numbering entries in the given order.
func Plan(entries []Entry, prefix string) []Op {
	ops := make([]Op, 0, len(entries))
	for i, e := range entries {
		newName := Name(i+1, prefix, e.Name)
		ops = append(ops, Op{
			Ordinal: i + 1,
			OldPath: e.Path,
			NewName: newName,
			NewPath: filepath.Join(filepath.Dir(e.Path), newName),
		})
	}
	return ops
}

// RenameError records a failed rename. Renames before it have been done and
// renames after it have not.
type RenameError struct {
	Op  Op
	Err error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("renaming %s to %s (file %d): %v", e.Op.OldPath, e.Op.NewName, e.Op.Ordinal, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// Apply performs ops in order and returns how many files were renamed.
//
// It stops at the first failure and returns a *[RenameError]. A target name
// that is already taken is a failure wrapping [fs.ErrExist]: files are never
// overwritten. A new name that is not a plain filename is a failure wrapping
// [ErrLeavesDir]. Nothing is undone. Cancelling ctx stops Apply before the next
// rename.
func Apply(ctx context.Context, ops []Op) (int, error) {
	return apply(ctx, ops, os.Rename)
}

func apply(ctx context.Context, ops []Op, rename func(oldpath, newpath string) error) (int, error) {
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if filepath.Base(op.NewName) != op.NewName || filepath.Dir(op.NewPath) != filepath.Dir(op.OldPath) {
			return i, &RenameError{Op: op, Err: ErrLeavesDir}
		}
		if _, err := os.Lstat(op.NewPath); err == nil {
			return i, &RenameError{Op: op, Err: fs.ErrExist}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return i, &RenameError{Op: op, Err: err}
		}

		logger.Info(ctx, "renaming", slog.String("from", op.OldPath), slog.String("to", op.NewPath))
		if err := rename(op.OldPath, op.NewPath); err != nil {
			return i, &RenameError{Op: op, Err: err}
		}
	}
	return len(ops), nil
}

// Describe returns a human-readable line for op, relative to the directory
// being renamed.
func Describe(op Op) string {
	return fmt.Sprintf("%s -> %s", filepath.Base(op.OldPath), op.NewName)
}
