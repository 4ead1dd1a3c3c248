// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/renamer/internal/cli"
	"go.astrophena.name/renamer/internal/cli/clitest"
	"go.astrophena.name/renamer/internal/renamer"
	"go.astrophena.name/renamer/internal/testutil"
)

func writeFiles(names ...string) func(*testing.T, string) {
	return func(t *testing.T, dir string) {
		testutil.WriteFiles(t, dir, names...)
	}
}

func wantFiles(names ...string) func(*testing.T, *app, string) {
	if names == nil {
		names = []string{}
	}
	return func(t *testing.T, _ *app, dir string) {
		testutil.AssertEqual(t, testutil.ListDir(t, dir), names)
	}
}

func TestRun(t *testing.T) {
	clitest.Run(t, func(*testing.T) *app { return new(app) }, map[string]clitest.Case[*app]{
		"without path": {
			Args:    []string{},
			WantErr: cli.ErrInvalidArgs,
		},
		"positional directory": {
			Args:      []string{clitest.TempDirArg},
			Prepare:   writeFiles("a.txt"),
			WantErr:   cli.ErrInvalidArgs,
			CheckFunc: wantFiles("a.txt"),
		},
		"version": {
			Args:         []string{"-version"},
			WantErr:      cli.ErrExitVersion,
			WantInStderr: "(go",
		},
		"help shows doc comment": {
			Args:         []string{"-h"},
			WantErr:      cli.ErrInvalidArgs,
			WantInStderr: "Renamer numbers the files of a directory",
		},
		"rename": {
			Args:         []string{"-p", clitest.TempDirArg},
			Prepare:      writeFiles("a.txt", "b.txt", "c.txt"),
			Stdin:        strings.NewReader("y\n"),
			WantInStdout: "Successfully renamed 3 files\n",
			WantInStderr: "msg=renaming",
			CheckFunc:    wantFiles("01-a.txt", "02-b.txt", "03-c.txt"),
		},
		"rename with custom prefix": {
			Args:         []string{"--path", clitest.TempDirArg, "--prefix", "_"},
			Prepare:      writeFiles("a.txt", "b.txt", "c.txt"),
			Stdin:        strings.NewReader("Y\n"),
			WantInStdout: "Successfully renamed 3 files\n",
			CheckFunc:    wantFiles("01_a.txt", "02_b.txt", "03_c.txt"),
		},
		"rename orders by modification time": {
			Args:         []string{"-path", clitest.TempDirArg},
			Prepare:      writeFiles("c.txt", "a.txt", "b.txt"),
			Stdin:        strings.NewReader(" y \n"),
			WantInStdout: "Successfully renamed 3 files\n",
			CheckFunc:    wantFiles("01-c.txt", "02-a.txt", "03-b.txt"),
		},
		"prompt": {
			Args:         []string{"-path", clitest.TempDirArg},
			Prepare:      writeFiles("a.txt", "b.txt", "c.txt"),
			WantInStdout: `" has 3 files, are you sure you want to continue (y/n)?` + "\n",
		},
		"subdirectories are not counted": {
			Args:         []string{"-path", clitest.TempDirArg},
			Prepare:      writeFiles("a.txt", "sub/inner.txt"),
			Stdin:        strings.NewReader("y\n"),
			WantInStdout: "Successfully renamed 1 files\n",
			CheckFunc: func(t *testing.T, _ *app, dir string) {
				testutil.AssertEqual(t, testutil.ListDir(t, dir), []string{"01-a.txt", "sub/"})
				testutil.AssertEqual(t, testutil.ListDir(t, filepath.Join(dir, "sub")), []string{"inner.txt"})
			},
		},
		"decline": {
			Args:         []string{"-path", clitest.TempDirArg},
			Prepare:      writeFiles("a.txt", "b.txt"),
			Stdin:        strings.NewReader("n\n"),
			WantInStdout: "exiting...\n",
			CheckFunc:    wantFiles("a.txt", "b.txt"),
		},
		"decline with yes": {
			Args:         []string{"-path", clitest.TempDirArg},
			Prepare:      writeFiles("a.txt"),
			Stdin:        strings.NewReader("yes\n"),
			WantInStdout: "exiting...\n",
			CheckFunc:    wantFiles("a.txt"),
		},
		"no input": {
			Args:         []string{"-path", clitest.TempDirArg},
			Prepare:      writeFiles("a.txt"),
			WantInStdout: "exiting...\n",
			CheckFunc:    wantFiles("a.txt"),
		},
		"empty directory": {
			Args:         []string{"-path", clitest.TempDirArg},
			Stdin:        strings.NewReader("y\n"),
			WantInStdout: "Successfully renamed 0 files\n",
			CheckFunc:    wantFiles(),
		},
		"dry run": {
			Args:         []string{"-path", clitest.TempDirArg, "-dry"},
			Prepare:      writeFiles("b.txt", "a.txt"),
			WantInStdout: "b.txt -> 01-b.txt\na.txt -> 02-a.txt\nWould rename 2 files\n",
			CheckFunc:    wantFiles("a.txt", "b.txt"),
		},
		"prefix with path separator": {
			Args:      []string{"-path", clitest.TempDirArg, "-prefix", "/"},
			Prepare:   writeFiles("a.txt", "01/.keep"),
			Stdin:     strings.NewReader("y\n"),
			WantErr:   cli.ErrInvalidArgs,
			CheckFunc: wantFiles("01/", "a.txt"),
		},
		"prefix with nested path": {
			Args:      []string{"-path", clitest.TempDirArg, "-prefix", "-sub/"},
			Prepare:   writeFiles("a.txt"),
			Stdin:     strings.NewReader("y\n"),
			WantErr:   cli.ErrInvalidArgs,
			CheckFunc: wantFiles("a.txt"),
		},
		"unreadable entries are reported": {
			Args: []string{"-path", clitest.TempDirArg},
			Prepare: func(t *testing.T, dir string) {
				testutil.WriteFiles(t, dir, "a.txt")
				if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")); err != nil {
					t.Fatal(err)
				}
			},
			Stdin:        strings.NewReader("y\n"),
			WantInStdout: "Successfully renamed 1 files\n",
			WantInStderr: "level=WARN msg=\"skipped unreadable entries\" count=1",
			CheckFunc:    wantFiles("01-a.txt", "dangling"),
		},
		"path is a regular file": {
			Args:      []string{"-path", filepath.Join(clitest.TempDirArg, "a.txt")},
			Prepare:   writeFiles("a.txt"),
			Stdin:     strings.NewReader("y\n"),
			WantErr:   renamer.ErrNotDir,
			CheckFunc: wantFiles("a.txt"),
		},
		"path does not exist": {
			Args:    []string{"-path", filepath.Join(clitest.TempDirArg, "missing")},
			WantErr: fs.ErrNotExist,
		},
		"name already taken": {
			Args:        []string{"-path", clitest.TempDirArg},
			Prepare:     writeFiles("b", "01-b"),
			Stdin:       strings.NewReader("y\n"),
			WantErr:     fs.ErrExist,
			WantErrType: &renamer.RenameError{},
			CheckFunc:   wantFiles("01-b", "b"),
		},
	})
}

func TestRunAsksConfirmer(t *testing.T) {
	var question string
	setup := func(*testing.T) *app {
		return &app{
			confirm: renamer.ConfirmFunc(func(_ context.Context, q string) (bool, error) {
				question = q
				return true, nil
			}),
		}
	}

	clitest.Run(t, setup, map[string]clitest.Case[*app]{
		"confirmed": {
			Args:         []string{"-path", clitest.TempDirArg},
			Prepare:      writeFiles("x", "y"),
			WantInStdout: "Successfully renamed 2 files\n",
			CheckFunc: func(t *testing.T, a *app, dir string) {
				testutil.AssertEqual(t, question, renamer.Question(dir, 2))
				testutil.AssertEqual(t, a.Path, dir)
				testutil.AssertEqual(t, testutil.ListDir(t, dir), []string{"01-x", "02-y"})
			},
		},
	})
}

func TestRunConfirmationError(t *testing.T) {
	errTTY := errors.New("terminal went away")
	setup := func(*testing.T) *app {
		return &app{
			confirm: renamer.ConfirmFunc(func(context.Context, string) (bool, error) {
				return false, errTTY
			}),
		}
	}

	clitest.Run(t, setup, map[string]clitest.Case[*app]{
		"error": {
			Args:      []string{"-path", clitest.TempDirArg},
			Prepare:   writeFiles("x"),
			WantErr:   errTTY,
			CheckFunc: wantFiles("x"),
		},
	})
}
