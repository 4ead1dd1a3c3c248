// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"go.astrophena.name/renamer/internal/cli"
	"go.astrophena.name/renamer/internal/cli/restrict"
	"go.astrophena.name/renamer/internal/logger"
	"go.astrophena.name/renamer/internal/renamer"

	"github.com/landlock-lsm/go-landlock/landlock"
)

func main() { cli.Main(new(app)) }

type app struct {
	renamer.Config

	// confirm answers the confirmation question. If nil, the question is
	// asked on the environment's stdin and stdout.
	confirm renamer.Confirmer
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.Path, "path", "", "Rename files in `directory`. Required.")
	fs.StringVar(&a.Path, "p", "", "Shorthand for -path.")
	fs.StringVar(&a.Prefix, "prefix", renamer.DefaultPrefix, "Put `string` between the number and the original name.")
	fs.BoolVar(&a.Dry, "dry", false, "Print what would be done, but don't rename files.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if len(env.Args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q, pass the directory with -path", cli.ErrInvalidArgs, env.Args)
	}
	if a.Path == "" {
		return fmt.Errorf("%w: missing required flag -path", cli.ErrInvalidArgs)
	}
	if strings.ContainsRune(a.Prefix, '/') || strings.ContainsRune(a.Prefix, filepath.Separator) {
		return fmt.Errorf("%w: -prefix %q contains a path separator, files must stay in their directory", cli.ErrInvalidArgs, a.Prefix)
	}

	l, err := renamer.List(a.Path)
	if err != nil {
		return err
	}
	if l.Skipped > 0 {
		logger.Warn(ctx, "skipped unreadable entries", slog.Int("count", l.Skipped))
	}
	renamer.Sort(l.Entries)
	ops := renamer.Plan(l.Entries, a.Prefix)

	if a.Dry {
		for _, op := range ops {
			fmt.Fprintln(env.Stdout, renamer.Describe(op))
		}
		fmt.Fprintf(env.Stdout, "Would rename %d files\n", len(ops))
		return nil
	}

	// Drop privileges if not in tests.
	dir := a.Path
	if realdir, err := filepath.EvalSymlinks(dir); err == nil {
		dir = realdir
	}
	restrict.DoUnlessTesting(ctx, landlock.RWDirs(dir))

	confirm := a.confirm
	if confirm == nil {
		confirm = renamer.PromptConfirmer{In: env.Stdin, Out: env.Stdout}
	}
	ok, err := confirm.Confirm(ctx, renamer.Question(a.Path, len(ops)))
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(env.Stdout, "exiting...")
		return nil
	}

	n, err := renamer.Apply(ctx, ops)
	if err != nil {
		if n > 0 {
			logger.Error(ctx, "stopped, earlier files keep their new names", slog.Int("renamed", n), slog.Int("total", len(ops)))
		}
		return err
	}

	fmt.Fprintf(env.Stdout, "Successfully renamed %d files\n", n)
	return nil
}
