// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package renamer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the user whether to proceed.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConfirmFunc is a function type that implements the [Confirmer] interface.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

// Confirm calls f(ctx, question).
func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

// PromptConfirmer writes the question to Out and reads a single line from In.
// The read blocks until a line is available; it has no timeout.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements the [Confirmer] interface. End of input without an
// answer counts as no.
func (p PromptConfirmer) Confirm(_ context.Context, question string) (bool, error) {
	if _, err := fmt.Fprintln(p.Out, question); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative reply: "y" in any case,
// with surrounding whitespace ignored.
func IsYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// Question returns the confirmation question for renaming n files in dir.
func Question(dir string, n int) string {
	return fmt.Sprintf("The directory \"%s\" has %d files, are you sure you want to continue (y/n)?", dir, n)
}
