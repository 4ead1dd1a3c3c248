// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build linux && !android

package restrict

import (
	"context"
	"log/slog"

	"go.astrophena.name/renamer/internal/logger"

	"github.com/landlock-lsm/go-landlock/landlock"
)

// Do restricts all goroutines of this program to [landlock.Rule]s. Kernels
// without Landlock support get the strongest restriction they can enforce.
// A failure is logged and the program continues unrestricted.
func Do(ctx context.Context, rules ...landlock.Rule) {
	if err := landlock.V5.BestEffort().Restrict(rules...); err != nil {
		logger.Warn(ctx, "sandboxing failed", slog.Any("err", err))
	}
}
