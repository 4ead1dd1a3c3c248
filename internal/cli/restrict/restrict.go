// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package restrict

import (
	"context"
	"testing"

	"github.com/landlock-lsm/go-landlock/landlock"
)

// DoUnlessTesting applies rules like [Do], unless the program is running
// under 'go test'.
func DoUnlessTesting(ctx context.Context, rules ...landlock.Rule) {
	if !testing.Testing() {
		Do(ctx, rules...)
	}
}
