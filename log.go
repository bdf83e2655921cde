// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type accepted by Runtime and Component.
// It is an alias for the logiface logger instantiated with stumpy's JSON
// event, the same backend the ecosystem uses as its "model" logger.
type Logger = logiface.Logger[*stumpy.Event]

// defaultLogger is used by Runtime/Component when no WithRuntimeLogger or
// WithComponentLogger option is supplied. It writes leveled JSON to stderr via stumpy's default writer.
func defaultLogger() *Logger {
	return stumpy.L.New(stumpy.L.WithStumpy())
}

// nopLogger silences logging entirely — useful for tests that would
// otherwise be noisy on every component start/stop.
func nopLogger() *Logger {
	return stumpy.L.New(stumpy.L.WithStumpy(), stumpy.L.WithLevel(stumpy.L.LevelDisabled()))
}
