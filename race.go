// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package flowrt

// RaceEnabled is true when the race detector is active. Tests can consult
// it to skip assertions on wall-clock bounds, which the race detector's
// instrumentation overhead can blow; no test in this module reads it.
const RaceEnabled = true
