// SPDX-License-Identifier: EPL-2.0

// Package report turns a similarity score and its breakdown into the
// Result returned to callers: a verbal interpretation, down-sampled PSD
// series for plotting and per-input feature statistics.
//
// Result marshals to the JSON document served by the HTTP adapter and can
// render itself as a console report with Result.Text.
package report
