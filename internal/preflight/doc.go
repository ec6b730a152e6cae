// Package preflight provides readiness checks for the filesystem paths
// kotoba depends on.
//
// These checks run in two contexts:
//   - The pipeline runner calls RunAll before processing levels and logs
//     a warning for each failed check. A failed check does not abort the
//     run; levels that hit the problem surface their own errors.
//   - The CLI "kotoba status" command renders the same results so path
//     problems are visible before either pass is started.
package preflight
