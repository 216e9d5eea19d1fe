// Package layout provides the layout scheduling core for a retained-mode
// UI framework: dirty-node tracking with bounded measure/arrange passes,
// and the single-threaded dispatcher and priority job runner those passes
// ride on.
//
// Users import this single package for the complete public API:
// the Manager, the Dispatcher, the Layoutable node contract, and the
// geometry types.
package layout
