// Package pipeline orchestrates the batch run: single-threaded collection of
// eligible files, static partitioning across a fixed worker pool, the
// per-file conversion state machine, and aggregate statistics.
//
// Two deliberate asymmetries: only the first worker slice drives progress
// output (keeps the progress bar from interleaving), and external invocations
// carry no timeout. Cancellation is cooperative, checked between items and
// never mid-conversion, so an interrupted run leaves every touched file
// either fully committed or untouched.
package pipeline
