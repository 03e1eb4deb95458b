// Package launcher runs the application sub-process and implements the
// terminal pause.
//
// The runner is deliberately thin: it builds one exec.Cmd with inherited
// stdio, blocks until the child exits, and reports the child's exit code
// without interpreting it. Output is never captured or filtered — the
// whole error-handling contract of the launcher is "do not swallow
// output, keep the window open", and the pause is what keeps the window
// open.
package launcher
