// Package venv locates Python virtual environments on disk and computes
// the environment mutation that constitutes "activation".
//
// A virtual environment is just a directory: an interpreter and scripts
// under bin/ (Scripts/ on Windows) and a pyvenv.cfg metadata file at
// the root. Activation does not execute the venv's activate script —
// that script's entire observable effect is mutating the caller's
// environment (prepending the bin directory to PATH, exporting
// VIRTUAL_ENV, clearing PYTHONHOME), and this package performs the same
// mutation directly on the launcher process so that child processes
// resolve commands inside the venv.
//
// Nothing in this package fails the launch: a missing or malformed venv
// is reported to callers, who by contract proceed with the launch on
// the inherited environment anyway.
package venv
