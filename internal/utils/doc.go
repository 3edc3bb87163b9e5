// Package utils provides shared utility functions for git-agecrypt.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: writes through a temporary file and a rename
//   - IsRegularFile: checks a path references an existing regular file
//   - RemoveDirIfExists: removes a directory tree, tolerating absence
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - AppendUnique, Without: order-preserving set operations on string slices
//
// # Terminal Utilities
//
// Filters own stdin and stdout, so interactive input goes through the
// controlling terminal directly:
//   - ReadPassphraseFromTTY: reads a secret without echo
//   - ReadLineFromTTY: reads a visible value
//   - IsTTYAvailable: reports whether a terminal can be opened
package utils
