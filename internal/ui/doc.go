// Package ui provides semantic text formatting for git-agecrypt output.
//
// Formatters render with color on capable terminals and fall back to plain
// text decorations when NO_COLOR is set or the terminal lacks color:
//
//	ui.Code.Sprint("git-agecrypt init")        // `git-agecrypt init`
//	ui.Path.Sprint("secrets/db.env")           // secrets/db.env
//	ui.Recipient.Sprint("age1...")             // 'age1...'
//	ui.Muted.Sprint("not installed")           // (not installed)
//	ui.Mark(true)                              // ✓
//
// Only interactive commands use this package; the filter subcommands never
// write decorated text.
package ui
