// Package logger provides leveled logging for git-agecrypt commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags or by the GIT_AGECRYPT_LOG environment variable. Output is prefixed
// with a colored level tag.
//
// # Output Stream
//
// Every message is written to stderr. Stdout of the filter subcommands
// (clean, smudge, textconv) carries file contents only.
//
// # Verbosity Levels
//
//   - --verbose or GIT_AGECRYPT_LOG=info: shows info messages
//   - --debug or GIT_AGECRYPT_LOG=debug: shows info and debug messages
//
// Warnings and errors are always shown.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Always shown
//	Logger.Errorf()         // Always shown
//	Logger.ErrorfAndReturn() // Always shown, returns the message as an error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Encrypting %s", path)
//
// Commands create a logger in the root PersistentPreRun and pass it to the
// workflows package.
package logger
