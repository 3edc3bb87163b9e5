package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/PolarWolf314/git-agecrypt/internal/ui"
	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

// startSpinner shows a spinner on stderr while a slow step runs, unless
// verbose or debug output is enabled. The returned function stops it.
func startSpinner(message string) func() {
	if Logger.Verbose || Logger.Debug {
		Logger.Infof("%s", message)
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	s.Suffix = " " + message
	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")
	s.Start()

	return s.Stop
}

// openSession discovers the repository of the working directory.
func openSession() (*workflows.Session, error) {
	return workflows.OpenSession(settings, Logger)
}

// ensureNewline returns s with exactly one trailing newline.
func ensureNewline(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprint(w, ensureNewline(ui.Success.Sprint("✓")+" "+fmt.Sprintf(format, args...)))
}

func printNothingToDo(w io.Writer, format string, args ...any) {
	fmt.Fprint(w, ensureNewline(ui.Muted.Sprint("nothing to do")+" "+fmt.Sprintf(format, args...)))
}

func printHint(w io.Writer, format string, args ...any) {
	fmt.Fprint(w, ensureNewline(ui.Info.Sprint("→")+" "+fmt.Sprintf(format, args...)))
}
