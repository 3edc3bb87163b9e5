package utils

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// ttyPath returns the controlling terminal device for the current platform.
func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}

// ReadPassphraseFromTTY prompts for a secret on /dev/tty (or CON on Windows)
// without echoing input. Filters run with stdin bound to the file contents,
// so prompts never read from stdin.
func ReadPassphraseFromTTY(prompt string) ([]byte, error) {
	tty, err := os.OpenFile(ttyPath(), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for passphrase input: %w", ttyPath(), err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", ttyPath())
	}

	fmt.Fprint(tty, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(tty)

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadLineFromTTY prompts for a visible value on the terminal.
func ReadLineFromTTY(prompt string) (string, error) {
	tty, err := os.OpenFile(ttyPath(), os.O_RDWR, 0)
	if err != nil {
		return "", fmt.Errorf("cannot open %s for input: %w", ttyPath(), err)
	}
	defer tty.Close()

	fmt.Fprint(tty, prompt)
	line, err := bufio.NewReader(tty).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read from TTY: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// IsTTYAvailable returns true if /dev/tty (or CON on Windows) is available for reading.
func IsTTYAvailable() bool {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return false
	}
	defer tty.Close()

	return term.IsTerminal(int(tty.Fd()))
}
