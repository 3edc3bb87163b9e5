package secrets

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"filippo.io/age"
)

const (
	stanzaPrefix   = "-> "
	columnsPerLine = 64
)

// pluginRecipient wraps the file key for every recipient of one plugin in a
// single recipient-v1 session with the age-plugin-<name> binary.
type pluginRecipient struct {
	name       string
	recipients []string
	prompter   Prompter

	// command builds the plugin process. Defaults to execPlugin.
	command func(name string) *exec.Cmd
}

func execPlugin(name string) *exec.Cmd {
	return exec.Command("age-plugin-"+name, "--age-plugin=recipient-v1")
}

// Wrap runs the plugin session and returns the stanzas it produced.
func (p *pluginRecipient) Wrap(fileKey []byte) ([]*age.Stanza, error) {
	command := p.command
	if command == nil {
		command = execPlugin
	}
	cmd := command(p.name)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("age-plugin-%s: %w", p.name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("age-plugin-%s: %w", p.name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start age-plugin-%s: %w", p.name, err)
	}

	stanzas, sessionErr := p.session(newStanzaConn(stdout, stdin), fileKey)
	if sessionErr != nil {
		// Nobody reads stdout any more; a plugin still writing would block Wait.
		_ = cmd.Process.Kill()
	}

	stdin.Close()
	if err := cmd.Wait(); err != nil && sessionErr == nil {
		sessionErr = fmt.Errorf("age-plugin-%s exited: %w", p.name, err)
	}
	if sessionErr != nil {
		return nil, sessionErr
	}
	return stanzas, nil
}

func (p *pluginRecipient) session(conn *stanzaConn, fileKey []byte) ([]*age.Stanza, error) {
	for _, r := range p.recipients {
		if err := conn.write("add-recipient", []string{r}, nil); err != nil {
			return nil, err
		}
	}
	if err := conn.write("wrap-file-key", nil, fileKey); err != nil {
		return nil, err
	}
	if err := conn.write("done", nil, nil); err != nil {
		return nil, err
	}

	ui := p.prompter.ClientUI()
	var stanzas []*age.Stanza
	var pluginErrs []error

	for {
		s, err := conn.read()
		if err != nil {
			return nil, fmt.Errorf("age-plugin-%s: %w", p.name, err)
		}

		switch s.Type {
		case "recipient-stanza":
			if len(s.Args) < 2 {
				return nil, fmt.Errorf("age-plugin-%s: malformed recipient stanza", p.name)
			}
			if s.Args[0] != "0" {
				return nil, fmt.Errorf("age-plugin-%s: unexpected file index %s", p.name, s.Args[0])
			}
			stanzas = append(stanzas, &age.Stanza{Type: s.Args[1], Args: s.Args[2:], Body: s.Body})
			err = conn.write("ok", nil, nil)
		case "msg":
			if uiErr := ui.DisplayMessage(p.name, string(s.Body)); uiErr != nil {
				err = conn.write("fail", nil, nil)
			} else {
				err = conn.write("ok", nil, nil)
			}
		case "request-public", "request-secret":
			value, uiErr := ui.RequestValue(p.name, string(s.Body), s.Type == "request-secret")
			if uiErr != nil {
				err = conn.write("fail", nil, nil)
			} else {
				err = conn.write("ok", nil, []byte(value))
			}
		case "confirm":
			err = p.confirm(conn, ui.Confirm, s)
		case "labels":
			err = conn.write("ok", nil, nil)
		case "error":
			pluginErrs = append(pluginErrs, errors.New(string(s.Body)))
			err = conn.write("ok", nil, nil)
		case "done":
			if len(pluginErrs) > 0 {
				return nil, fmt.Errorf("age-plugin-%s: %w", p.name, errors.Join(pluginErrs...))
			}
			if len(stanzas) == 0 {
				return nil, fmt.Errorf("age-plugin-%s returned no recipient stanzas", p.name)
			}
			return stanzas, nil
		default:
			err = conn.write("unsupported", nil, nil)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *pluginRecipient) confirm(conn *stanzaConn, confirm func(name, prompt, yes, no string) (bool, error), s *age.Stanza) error {
	if len(s.Args) == 0 {
		return conn.write("fail", nil, nil)
	}
	yes, err := base64.RawStdEncoding.Strict().DecodeString(s.Args[0])
	if err != nil {
		return conn.write("fail", nil, nil)
	}
	var no []byte
	if len(s.Args) > 1 {
		if no, err = base64.RawStdEncoding.Strict().DecodeString(s.Args[1]); err != nil {
			return conn.write("fail", nil, nil)
		}
	}

	choseYes, err := confirm(p.name, string(s.Body), string(yes), string(no))
	if err != nil {
		return conn.write("fail", nil, nil)
	}
	if choseYes {
		return conn.write("ok", []string{"yes"}, nil)
	}
	return conn.write("ok", []string{"no"}, nil)
}

// stanzaConn reads and writes age stanzas over a plugin's stdio.
type stanzaConn struct {
	r *bufio.Reader
	w io.Writer
}

func newStanzaConn(r io.Reader, w io.Writer) *stanzaConn {
	return &stanzaConn{r: bufio.NewReader(r), w: w}
}

func (c *stanzaConn) write(typ string, args []string, body []byte) error {
	var b strings.Builder
	b.WriteString(stanzaPrefix)
	b.WriteString(typ)
	for _, a := range args {
		b.WriteString(" ")
		b.WriteString(a)
	}
	b.WriteString("\n")

	encoded := base64.RawStdEncoding.EncodeToString(body)
	for len(encoded) >= columnsPerLine {
		b.WriteString(encoded[:columnsPerLine])
		b.WriteString("\n")
		encoded = encoded[columnsPerLine:]
	}
	b.WriteString(encoded)
	b.WriteString("\n")

	if _, err := io.WriteString(c.w, b.String()); err != nil {
		return fmt.Errorf("failed to write %s stanza: %w", typ, err)
	}
	return nil
}

func (c *stanzaConn) read() (*age.Stanza, error) {
	header, err := c.readLine()
	if err != nil {
		return nil, fmt.Errorf("failed to read stanza: %w", err)
	}
	if !strings.HasPrefix(header, stanzaPrefix) {
		return nil, fmt.Errorf("malformed stanza header %q", header)
	}
	fields := strings.Split(strings.TrimPrefix(header, stanzaPrefix), " ")
	if fields[0] == "" {
		return nil, fmt.Errorf("malformed stanza header %q", header)
	}

	var encoded strings.Builder
	for {
		line, err := c.readLine()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s stanza body: %w", fields[0], err)
		}
		if len(line) > columnsPerLine {
			return nil, fmt.Errorf("stanza body line too long in %s", fields[0])
		}
		encoded.WriteString(line)
		if len(line) < columnsPerLine {
			break
		}
	}

	body, err := base64.RawStdEncoding.Strict().DecodeString(encoded.String())
	if err != nil {
		return nil, fmt.Errorf("malformed %s stanza body: %w", fields[0], err)
	}

	return &age.Stanza{Type: fields[0], Args: fields[1:], Body: body}, nil
}

func (c *stanzaConn) readLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}
