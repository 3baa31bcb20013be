package client

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

type terminalPrompter struct {
	in  *os.File
	out io.Writer

	// lines is used when in is not a terminal, e.g. a pipe in scripts.
	lines *bufio.Reader
}

// NewTerminalPrompter reads passwords from in, writing prompts to out.
func NewTerminalPrompter(in *os.File, out io.Writer) Prompter {
	return &terminalPrompter{in: in, out: out}
}

func (p *terminalPrompter) ReadPassword(prompt string) ([]byte, error) {
	fmt.Fprint(p.out, prompt)

	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		return pw, nil
	}

	if p.lines == nil {
		p.lines = bufio.NewReader(p.in)
	}
	line, err := p.lines.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, fmt.Errorf("read password: %w", err)
	}
	pw := bytes.Clone(bytes.TrimRight(line, "\r\n"))
	clear(line)
	return pw, nil
}
