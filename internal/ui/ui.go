package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter is the user-prompt capability. Hosts supply an implementation
// appropriate to their environment; all three calls block until the user
// responds (or return immediately in headless hosts).
type Prompter interface {
	// Notify shows a blocking message with no response.
	Notify(message string)
	// Confirm asks a yes/no question and reports the answer.
	Confirm(question string) bool
	// Prompt asks for free-text input; "" means the user provided nothing.
	Prompt(question string) string
}

// ConsolePrompter implements Prompter over a terminal.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

func (p *ConsolePrompter) Notify(message string) {
	fmt.Fprintln(p.out, message)
}

func (p *ConsolePrompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *ConsolePrompter) Prompt(question string) string {
	fmt.Fprintf(p.out, "%s ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
