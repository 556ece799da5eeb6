package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// terminalPrompter implements categoriser.Prompter over stdin/stdout.
// Pressing enter accepts the suggested default; entering "-" declines.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *terminalPrompter) AskText(title, message, defaultValue string) (string, bool) {
	fmt.Fprintf(p.out, "\n== %s ==\n%s\n", title, message)
	if defaultValue != "" {
		fmt.Fprintf(p.out, "[%s] (enter to accept, - to skip): ", defaultValue)
	} else {
		fmt.Fprint(p.out, "(enter to skip): ")
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}

	answer := strings.TrimSpace(line)
	switch answer {
	case "-":
		return "", false
	case "":
		return defaultValue, defaultValue != ""
	default:
		return answer, true
	}
}
