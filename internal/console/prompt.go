package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter reads one line per prompt.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), out: out}
}

// ask writes prompt and returns the next line without its line ending.
// A final line without a newline is returned normally; io.EOF is only
// reported once nothing is left.
func (p *prompter) ask(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a y/n question and returns the trimmed, lower-cased answer.
func (p *prompter) confirm(prompt string) (string, error) {
	answer, err := p.ask(prompt)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(answer)), nil
}
