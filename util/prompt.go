package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks questions on Out and reads the answers from In.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Std prompts on the terminal.
var Std = &Prompter{In: os.Stdin, Out: os.Stdout}

func (p *Prompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	response, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// String asks for a value, returning def for an empty answer or a closed input.
func (p *Prompter) String(prompt string, def string) string {
	fmt.Fprintf(p.Out, "%s (%s): ", prompt, def)

	response, err := p.readLine()
	if err != nil || response == "" {
		return def
	}
	return response
}

// YN asks a yes/no question, returning def for an empty answer or a closed input.
func (p *Prompter) YN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(p.Out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(p.Out, "%s (y/N): ", prompt)
	}

	response, err := p.readLine()
	if err != nil || response == "" {
		return def
	}
	return strings.ToLower(response) == "y"
}

func PromptString(prompt string, def string) string {
	return Std.String(prompt, def)
}

func PromptYN(prompt string, def bool) bool {
	return Std.YN(prompt, def)
}
