// Package prompt читает ввод пользователя. Секреты с терминала читаются без эха.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd дескриптор терминала, -1 если ввод не с терминала.
	fd int
}

func New(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  fd,
	}
}

func Stdio() *Prompter {
	return New(os.Stdin, os.Stdout)
}

func (p *Prompter) Out() io.Writer {
	return p.out
}

// Line читает строку без завершающего перевода строки. io.EOF возвращается,
// только если ничего не прочитано.
func (p *Prompter) Line(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) Secret(label string) (string, error) {
	if p.fd < 0 {
		return p.Line(label)
	}

	fmt.Fprint(p.out, label)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения: %w", err)
	}

	return string(secret), nil
}

// SecretTwice запрашивает секрет с подтверждением.
func (p *Prompter) SecretTwice(label, confirmLabel string) (string, error) {
	first, err := p.Secret(label)
	if err != nil {
		return "", err
	}

	second, err := p.Secret(confirmLabel)
	if err != nil {
		return "", err
	}

	if first != second {
		return "", errors.New("значения не совпадают")
	}

	return first, nil
}

// Default читает строку и подставляет def, если ввод пустой.
func (p *Prompter) Default(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s[%s] ", label, def)
	}

	v, err := p.Line(label)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return def, nil
	}

	return v, nil
}

func (p *Prompter) Confirm(label string) (bool, error) {
	v, err := p.Line(label + " [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "д", "да":
		return true, nil
	}
	return false, nil
}
