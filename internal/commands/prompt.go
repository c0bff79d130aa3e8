package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"ltask/internal/app"
	"ltask/internal/config"
	"ltask/internal/service"
)

// linePrompter asks questions one line at a time. End of input cancels a
// text prompt and declines a confirmation; an empty line keeps the default.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// RequestText implements app.Prompter.
func (p *linePrompter) RequestText(label, defaultValue string) (string, bool) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s] ", label, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s ", label)
	}
	line, ok := p.readLine()
	if !ok {
		return "", false
	}
	if line == "" {
		return defaultValue, true
	}
	return line, true
}

// Confirm implements app.Confirmer.
func (p *linePrompter) Confirm(label string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", label)
	line, ok := p.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// newApp builds the interaction handler for one command run.
func newApp(cfg *config.Config, svc service.Service, logger zerolog.Logger, notifier app.Notifier) *app.App {
	return app.New(svc, app.Options{
		Placeholder: cfg.Settings.Placeholder,
		Notifier:    notifier,
		Logger:      logger,
	})
}

// errorNotifier reports notices as CLI errors.
func errorNotifier(errOut io.Writer) app.Notifier {
	return app.NotifierFunc(func(message string) {
		fmt.Fprintf(errOut, "error: %s\n", message)
	})
}
