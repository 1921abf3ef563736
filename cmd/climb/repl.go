package main

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/midbel/cli"

	"github.com/midbel/climb/parser"
)

var replCmd = cli.Command{
	Name:    "repl",
	Summary: "parse expressions interactively",
	Handler: &ReplCmd{},
}

type ReplCmd struct {
	Format string
	ParserOptions
}

func (c *ReplCmd) Run(args []string) error {
	set := cli.NewFlagSet("repl")
	set.StringVar(&c.Format, "format", formatText, "output format: text, debug or tree")
	set.StringVar(&c.Grammar, "g", "", "grammar preset or grammar file")
	set.IntVar(&c.MaxDepth, "max-depth", 0, "maximum nesting of expressions")

	if err := set.Parse(args); err != nil {
		return err
	}
	lang, err := c.language()
	if err != nil {
		return err
	}
	options, log := c.options()
	defer log.Sync()

	_, err = tea.NewProgram(newRepl(lang, c.Format, options)).Run()
	return err
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

const maxHistory = 20

type entry struct {
	Input  string
	Output string
	Failed bool
}

type repl struct {
	lang    *parser.Language
	format  string
	options []parser.Option

	input   textinput.Model
	history []entry
}

func newRepl(lang *parser.Language, format string, options []parser.Option) repl {
	input := textinput.New()
	input.Prompt = promptStyle.Render(lang.Name + "> ")
	input.Placeholder = "expression"
	input.Focus()

	return repl{
		lang:    lang,
		format:  format,
		options: options,
		input:   input,
	}
}

func (r repl) Init() tea.Cmd {
	return textinput.Blink
}

func (r repl) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c", "ctrl+d", "esc":
			return r, tea.Quit
		case "enter":
			src := strings.TrimSpace(r.input.Value())
			if src == "" {
				return r, nil
			}
			r.input.Reset()
			r.history = append(r.history, r.eval(src))
			if n := len(r.history); n > maxHistory {
				r.history = r.history[n-maxHistory:]
			}
			return r, nil
		}
	}
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r repl) eval(src string) entry {
	e := entry{
		Input: src,
	}
	list, err := r.lang.Parse(src, r.options...)
	if err != nil {
		e.Output = err.Error()
		e.Failed = true
		return e
	}
	var str strings.Builder
	if r.format == formatJSON || r.format == formatCBOR {
		r.format = formatText
	}
	if err := printNodes(&str, list, r.format); err != nil {
		e.Output = err.Error()
		e.Failed = true
		return e
	}
	e.Output = strings.TrimRight(str.String(), "\n")
	return e
}

func (r repl) View() tea.View {
	var str strings.Builder
	for _, e := range r.history {
		str.WriteString(inputStyle.Render(e.Input))
		str.WriteString("\n")
		if e.Failed {
			str.WriteString(errorStyle.Render(e.Output))
		} else {
			str.WriteString(e.Output)
		}
		str.WriteString("\n")
	}
	str.WriteString(r.input.View())
	str.WriteString("\n")
	str.WriteString(helpStyle.Render("enter: parse - esc: quit"))
	str.WriteString("\n")
	return tea.NewView(str.String())
}
