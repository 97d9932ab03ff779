package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/lex/internal/convar"
	"github.com/bethropolis/lex/internal/core"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/types"
)

// Register adds the built-in variables and commands to reg.
func Register(reg *convar.Registry, api API, settings Settings) error {
	var errs []error
	addVar := func(name, def, help string, onChange convar.ChangeFunc) {
		if _, err := reg.RegisterVariable(name, def, help, onChange); err != nil {
			errs = append(errs, err)
		}
	}
	addCmd := func(name, help string, fn convar.CommandFunc) {
		if err := reg.RegisterCommand(name, help, fn); err != nil {
			errs = append(errs, err)
		}
	}

	addVar(VarSyntax, boolString(settings.Syntax), "enable syntax highlighting (0/1)",
		func(v *convar.Variable) error {
			api.Editor().Highlighter().SetEnabled(v.Bool())
			return nil
		})
	addVar(VarTrailing, boolString(settings.Trailing), "highlight trailing whitespace (0/1)", nil)
	addVar(VarDrawSpace, boolString(settings.DrawSpace), "show spaces and tabs (0/1)", nil)
	addVar(VarLineNo, boolString(settings.LineNumbers), "show line numbers (0/1)", nil)
	addVar(VarTabSize, strconv.Itoa(settings.TabWidth), "tab stop width in columns",
		func(v *convar.Variable) error {
			n, err := strconv.Atoi(v.String())
			if err != nil || n < 1 || n > 16 {
				return fmt.Errorf("tab size must be between 1 and 16")
			}
			api.Editor().SetTabWidth(n)
			return nil
		})

	addCmd("newline", "newline [lf|crlf]: show or set the line terminator", newlineCmd(api))
	addCmd("color", "color <element> <fg> [bg]: change a theme color", colorCmd(api))
	addCmd("theme", "theme [name]: show or switch the theme", themeCmd(api))
	addCmd("themes", "themes: list the available themes", func(args []string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(api.Themes().ListThemes(), ", "))
		return nil
	})
	addCmd("rule", "rule [name]: show or switch the highlight rule", ruleCmd(api))
	addCmd("goto", "goto <line>: jump to a line", gotoCmd(api))
	addCmd("s", "s /pattern/replacement/[g]: substitute on the current line", substituteCmd(api))
	addCmd("w", "w [path]: save the file", saveCmd(api))
	addCmd("q", "q: quit, refusing when there are unsaved changes", func(args []string) error {
		if api.Editor().IsModified() {
			return errors.New("unsaved changes (use q! to discard them)")
		}
		api.Quit()
		return nil
	})
	addCmd("q!", "q!: quit and discard changes", func(args []string) error {
		api.Quit()
		return nil
	})
	addCmd("wq", "wq: save and quit", func(args []string) error {
		if err := saveCmd(api)(args); err != nil {
			return err
		}
		api.Quit()
		return nil
	})
	addCmd("exec", "exec <file>: run a file of commands", func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: exec <file>")
		}
		return reg.ExecFile(args[0])
	})
	addCmd("help", "help [name]: describe a command or variable", helpCmd(reg, api))

	if len(errs) > 0 {
		logger.Warnf("commands: registration: %v", errors.Join(errs...))
	}
	return errors.Join(errs...)
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func newlineCmd(api API) convar.CommandFunc {
	return func(args []string) error {
		e := api.Editor()
		if len(args) == 0 {
			api.SetStatusMessage("newline = %s", e.GetBuffer().Newline())
			return nil
		}
		kind, err := types.ParseNewlineKind(args[0])
		if err != nil {
			return err
		}
		if e.SetNewlineKind(kind) {
			api.SetStatusMessage("Newline set to %s", kind)
		}
		return nil
	}
}

func colorCmd(api API) convar.CommandFunc {
	return func(args []string) error {
		if len(args) < 2 || len(args) > 3 {
			return errors.New("usage: color <element> <fg> [bg]")
		}
		bg := ""
		if len(args) == 3 {
			bg = args[2]
		}
		if err := api.Themes().Current().SetColor(args[0], args[1], bg); err != nil {
			return err
		}
		api.ThemeChanged()
		return nil
	}
}

func themeCmd(api API) convar.CommandFunc {
	return func(args []string) error {
		themes := api.Themes()
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", themes.Current().Name)
			return nil
		}
		name := strings.Join(args, " ")
		if err := themes.SetTheme(name); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", name, strings.Join(themes.ListThemes(), ", "))
		}
		api.ThemeChanged()
		api.SetStatusMessage("Theme set to: %s", themes.Current().Name)
		return nil
	}
}

func ruleCmd(api API) convar.CommandFunc {
	return func(args []string) error {
		e := api.Editor()
		if len(args) == 0 {
			name := e.RuleName()
			if name == "" {
				name = "none"
			}
			api.SetStatusMessage("rule = %s", name)
			return nil
		}
		name := strings.Join(args, " ")
		if strings.EqualFold(name, "none") {
			e.SetRule(nil)
			return nil
		}
		rule := api.Rules().Find(name)
		if rule == nil {
			return fmt.Errorf("no highlight rule named '%s'", name)
		}
		e.SetRule(rule)
		return nil
	}
}

func gotoCmd(api API) convar.CommandFunc {
	return func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: goto <line>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid line number '%s'", args[0])
		}
		api.Editor().GotoLine(n)
		return nil
	}
}

func substituteCmd(api API) convar.CommandFunc {
	return func(args []string) error {
		pattern, replacement, global, err := core.ParseSubstituteCommand(strings.Join(args, " "))
		if err != nil {
			return err
		}
		n, err := api.Editor().Replace(pattern, replacement, global)
		if err != nil {
			return err
		}
		if n == 0 {
			api.SetStatusMessage("Pattern not found: %s", pattern)
			return nil
		}
		api.SetStatusMessage("Replaced %d occurrence(s)", n)
		return nil
	}
}

func saveCmd(api API) convar.CommandFunc {
	return func(args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		e := api.Editor()
		if err := e.Save(path); err != nil {
			return err
		}
		api.SetStatusMessage("Buffer saved to %s", e.FilePath())
		return nil
	}
}

func helpCmd(reg *convar.Registry, api API) convar.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Commands: %s | Variables: %s",
				strings.Join(reg.Commands(), " "), strings.Join(reg.Variables(), " "))
			return nil
		}
		help, ok := reg.Help(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", convar.ErrUnknown, args[0])
		}
		api.SetStatusMessage("%s", help)
		return nil
	}
}
