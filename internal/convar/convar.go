// internal/convar/convar.go
package convar

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/bethropolis/lex/internal/logger"
)

var (
	ErrUnknown   = errors.New("unknown command or variable")
	ErrDuplicate = errors.New("name already registered")
)

// CommandFunc runs a command with its arguments (the name excluded).
type CommandFunc func(args []string) error

// ChangeFunc is called after a variable takes a new value. Returning an
// error restores the previous value.
type ChangeFunc func(v *Variable) error

// Variable is a named string setting with typed accessors.
type Variable struct {
	Name     string
	Help     string
	Default  string
	value    string
	onChange ChangeFunc
}

func (v *Variable) String() string { return v.value }

// Int returns the value as an integer, 0 if it does not parse.
func (v *Variable) Int() int {
	n, err := strconv.Atoi(v.value)
	if err != nil {
		return 0
	}
	return n
}

// Bool reports whether the value is a non-zero integer or a true word.
func (v *Variable) Bool() bool {
	if b, err := strconv.ParseBool(v.value); err == nil {
		return b
	}
	switch strings.ToLower(v.value) {
	case "on", "yes":
		return true
	}
	return v.Int() != 0
}

// Set stores value and runs the change hook.
func (v *Variable) Set(value string) error {
	old := v.value
	v.value = value
	if v.onChange != nil {
		if err := v.onChange(v); err != nil {
			v.value = old
			return fmt.Errorf("%s: %w", v.Name, err)
		}
	}
	return nil
}

type entry struct {
	name string
	help string
	cmd  CommandFunc
	v    *Variable
}

// Registry holds the configuration commands and variables, in registration order.
type Registry struct {
	entries map[string]*entry
	order   []*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// RegisterCommand adds a command.
func (r *Registry) RegisterCommand(name, help string, fn CommandFunc) error {
	if fn == nil {
		return fmt.Errorf("command %q has no function", name)
	}
	return r.add(&entry{name: name, help: help, cmd: fn})
}

// RegisterVariable adds a variable holding def. The change hook is not run
// for the default.
func (r *Registry) RegisterVariable(name, def, help string, onChange ChangeFunc) (*Variable, error) {
	v := &Variable{Name: name, Help: help, Default: def, value: def, onChange: onChange}
	if err := r.add(&entry{name: name, help: help, v: v}); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Registry) add(e *entry) error {
	if e.name == "" {
		return errors.New("empty name")
	}
	if _, ok := r.entries[e.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.name)
	}
	r.entries[e.name] = e
	r.order = append(r.order, e)
	return nil
}

// Variable returns the named variable, or nil.
func (r *Registry) Variable(name string) *Variable {
	if e, ok := r.entries[name]; ok {
		return e.v
	}
	return nil
}

// Commands returns command names in registration order.
func (r *Registry) Commands() []string {
	var names []string
	for _, e := range r.order {
		if e.cmd != nil {
			names = append(names, e.name)
		}
	}
	return names
}

// Variables returns variable names in registration order.
func (r *Registry) Variables() []string {
	var names []string
	for _, e := range r.order {
		if e.v != nil {
			names = append(names, e.name)
		}
	}
	return names
}

// Help returns the help text for name.
func (r *Registry) Help(name string) (string, bool) {
	e, ok := r.entries[name]
	if !ok {
		return "", false
	}
	return e.help, true
}

// Execute runs one configuration line: "name args..." for a command,
// "name value" to set a variable or "name" to query it. Blank lines and
// lines starting with '#' do nothing. The returned string is a message
// for the user, possibly empty.
func (r *Registry) Execute(line string) (string, error) {
	args, err := splitLine(line)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}

	e, ok := r.entries[args[0]]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknown, args[0])
	}
	if e.cmd != nil {
		return "", e.cmd(args[1:])
	}
	if len(args) == 1 {
		return fmt.Sprintf("%s = %q", e.name, e.v.value), nil
	}
	if err := e.v.Set(strings.Join(args[1:], " ")); err != nil {
		return "", err
	}
	logger.DebugTagf("convar", "%s = %q", e.name, e.v.value)
	return "", nil
}

// ExecFile executes every line of the file at path. Failing lines are
// logged and reported together; the rest still run.
func (r *Registry) ExecFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening '%s': %w", path, err)
	}
	defer f.Close()

	var errs []error
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		if _, err := r.Execute(scanner.Text()); err != nil {
			logger.Warnf("%s:%d: %v", path, n, err)
			errs = append(errs, fmt.Errorf("%s:%d: %w", path, n, err))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading '%s': %w", path, err))
	}
	return errors.Join(errs...)
}

// splitLine tokenizes a line with shell quoting. Only whole lines can be
// comments, so values such as "#ff0000" need no quoting.
func splitLine(line string) ([]string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}
	args, err := shellwords.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", line, err)
	}
	return args, nil
}
