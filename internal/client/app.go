package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
)

// command runs against the API with the arguments left after its name.
type command struct {
	usage string
	run   func(ctx context.Context, api adapter.APIClient, args []string) (any, error)
}

type App struct {
	api      adapter.APIClient
	out      io.Writer
	commands map[string]command

	logger *logger.Logger
}

func NewApp(api adapter.APIClient, out io.Writer, logger *logger.Logger) *App {
	return &App{
		api:      api,
		out:      out,
		commands: commands(),
		logger:   logger,
	}
}

// Run executes the command named by the first one or two words of args and
// prints its result as indented JSON. Plain strings are printed as is.
func (a *App) Run(ctx context.Context, args []string) error {
	name, rest, ok := a.lookup(args)
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, strings.Join(args, " "))
	}

	a.logger.Debug().Str("command", name).Strs("args", rest).Msg("running command")

	result, err := a.commands[name].run(ctx, a.api, rest)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return a.print(result)
}

// lookup matches two-word commands ("product get") before one-word ones.
func (a *App) lookup(args []string) (string, []string, bool) {
	if len(args) >= 2 {
		if _, ok := a.commands[args[0]+" "+args[1]]; ok {
			return args[0] + " " + args[1], args[2:], true
		}
	}
	if len(args) >= 1 {
		if _, ok := a.commands[args[0]]; ok {
			return args[0], args[1:], true
		}
	}
	return "", nil, false
}

func (a *App) print(result any) error {
	if s, ok := result.(string); ok {
		_, err := fmt.Fprintln(a.out, s)
		return err
	}

	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-16s %s\n", name, a.commands[name].usage)
	}
}
