package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/gamedata/internal/config"
	"github.com/mcncl/gamedata/internal/decoder"
	"github.com/mcncl/gamedata/internal/errors"
	"github.com/mcncl/gamedata/internal/parser"
)

// CLI defines the command-line interface
type CLI struct {
	Input    string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Config   string `help:"Path to config file. Defaults to the nearest .gamedata.yml." short:"c" type:"path"`
	Format   string `help:"Input format: tagged or flat." short:"f"`
	RowsPath string `help:"gjson path of the row array inside a response envelope." name:"rows-path"`
	Debug    bool   `help:"Log every decode fallback." short:"d"`

	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Get      GetCmd      `cmd:"" help:"Decode a single key."`
	Flatten  FlattenCmd  `cmd:"" help:"Strip type tags from tagged JSON."`
	Describe DescribeCmd `cmd:"" help:"List every key with its Go field name, tag and value."`
	Rows     RowsCmd     `cmd:"" help:"Decode the rows of a response envelope into records."`
}

// Context holds the runtime context passed to every command
type Context struct {
	Config *config.Config
	Input  string
	In     *os.File
	Out    io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: gamedata --help\n")
		os.Exit(1)
	}
}

// run parses args, loads configuration and executes the selected command.
func run(args []string, in *os.File, out io.Writer) error {
	var cli CLI
	k, err := kong.New(&cli,
		kong.Name("gamedata"),
		kong.Description("Decode game backend JSON into typed values"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)
	if err != nil {
		return err
	}

	kctx, err := k.Parse(args)
	if err != nil {
		return errors.NewInputError("invalid arguments", err)
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, cli.Format, cli.RowsPath, cli.Debug)
	if err != nil {
		return errors.NewInputError("failed to load configuration", err)
	}

	log, err := cfg.BuildLogger()
	if err != nil {
		return errors.NewInputError("failed to build logger", err)
	}
	defer func() { _ = log.Sync() }()
	decoder.SetLogger(log)

	return kctx.Run(&Context{
		Config: cfg,
		Input:  cli.Input,
		In:     in,
		Out:    out,
	})
}

// readInput reads JSON from the input file or, when none is given, from
// piped stdin.
func (c *Context) readInput() ([]byte, error) {
	if c.Input != "" {
		return parser.ReadFile(c.Input)
	}

	stdinInfo, err := c.In.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(c.In)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return data, nil
}

// writeLine writes s followed by a newline to the output.
func (c *Context) writeLine(s string) error {
	if _, err := fmt.Fprintln(c.Out, s); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}
