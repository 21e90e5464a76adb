package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/plank/internal/board"
	"github.com/hpungsan/plank/internal/codec"
	"github.com/hpungsan/plank/internal/config"
	"github.com/hpungsan/plank/internal/errors"
	"github.com/hpungsan/plank/internal/export"
	"github.com/hpungsan/plank/internal/lint"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "plank",
		Usage:   "Markdown kanban board tool",
		Version: Version,
		Commands: []*cli.Command{
			initCmd(cfg),
			fmtCmd(),
			checkCmd(),
			exportCmd(cfg),
			tagsCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// initCmd creates the init command.
func initCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a new board file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Board title (defaults to the file name)"},
			&cli.StringFlag{Name: "columns", Aliases: []string{"c"}, Value: "To do,Doing,Done", Usage: "Comma-separated column titles"},
		},
		Action: func(c *cli.Context) error {
			path, err := boardPathArg(c)
			if err != nil {
				return outputError(err)
			}
			if _, err := os.Stat(path); err == nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("file already exists: %s", path)))
			}

			doc := board.NewDocument()
			doc.Density = board.ParseDensity(cfg.DefaultDensity)
			if title := strings.TrimSpace(c.String("title")); title != "" {
				doc.Title = title
			}
			for _, title := range splitList(c.String("columns")) {
				doc.Columns = append(doc.Columns, board.Column{
					ID:    board.NewID(),
					Title: title,
				})
			}

			if err := os.WriteFile(path, []byte(codec.Serialize(doc)), 0644); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]any{"path": path, "columns": len(doc.Columns)})
		},
	}
}

// fmtCmd creates the fmt command.
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Rewrite a board file in canonical form",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "check", Usage: "Exit nonzero if the file is not canonical, without writing"},
			&cli.BoolFlag{Name: "stdout", Usage: "Print the canonical text instead of writing the file"},
		},
		Action: func(c *cli.Context) error {
			path, raw, doc, err := readBoardFile(c)
			if err != nil {
				return outputError(err)
			}

			canonical := codec.Serialize(doc)
			if c.Bool("stdout") {
				fmt.Print(canonical)
				return nil
			}
			if c.Bool("check") {
				if canonical != raw {
					return cli.Exit(fmt.Sprintf("%s is not canonical", path), 1)
				}
				return outputJSON(map[string]any{"path": path, "canonical": true})
			}
			if canonical != raw {
				if err := os.WriteFile(path, []byte(canonical), 0644); err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			return outputJSON(map[string]any{"path": path, "changed": canonical != raw})
		},
	}
}

// checkCmd creates the check command.
func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a board file and report advisory lint findings",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			path, _, doc, err := readBoardFile(c)
			if err != nil {
				// A file without the board marker is a routine answer,
				// not a failure.
				if errors.Is(err, errors.CodeNotBoard) {
					return outputJSON(map[string]any{"path": path, "board": false})
				}
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"path":  path,
				"board": true,
				"lint":  lint.Check(doc),
			})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Render a board file as a standalone HTML page",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "Output path (.html)"},
		},
		Action: func(c *cli.Context) error {
			_, _, doc, err := readBoardFile(c)
			if err != nil {
				return outputError(err)
			}

			outPath := c.String("output")
			if err := validateExportPath(outPath, cfg); err != nil {
				return outputError(err)
			}

			page, err := export.HTML(doc)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := os.WriteFile(outPath, []byte(page), 0644); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]any{"output": outPath})
		},
	}
}

// tagsCmd creates the tags command.
func tagsCmd() *cli.Command {
	return &cli.Command{
		Name:      "tags",
		Usage:     "List the distinct tags used on a board",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			_, _, doc, err := readBoardFile(c)
			if err != nil {
				return outputError(err)
			}
			tags := doc.AllTags()
			if tags == nil {
				tags = []string{}
			}
			return outputJSON(map[string]any{"tags": tags})
		},
	}
}

// boardPathArg returns the required positional file argument.
func boardPathArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", errors.NewInvalidRequest("a board file argument is required")
	}
	return c.Args().First(), nil
}

// readBoardFile loads and parses the board file named by the first
// positional argument, returning the path, raw text, and parsed document.
func readBoardFile(c *cli.Context) (string, string, *board.Document, error) {
	path, err := boardPathArg(c)
	if err != nil {
		return "", "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, "", nil, errors.NewInvalidRequest(fmt.Sprintf("cannot read %s: %v", path, err))
	}
	doc, err := codec.Parse(string(data))
	if err != nil {
		return path, "", nil, err
	}
	return path, string(data), doc, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if pErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", pErr.Code, pErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// splitList splits a comma-separated string into trimmed non-empty parts.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
