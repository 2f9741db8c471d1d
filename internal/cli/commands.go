package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/guardctl/internal/app"
	"github.com/samvad-hq/guardctl/internal/config"
	"github.com/spf13/cobra"
)

var categoryTitles = map[string]string{
	"global":       "Service lifecycle and statistics",
	"querylog":     "Query log",
	"upstream":     "Upstream DNS servers",
	"filtering":    "Filtering, filter lists and custom rules",
	"parental":     "Parental control",
	"safebrowsing": "Safe browsing",
	"safesearch":   "Safe search",
}

func (a *App) categoryCommand(category string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     category,
		Short:   categoryTitles[category],
		GroupID: "control",
	}
	for _, op := range app.Operations() {
		if op.Category == category {
			cmd.AddCommand(a.operationCommand(op))
		}
	}
	return cmd
}

func (a *App) operationCommand(op app.Operation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   op.Action,
		Short: op.Summary,
		Long:  fmt.Sprintf("%s (%s %s)", op.Summary, op.Descriptor.Method, op.Descriptor.Path),
	}

	var rulesFile string
	switch op.Arg {
	case app.ArgURL:
		cmd.Use += " <url>"
		cmd.Args = cobra.ExactArgs(1)
	case app.ArgRules:
		cmd.Use += " [rules]"
		cmd.Args = cobra.MaximumNArgs(1)
		cmd.Flags().StringVarP(&rulesFile, "file", "f", "", `read rules from file ("-" for stdin)`)
	default:
		cmd.Args = cobra.NoArgs
	}

	cmd.RunE = a.withController(func(cmd *cobra.Command, args []string) error {
		var arg string
		switch op.Arg {
		case app.ArgURL:
			arg = args[0]
		case app.ArgRules:
			rules, err := a.readRules(args, rulesFile)
			if err != nil {
				return err
			}
			arg = rules
		}

		resp, err := a.ctrl.Execute(cmd.Context(), op, arg)
		if err != nil {
			return err
		}
		return writeResponse(a.stdout, a.cfg.Output, resp)
	})
	return cmd
}

func (a *App) readRules(args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", fmt.Errorf("pass rules either as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file == "-":
		raw, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("read rules from stdin: %w", err)
		}
		return string(raw), nil
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read rules file: %w", err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("rules are required (argument or --file)")
	}
}

type operationView struct {
	ID       string `json:"id" yaml:"id"`
	Command  string `json:"command" yaml:"command"`
	Method   string `json:"method" yaml:"method"`
	Path     string `json:"path" yaml:"path"`
	Argument string `json:"argument,omitempty" yaml:"argument,omitempty"`
}

func (a *App) operationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "List every control operation and its endpoint",
		GroupID: "local",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ops := app.Operations()
			views := make([]operationView, 0, len(ops))
			for _, op := range ops {
				views = append(views, operationView{
					ID:       string(op.ID),
					Command:  op.Category + " " + op.Action,
					Method:   string(op.Descriptor.Method),
					Path:     op.Descriptor.Path,
					Argument: argName(op.Arg),
				})
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Output == config.OutputText {
				return writeTable(a.stdout, []string{"ID", "COMMAND", "METHOD", "PATH"}, func(row func(...string)) {
					for _, v := range views {
						row(v.ID, v.Command, v.Method, v.Path)
					}
				})
			}
			return writeValue(a.stdout, cfg.Output, views)
		},
	}
}

func (a *App) historyCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recently dispatched operations from the local journal",
		GroupID: "local",
		Args:    cobra.NoArgs,
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries (0 for all)")

	cmd.RunE = a.withController(func(*cobra.Command, []string) error {
		entries, err := a.ctrl.History(limit)
		if err != nil {
			return err
		}
		if a.cfg.Output != config.OutputText {
			return writeValue(a.stdout, a.cfg.Output, entries)
		}
		return writeTable(a.stdout, []string{"AT", "OPERATION", "STATUS", "MS", "ERROR"}, func(row func(...string)) {
			for _, e := range entries {
				status := "-"
				if e.StatusCode != 0 {
					status = fmt.Sprint(e.StatusCode)
				}
				row(e.At.Format("2006-01-02 15:04:05"), e.Operation, status, fmt.Sprint(e.DurationMs), e.Error)
			}
		})
	})
	return cmd
}

func argName(k app.ArgKind) string {
	switch k {
	case app.ArgURL:
		return "url"
	case app.ArgRules:
		return "rules"
	default:
		return ""
	}
}
