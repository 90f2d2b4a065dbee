package main

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hpungsan/nexascope/internal/config"
	"github.com/hpungsan/nexascope/internal/diagnosis"
	"github.com/hpungsan/nexascope/internal/errors"
	"github.com/hpungsan/nexascope/internal/intake"
	"github.com/hpungsan/nexascope/internal/ops"
	"github.com/hpungsan/nexascope/internal/report"
	"github.com/hpungsan/nexascope/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, logger *zap.Logger, level zap.AtomicLevel) *cli.App {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &cli.App{
		Name:    "nexascope",
		Usage:   "Business health diagnostic",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				level.SetLevel(zapcore.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			tenureCmd(),
			planCmd(),
			previewCmd(),
			sessionCmd(db, cfg),
			purgeCmd(db, cfg),
			serveCmd(db, cfg, logger),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// answerFlags are the questionnaire flags shared by analyze and session start.
func answerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read answers from a JSON or YAML file (- for stdin)"},
		&cli.StringFlag{Name: "tenure", Aliases: []string{"t"}, Usage: `Time running the business, e.g. "6 meses", "2 años"`},
		&cli.IntFlag{Name: "days", Usage: "Tenure as a day count (overrides --tenure)"},
		&cli.StringFlag{Name: "activity", Aliases: []string{"a"}, Usage: "ACTIVE_WEEKLY|ACTIVE_SOMETIMES|PAUSED"},
		&cli.IntFlag{Name: "sales", Usage: "Sales in the last 90 days"},
		&cli.IntFlag{Name: "visits", Usage: "Visits in the last 30 days"},
		&cli.IntFlag{Name: "conversations", Usage: "Sales conversations in the last 30 days"},
		&cli.IntFlag{Name: "offers", Usage: "Offers sent in the last 30 days"},
		&cli.StringFlag{Name: "business", Aliases: []string{"b"}, Usage: "PHYSICAL_PRODUCT|SERVICE|DIGITAL_PRODUCT|SAAS"},
		&cli.StringFlag{Name: "sale-flow", Usage: "DIRECT_WEB_PURCHASE|TALK_BEFORE_CLOSE|DEPENDS"},
		&cli.StringFlag{Name: "outbound", Aliases: []string{"o"}, Usage: "NONE|LOW|MEDIUM|HIGH"},
	}
}

// readAnswers builds the raw answers from --file or from the answer flags.
func readAnswers(c *cli.Context) (intake.RawInput, error) {
	if path := c.String("file"); path != "" {
		return intake.ReadFile(path)
	}

	raw := intake.RawInput{
		Tenure:           c.String("tenure"),
		ActivityLevel:    c.String("activity"),
		Sales90d:         c.Int("sales"),
		Visits30d:        c.Int("visits"),
		Conversations30d: c.Int("conversations"),
		Offers30d:        c.Int("offers"),
		BusinessType:     c.String("business"),
		SaleFlow:         c.String("sale-flow"),
		OutboundLevel:    c.String("outbound"),
	}
	if c.IsSet("days") {
		days := c.Int("days")
		raw.DaysActive = &days
	}
	return raw, nil
}

// analyzeCmd creates the analyze command.
func analyzeCmd() *cli.Command {
	flags := append(answerFlags(),
		&cli.StringFlag{Name: "format", Value: "json", Usage: "Output format: json|markdown"},
		&cli.BoolFlag{Name: "preview-only", Usage: "Only output the preview"},
	)
	return &cli.Command{
		Name:  "analyze",
		Usage: "Diagnose a business snapshot (nothing is stored)",
		Flags: flags,
		Action: func(c *cli.Context) error {
			format := c.String("format")
			if format != "json" && format != "markdown" {
				return outputError(errors.NewInvalidRequest("format must be one of: json, markdown"))
			}

			raw, err := readAnswers(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Analyze(c.Context, ops.AnalyzeInput{Raw: raw})
			if err != nil {
				return outputError(err)
			}

			previewOnly := c.Bool("preview-only")
			if format == "markdown" {
				md := report.Preview(output.Preview)
				if !previewOnly {
					md += "\n" + report.Full(output.Full)
				}
				_, err := fmt.Fprint(os.Stdout, md)
				return err
			}

			if previewOnly {
				return outputJSON(output.Preview)
			}
			return outputJSON(output)
		},
	}
}

// tenureCmd creates the tenure command.
func tenureCmd() *cli.Command {
	return &cli.Command{
		Name:      "tenure",
		Usage:     "Convert a tenure expression into days",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			output, err := ops.NormalizeTenure(c.Context, ops.NormalizeTenureInput{Text: text})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// planCmd creates the plan command.
func planCmd() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Show the action plan for a business type",
		ArgsUsage: "<business_type>",
		Action: func(c *cli.Context) error {
			output, err := ops.Plan(c.Context, ops.PlanInput{BusinessType: strings.Join(c.Args().Slice(), " ")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// previewCmd creates the preview command.
func previewCmd() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Show the preview text for a diagnosis code",
		ArgsUsage: "<code>",
		Action: func(c *cli.Context) error {
			code := diagnosis.Code(strings.ToUpper(strings.TrimSpace(c.Args().First())))
			if !slices.Contains(diagnosis.Codes, code) {
				return outputError(errors.NewInvalidField("code", string(code), "unknown diagnosis code"))
			}
			return outputJSON(diagnosis.PreviewFor(code))
		},
	}
}

// sessionCmd creates the session command group.
func sessionCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	idAction := func(fn func(context.Context, *sql.DB, *config.Config, ops.SessionRef) (any, error)) cli.ActionFunc {
		return func(c *cli.Context) error {
			if err := requireDB(db); err != nil {
				return outputError(err)
			}
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("session id is required"))
			}
			output, err := fn(c.Context, db, cfg, ops.SessionRef{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		}
	}

	return &cli.Command{
		Name:  "session",
		Usage: "Gated analysis sessions (preview first, full analysis after unlock)",
		Subcommands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Analyze and store a new locked session",
				Flags: answerFlags(),
				Action: func(c *cli.Context) error {
					if err := requireDB(db); err != nil {
						return outputError(err)
					}
					raw, err := readAnswers(c)
					if err != nil {
						return outputError(err)
					}
					output, err := ops.StartSession(c.Context, db, cfg, ops.StartSessionInput{Raw: raw})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "view",
				Usage:     "Show a session",
				ArgsUsage: "<id>",
				Action: idAction(func(ctx context.Context, db *sql.DB, cfg *config.Config, ref ops.SessionRef) (any, error) {
					return ops.ViewSession(ctx, db, cfg, ref)
				}),
			},
			{
				Name:      "unlock",
				Usage:     "Unlock a session and show the full analysis",
				ArgsUsage: "<id>",
				Action: idAction(func(ctx context.Context, db *sql.DB, cfg *config.Config, ref ops.SessionRef) (any, error) {
					return ops.UnlockSession(ctx, db, cfg, ref)
				}),
			},
			{
				Name:      "report",
				Usage:     "Print the markdown report of an unlocked session",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if err := requireDB(db); err != nil {
						return outputError(err)
					}
					output, err := ops.SessionReport(c.Context, db, cfg, ops.SessionRef{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					_, err = fmt.Fprint(os.Stdout, output.Markdown)
					return err
				},
			},
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete old sessions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge sessions older than this (e.g., 12h, 7d); default is the session TTL"},
		},
		Action: func(c *cli.Context) error {
			if err := requireDB(db); err != nil {
				return outputError(err)
			}

			input := ops.PurgeInput{}
			if olderThan := c.String("older-than"); olderThan != "" {
				hours, err := parseAge(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanHours = &hours
			}

			output, err := ops.PurgeSessions(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Interface to listen on (default from config: 127.0.0.1)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config: 8787)"},
		},
		Action: func(c *cli.Context) error {
			if err := requireDB(db); err != nil {
				return outputError(err)
			}
			if cfg == nil {
				cfg = config.DefaultConfig()
			}

			bind := cfg.WebBind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := cfg.WebPort
			if c.IsSet("port") {
				port = c.Int("port")
			}
			if port <= 0 || port > 65535 {
				return outputError(errors.NewInvalidField("port", port, "must be between 1 and 65535"))
			}

			srv := web.NewServer(db, cfg, logger, Version, bind, port)
			return web.Run(srv, logger)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var sErr *errors.ScopeError
	if stderrors.As(err, &sErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// requireDB fails commands that need storage when none was opened.
func requireDB(db *sql.DB) error {
	if db == nil {
		return errors.NewInternal(fmt.Errorf("database not initialized"))
	}
	return nil
}

// parseAge parses "12h" or "7d" into hours.
func parseAge(s string) (int, error) {
	unit := 0
	var numStr string
	if n, ok := strings.CutSuffix(s, "h"); ok {
		numStr, unit = n, 1
	} else if n, ok := strings.CutSuffix(s, "d"); ok {
		numStr, unit = n, 24
	} else {
		return 0, fmt.Errorf("duration must end with 'h' (hours) or 'd' (days), e.g., 12h or 7d")
	}

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("duration must be non-negative")
	}
	return n * unit, nil
}
