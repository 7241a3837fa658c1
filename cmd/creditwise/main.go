package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/carson-networks/creditwise/internal/model"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

const (
	flagDebug         = "debug"
	flagFile          = "file"
	flagFormat        = "format"
	flagCategoryModel = "category-model"
	flagDefaultModel  = "default-model"
	flagRules         = "rules"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "creditwise",
		Usage:     "Score bank transactions offline",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:  "score",
				Usage: "Score a transactions file and print the report",
				Flags: scoreFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runScore(cmd, stdout, stderr)
				},
			},
		},
	}
}

// scoreFlags builds fresh flags on every call; flag values are stateful.
func scoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     flagFile,
			Aliases:  []string{"f"},
			Usage:    "Transactions file, JSON or CSV with date,description,amount columns",
			Required: true,
		},
		&cli.StringFlag{
			Name:  flagFormat,
			Usage: "Output format [json, yaml]",
			Value: formatJSON,
		},
		&cli.StringFlag{
			Name:    flagCategoryModel,
			Usage:   "Path to the category model artifact",
			Value:   "models/category_model.json",
			Sources: cli.EnvVars("CATEGORY_MODEL_PATH"),
		},
		&cli.StringFlag{
			Name:    flagDefaultModel,
			Usage:   "Path to the probability of default model artifact",
			Value:   "models/pd_model.json",
			Sources: cli.EnvVars("DEFAULT_MODEL_PATH"),
		},
		&cli.StringFlag{
			Name:    flagRules,
			Usage:   "Path to a YAML keyword rules file (optional)",
			Sources: cli.EnvVars("KEYWORD_RULES_PATH"),
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "Log at debug level and dump the full report to stderr",
		},
	}
}

func newLogger(out io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func runScore(cmd *cli.Command, stdout, stderr io.Writer) error {
	format := cmd.String(flagFormat)
	if format == "yml" {
		format = formatYAML
	}
	if format != formatJSON && format != formatYAML {
		return fmt.Errorf("unsupported format %q", format)
	}

	debug := cmd.Bool(flagDebug)
	logger := newLogger(stderr, debug)

	txns, err := readTransactionsFile(cmd.String(flagFile))
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		return fmt.Errorf("no transactions in %s", cmd.String(flagFile))
	}
	logger.WithField("count", len(txns)).Debug("Score.read.complete")

	models := model.Load(model.Paths{
		CategoryModel: cmd.String(flagCategoryModel),
		DefaultModel:  cmd.String(flagDefaultModel),
		KeywordRules:  cmd.String(flagRules),
	}, logger)

	report := models.Pipeline(logger).Score(txns)
	if debug {
		spew.Fdump(stderr, report.Features, report.Risk, report.Score)
	}

	return encode(stdout, format, newScorecard(report))
}
