package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/notepub"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	notesDir     string
	outputDir    string
	templatesDir string
	noDeploy     bool
	noHistory    bool
	publishFirst bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notepub",
		Short: "Publish public Markdown notes as a static site",
		Long: `notepub turns the Markdown notes in NOTES_DIR whose front matter tags
include "public" into a static site in OUTPUT_DIR, deploys it, and
republishes whenever the notes change.

Configuration comes from the environment (NOTES_DIR, OUTPUT_DIR,
TEMPLATES_DIR, DEPLOY_COMMAND, DEPLOY_TIMEOUT, SITE_NAME, SITE_URL,
HISTORY_DB, ADDR, MAX_IMAGE_WIDTH, LOG_LEVEL); flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWatch,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&notesDir, "notes", "", "notes directory (overrides NOTES_DIR)")
	pf.StringVar(&outputDir, "output", "", "output directory (overrides OUTPUT_DIR)")
	pf.StringVar(&templatesDir, "templates", "", "templates directory (overrides TEMPLATES_DIR)")
	pf.BoolVar(&noDeploy, "no-deploy", false, "skip the deploy command")
	pf.BoolVar(&noHistory, "no-history", false, "do not record publish history")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Republish on every change to the notes directory (default)",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	watch.Flags().BoolVar(&publishFirst, "publish-first", false, "publish once before waiting for changes")
	root.Flags().AddFlagSet(watch.Flags())

	root.AddCommand(
		watch,
		&cobra.Command{
			Use:   "publish",
			Short: "Run a single publish cycle",
			Args:  cobra.NoArgs,
			RunE:  runPublish,
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the output directory locally while watching for changes",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newHistoryCmd(),
		&cobra.Command{
			Use:     "new <name>",
			Short:   "Create a new notepub project",
			Example: "  notepub new mynotes",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runNew(args[0])
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the notepub version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("notepub %s\n", version)
			},
		},
	)
	return root
}

// loadConfig merges the environment with command-line flags.
func loadConfig() notepub.Config {
	cfg := notepub.ConfigFromEnv()
	if notesDir != "" {
		cfg.NotesDir = notesDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if templatesDir != "" {
		cfg.TemplatesDir = templatesDir
	}
	if noDeploy {
		cfg.DeployCommand = nil
	}
	return cfg
}

func newApp() (*notepub.App, error) {
	logger := notepub.NewLogger(os.Stdout, notepub.EnvOr("LOG_LEVEL", "info"))
	opts := []notepub.Option{notepub.WithLog(logger)}
	if noHistory {
		opts = append(opts, notepub.WithoutHistory())
	}
	return notepub.New(loadConfig(), opts...)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()
	return app.Watch(ctx, publishFirst)
}

func runPublish(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()
	_, err = app.Publish(ctx)
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()
	return app.Serve(ctx)
}
