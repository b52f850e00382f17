package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/app"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/config"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/database/hive"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/database/mysql"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/database/postgres"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/logging"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/render"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/shell"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "phoenix-shell [flags] [SQL...]",
		Short: "Run SQL statements against a query engine and print the results as tables",
		Long: `Without arguments an interactive shell is started: statements end with ';',
and 'quit' or 'exit' leave the shell. With arguments, the arguments are joined
into a single statement which is executed once.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configFile, args)
		},
	}

	flags := cmd.Flags()
	// Everything after the first argument belongs to the statement.
	flags.SetInterspersed(false)
	flags.StringVarP(&configFile, "config", "c", "", "configuration file (default: ./config.properties or ~/.phoenix-shell/config.properties)")
	flags.String("url", "", "engine URL, e.g. postgresql://user@host:5432/db, hive://host:10000/default or mysql://user@host:3306/db")
	flags.StringP("user", "u", "", "user name, overrides the one in the URL")
	flags.Bool("ignore-all-null-column", false, "drop result columns that are null in every row")
	flags.String("null-text", "null", "text printed for null cells")
	flags.StringP("format", "f", "table", "output format: table, pretty, csv or tsv")
	flags.String("log-file", "phoenix-shell.log", "statement log file, empty to disable")
	flags.String("log-level", "info", "statement log level")

	cmd.AddCommand(newStorePasswordCommand())
	return cmd
}

func newStorePasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "store-password USER",
		Short: "Read a password from stdin and store it in the OS keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := config.StorePassword(args[0], pw); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password stored for %s\n", args[0])
			return nil
		},
	}
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

func run(cmd *cobra.Command, configFile string, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		fmt.Fprintln(stderr, "config.properties can not be read!")
		return &app.ErrConfig{Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "phoenix.url is not configured!")
		return &app.ErrConfig{Cause: err}
	}
	settings, err := newSettings(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return &app.ErrConfig{Cause: err}
	}

	conn, err := cfg.Connection()
	if err == nil {
		err = cfg.ResolvePassword(conn.Username)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return &app.ErrConfig{Cause: err}
	}
	if conn.Password == "" {
		conn.Password = cfg.Phoenix.Password
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return &app.ErrConfig{Cause: err}
	}
	defer logCloser.Close()

	driver, err := newDriver(conn.Driver)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	service := app.NewService(driver, logger, settings)
	if err := service.Connect(ctx, conn.DSN(), conn.DisplayString()); err != nil {
		fmt.Fprintln(stderr, "failed to get connection")
		return err
	}
	defer service.Disconnect()

	switch {
	case len(args) > 0:
		err = shell.RunBatch(ctx, service, args, stdout)
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		err = shell.RunScript(ctx, service, cmd.InOrStdin(), stdout, stderr)
		return err
	default:
		// The interactive shell owns ctrl+c; it cancels the running
		// statement instead of the process.
		stop()
		banner := fmt.Sprintf("Connected to %s", service.Target())
		err = shell.Run(context.Background(), service, cfg.History.File, banner)
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return err
}

func newSettings(cfg *config.Config) (app.Settings, error) {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return app.Settings{}, err
	}
	return app.Settings{
		Render: render.Options{
			PruneAllNullColumns: cfg.IgnoreAllNullColumn,
			NullText:            cfg.NullText,
		},
		Format: format,
	}, nil
}

func newDriver(name string) (database.Driver, error) {
	switch name {
	case "postgres":
		return postgres.New(), nil
	case "hive":
		return hive.New(), nil
	case "mysql":
		return mysql.New(), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", name)
	}
}
