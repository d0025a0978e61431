// Package cli implements the cdeck commands.
package cli

import (
	"os"
	"strings"

	"github.com/go-errors/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdullathedruid/cdeck/internal/app"
	"github.com/abdullathedruid/cdeck/internal/config"
	"github.com/abdullathedruid/cdeck/internal/logging"
	"github.com/abdullathedruid/cdeck/internal/version"
)

// Flag values. They override the config file when set.
var (
	configPath string
	command    string
	logFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "cdeck",
	Short: "Run Claude in a terminal pane next to git and file panes",
	Long: `cdeck hosts the claude CLI in a pseudo-terminal and shows it next to a
git status list, a diff view and a two-panel file browser.

Files and diff lines can be sent to Claude as @-references without
leaving the keyboard. Run "cdeck keys" for the key reference.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cdeck/config.yaml)")
	f.StringVar(&command, "command", "", `program to host, with arguments (e.g. "claude --resume")`)
	f.StringVar(&logFile, "log-file", "", "write a JSON debug log to this file")
	f.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	// Subcommands (alphabetical)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if command != "" {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return nil, errors.New("--command must name a program")
		}
		cfg.ChildCommand = fields[0]
		cfg.ChildArgs = fields[1:]
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("cdeck must be run in an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return errors.WrapPrefix(err, "creating data directory", 0)
	}

	log, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	log.Info("starting",
		zap.String("version", version.Short()),
		zap.String("config", cfg.ConfigFile()),
		zap.String("command", cfg.ChildCommand))

	if err := app.Run(cfg, log); err != nil {
		var stack *errors.Error
		if errors.As(err, &stack) {
			log.Error("run failed", zap.Error(err), zap.String("stack", stack.ErrorStack()))
		} else {
			log.Error("run failed", zap.Error(err))
		}
		return err
	}
	return nil
}
