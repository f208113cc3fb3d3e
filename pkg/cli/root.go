// Package cli wires the command line surface to the reading modes: flag
// parsing, configuration, session setup and teardown, and the exit
// status protocol scripts rely on.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	// Version is the current version of grabchars
	Version = "3.1.0"
)

// Config holds the global configuration for the grabchars CLI. Values
// come from an optional config file; command-line flags always win.
type Config struct {
	ConfigDir     string `yaml:"-"`
	Highlight     string `yaml:"highlight"`
	Newline       *bool  `yaml:"newline"`
	EscapeDelayMS int    `yaml:"escape_delay_ms"`
	Debug         bool   `yaml:"debug"`
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for grabchars
func NewRootCommand() *cobra.Command {
	flags := &grabFlags{}
	cmd := &cobra.Command{
		Use:   "grabchars",
		Short: "Read keystrokes without waiting for return",
		Long: `grabchars reads keystrokes straight from the terminal, without waiting
for the return key, and prints what was read so shell scripts can
capture it. The exit status carries the number of characters read,
which keeps single-prompt dialogs to one line of shell:

  grabchars -c aeiou           get one of the vowels
  grabchars -n4                get four characters
  grabchars -t2                give up after two seconds
  grabchars -p 'continue? ' -r prompt, and let return submit early

The select and select-lr subcommands turn the same machinery into an
inline picker over a list of options.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize configuration
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// Setup logging
			return initLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrab(cmd, flags)
		},
	}

	// Stdout is the result channel for command substitution, so
	// everything cobra prints belongs on stderr with the prompts.
	cmd.SetOut(os.Stderr)
	cmd.SetVersionTemplate("grabchars {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return translateFlagError(err)
	})

	// Persistent flags (available to the select subcommands)
	flags.register(cmd.PersistentFlags())
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.grabchars)")

	// Add subcommands
	cmd.AddCommand(newSelectCommand(flags, false))
	cmd.AddCommand(newSelectCommand(flags, true))

	return cmd
}

// initConfig resolves the configuration directory and loads config.yaml
// when one exists. The file is optional and never created: a keystroke
// reader runs from pipelines and dotfiles and has no business writing
// to $HOME on first use.
func initConfig() error {
	// Determine config directory
	// Environment variable always takes priority (for testing)
	if envDir := os.Getenv("GRABCHARS_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		// Use default ~/.grabchars
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".grabchars")
	}

	configFile := filepath.Join(GlobalConfig.ConfigDir, "config.yaml")
	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// The --debug flag was already bound; keep it set even when the
	// file says otherwise.
	debug := GlobalConfig.Debug
	if err := yaml.Unmarshal(data, GlobalConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	GlobalConfig.Debug = GlobalConfig.Debug || debug
	return nil
}

// initLogging routes debug output to a file under the config directory.
// Log lines cannot share the terminal with a raw-mode widget, so there
// is no on-screen debug mode; the prefix separates interleaved sessions
// when several readers append at once.
func initLogging() error {
	if !GlobalConfig.Debug && os.Getenv("GRABCHARS_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	logFile := filepath.Join(GlobalConfig.ConfigDir, "debug.log")
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetPrefix(fmt.Sprintf("grabchars[%s] ", uuid.NewString()[:8]))
	return nil
}

// Execute parses the command line, runs the selected mode and reports
// the process exit status. Parse and validation failures report 255,
// the value shells see from an exit(-1); session statuses pass through
// unchanged, including the negative ones os.Exit wraps the same way.
func Execute() int {
	cmd := NewRootCommand()
	cmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		return 255
	}
	return int(exitStatus.Load())
}
