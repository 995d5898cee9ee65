// Package commands implements the CLI commands for hjarta-config.
package commands

import (
	"log/slog"
	"path/filepath"
	"strings"

	hjarta "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/logging"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AppName is the application name used for config file lookup.
const AppName = "hjarta-config"

// EnvPrefix prefixes the environment variables bound to flags.
const EnvPrefix = "HJARTA"

// NewRootCommand builds the command tree. Every call gets its own viper
// instance, so trees are independent.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   AppName,
		Short: "Read and edit configuration documents with key paths",
		Long: `hjarta-config reads and edits YAML, JSON, TOML and HCL documents
addressed by key paths.

A key path is a sequence of escaped keys: \.name is an attribute, \[0\] an
index and \{meta\} a meta tag. A component directory, described by a meta
document, is read with --meta and behaves like one document.`,
		Example: `  # Print a value
  hjarta-config get app.yaml '\.server\.port'

  # Store a value, parsed as YAML
  hjarta-config set app.yaml '\.server\.tls' '{enabled: true}'

  # Preview a change to a component member
  hjarta-config set --meta meta.yaml ./service '\{local\}\.port' 8443 --dry-run`,
		Version:       hjarta.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, v)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.String("config", "", "CLI config file (default: $XDG_CONFIG_HOME/hjarta-config/config.yaml)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")
	flags.StringP("format", "f", "", "document format (default: from the file extension)")
	flags.String("meta", "", "read the target as a component directory described by this meta file")

	_ = v.BindPFlags(flags)

	cmd.AddCommand(
		newGetCmd(v),
		newExistsCmd(v),
		newKeysCmd(v),
		newSetCmd(v),
		newDeleteCmd(v),
		newMergeCmd(v),
		newEvalCmd(v),
	)

	return cmd
}

func setup(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := v.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading CLI config")
		}
	}

	logger := logging.NewLogger(logging.LoggerConfig{
		Level:  v.GetString("log-level"),
		Format: logging.ParseFormat(v.GetString("log-format")),
	}, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	return nil
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return errors.Wrap(NewRootCommand().Execute(), "executing root command")
}
