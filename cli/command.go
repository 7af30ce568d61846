package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kvesta/mdyml/config"
)

const version = "1.0.0"

type options struct {
	cfgFile  string
	logLevel string

	settings *config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "mdyml [OPTIONS]",
		Short: "Vulnerable software list conversion",
		Long: `mdyml converts the Markdown software tables published for a vulnerability
into YAML documents, merges them and renders them back to Markdown`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./.mdyml.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"logging level: debug, info, warning, error or critical (default info)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and quit",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mdyml version %s\n", version)
		},
	}

	rootCmd.AddCommand(convertCmd(opts))
	rootCmd.AddCommand(normalizeCmd(opts))
	rootCmd.AddCommand(yml2mdCmd(opts))
	rootCmd.AddCommand(templateCmd(opts))
	rootCmd.AddCommand(queryCmd(opts))
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// setup validates the log level before anything else, then reads settings.
func (o *options) setup(cmd *cobra.Command) error {
	level := o.logLevel
	if level == "" {
		level = "info"
	}
	if err := config.SetupLogger(level, cmd.ErrOrStderr()); err != nil {
		return err
	}

	settings, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	o.settings = settings

	if o.logLevel == "" && settings.LogLevel != "" {
		if err := config.SetupLogger(settings.LogLevel, cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	log.Debugf("Log level set to %s", log.GetLevel())
	return nil
}

func Execute() error {
	rootCmd := newRootCmd()

	err := rootCmd.ExecuteContext(config.Ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
	}

	return err
}
