package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robert-malhotra/go-conduit/internal/logger"
)

const (
	colorModeNever  = "never"
	colorModeAlways = "always"
)

var supportedColorModes = []string{
	colorModeNever,
	colorModeAlways,
}

type rootOpts struct {
	cfgFile string
	logFile string
	v       *viper.Viper
	closer  io.Closer
}

var longRootCmdDescription = `meshconduit converts scientific datasets described in YAML or TOML
into mesh blueprint trees, the self-describing hierarchy used for in situ
data exchange, verifies them and saves them as binary bundles.
`

func newRootCmd() *cobra.Command {
	opts := &rootOpts{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "meshconduit",
		Short:         "Convert datasets into mesh blueprint trees",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closer != nil {
				return opts.closer.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (YAML, TOML or JSON)")
	flags.BoolP("verbose", "v", false, "turn on debug logging")
	flags.String("color", colorModeAlways, fmt.Sprintf("set the log color mode, the possible values can be %v", supportedColorModes))
	flags.StringVar(&opts.logFile, "log-file", "", "also write log messages to this file")

	opts.v.SetDefault("log.verbose", false)
	opts.v.SetDefault("log.color", colorModeAlways)
	opts.v.SetDefault("output.format", formatYAML)
	opts.v.SetDefault("output.compression", 0)
	opts.v.SetDefault("output.codec", codecZstd)
	opts.v.SetDefault("output.shuffle", false)
	_ = opts.v.BindPFlag("log.verbose", flags.Lookup("verbose"))
	_ = opts.v.BindPFlag("log.color", flags.Lookup("color"))

	cmd.AddCommand(
		newConvertCmd(opts),
		newVerifyCmd(opts),
		newInspectCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// initConfig reads the config file and environment, then sets up logging.
func (o *rootOpts) initConfig(cmd *cobra.Command) error {
	v := o.v
	if o.cfgFile != "" {
		v.SetConfigFile(o.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config %s", o.cfgFile)
		}
	}
	v.SetEnvPrefix("MESHCONDUIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	color := v.GetString("log.color")
	if !slices.Contains(supportedColorModes, color) {
		return errors.Errorf("invalid color mode %q, the possible values can be %v", color, supportedColorModes)
	}

	closer, err := logger.Init(logger.LogOptions{
		Verbose:      v.GetBool("log.verbose"),
		DisableColor: color == colorModeNever,
		OutputPath:   o.logFile,
		Output:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to init logger")
	}
	o.closer = closer
	return nil
}
