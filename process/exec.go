package process

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"github.com/zeebo/structs"
	"go.uber.org/zap"

	"github.com/opdss/excelsvc/cfgstruct"
	"github.com/opdss/excelsvc/version"
)

// DefaultCfgFilename is the default filename used for storing a configuration.
const DefaultCfgFilename = "config.yaml"

var (
	commandMtx sync.Mutex
	contexts   = map[*cobra.Command]context.Context{}
	cancels    = map[*cobra.Command]context.CancelFunc{}
	configs    = map[*cobra.Command][]interface{}{}
	vipers     = map[*cobra.Command]*viper.Viper{}
)

// Bind sets flags on a command that match the configuration struct
// 'config'. It ensures that the config has all of the values loaded into it
// when the command runs.
func Bind(cmd *cobra.Command, config interface{}) {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	cfgstruct.Bind(cmd.Flags(), config)
	configs[cmd] = append(configs[cmd], config)
}

// Exec runs a Cobra command. If a "config-dir" flag is defined it will be
// parsed and loaded using viper.
func Exec(cmd *cobra.Command) {
	cmd.AddCommand(&cobra.Command{
		Use:         "version",
		Short:       "output the version's build information, if any",
		RunE:        cmdVersion,
		Annotations: map[string]string{"type": "helper"},
	})

	cleanup(cmd)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Ctx returns the appropriate context.Context for the command, cancelled
// when the process receives SIGINT or SIGTERM.
func Ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	ctx := contexts[cmd]
	if ctx == nil {
		ctx = context.Background()
		contexts[cmd] = ctx
	}

	cancel := cancels[cmd]
	if cancel == nil {
		ctx, cancel = context.WithCancel(ctx)
		contexts[cmd] = ctx
		cancels[cmd] = cancel

		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-c
			zap.L().Sugar().Infof("got a signal from the OS: %q", sig)
			signal.Stop(c)
			cancel()
		}()
	}

	return ctx, cancel
}

// Viper returns the appropriate *viper.Viper for the command, creating if
// necessary. Environment variables use the EXCELSVC_ prefix unless
// ENV_PREFIX overrides it.
func Viper(cmd *cobra.Command) (*viper.Viper, error) {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	if vip := vipers[cmd]; vip != nil {
		return vip, nil
	}

	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return nil, errs.Wrap(err)
	}

	prefix := os.Getenv("ENV_PREFIX")
	if prefix == "" {
		prefix = "excelsvc"
	}
	vip.SetEnvPrefix(prefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()

	if err := loadConfig(cmd, vip); err != nil {
		return nil, err
	}

	vipers[cmd] = vip
	return vip, nil
}

// loadConfig loads configuration into *viper.Viper from the file in the
// directory specified with the "config-dir" flag.
func loadConfig(cmd *cobra.Command, vip *viper.Viper) error {
	cfgFlag := cmd.Flags().Lookup("config-dir")
	if cfgFlag == nil {
		cfgFlag = cmd.InheritedFlags().Lookup("config-dir")
	}
	if cfgFlag != nil && cfgFlag.Value.String() != "" {
		path := filepath.Join(os.ExpandEnv(cfgFlag.Value.String()), DefaultCfgFilename)
		if _, err := os.Stat(path); err == nil {
			vip.SetConfigFile(path)
			if err := vip.ReadInConfig(); err != nil {
				return errs.Wrap(err)
			}
		}
	}
	return nil
}

func cleanup(cmd *cobra.Command) {
	for _, ccmd := range cmd.Commands() {
		cleanup(ccmd)
	}
	internalRun := cmd.RunE
	if internalRun == nil {
		return
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		vip, err := Viper(cmd)
		if err != nil {
			return err
		}

		commandMtx.Lock()
		configValues := configs[cmd]
		commandMtx.Unlock()

		allSettings := vip.AllSettings()
		for _, config := range configValues {
			res := structs.Decode(allSettings, config)
			for key := range res.Broken {
				zap.L().Info("invalid configuration value for key", zap.String("key", key))
			}
		}

		if err := internalRun(cmd, args); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err.Error())
			os.Exit(1)
		}
		return nil
	}
}

func cmdVersion(cmd *cobra.Command, args []string) error {
	fmt.Println(version.Build)
	return nil
}
