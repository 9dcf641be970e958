package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/microbridge/microbridge/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X ...cli.Version=..."
var Version = "v0.3.0"

var (
	cfgFile string
	verbose bool
	debug   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "microbridge",
	Short: "MicroBridge - convert pathology annotations to LMD ImageData XML",
	Long: `MicroBridge converts region annotations exported from NDP.view2 (.ndpa)
or as CSV into the ImageData XML read by laser microdissection systems.

The first three non-ruler regions of every file are calibration points.
Every later region becomes a numbered capture shape. Ruler measurements
are ignored.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("microbridge %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.microbridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print the full conversion trail")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print wrapped errors and stack traces")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(versionCmd)
}

// configDir returns $HOME/.microbridge
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".microbridge"), nil
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// MICROBRIDGE_OUTPUT_DIR overrides output.dir, and so on
	viper.SetEnvPrefix("MICROBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("output.verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	} else if err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "⚠️  Could not read config file %s: %v\n", cfgFile, err)
	}
}

// setDefaults registers every key so env variables are seen by Unmarshal
func setDefaults(d *model.Config) {
	viper.SetDefault("conversion.format", d.Conversion.Format)
	viper.SetDefault("conversion.force", d.Conversion.Force)
	viper.SetDefault("output.dir", d.Output.Dir)
	viper.SetDefault("output.verbose", d.Output.Verbose)
	viper.SetDefault("output.debug", d.Output.Debug)
	viper.SetDefault("output.report", d.Output.Report)
	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
	viper.SetDefault("concurrency.shutdown_timeout", d.Concurrency.ShutdownTimeout)
	viper.SetDefault("concurrency.progress_per_sec", d.Concurrency.ProgressPerSec)
	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
}

// loadConfig returns defaults overlaid with the config file and environment
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return cfg, nil
}
