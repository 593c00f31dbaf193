package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/retrolex/internal/app"
	"github.com/zjrosen/retrolex/internal/config"
	"github.com/zjrosen/retrolex/internal/filemode"
	"github.com/zjrosen/retrolex/internal/log"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply does not race the input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config directory.
const localConfigPath = ".retrolex/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	colorFlag string

	v          *viper.Viper
	cfg        config.Config
	configPath string
	configErr  error
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "retrolex",
	Short: "Syntax highlighting for retro assembly and BASIC sources",
	Long: `retrolex classifies 6502, 65C02 and 6809 assembly and Applesoft, Color BASIC
and Commodore BASIC listings line by line, and renders them in the terminal.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/retrolex/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (also enabled by "+log.EnvDebug+")")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		"color output: auto, always or never")
}

func initConfig() {
	v = config.NewViper()
	config.SetDefaults(v)
	configErr = nil

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .retrolex/config.yaml (current directory)
		// 2. ~/.config/retrolex/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else {
			v.AddConfigPath(config.Dir())
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
			return
		}
		// No config anywhere: create the user config and read it back. If
		// the write fails we continue with defaults.
		defaultPath := filepath.Join(config.Dir(), "config.yaml")
		if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
			v.SetConfigFile(defaultPath)
			_ = v.ReadInConfig()
		}
	}
	configPath = v.ConfigFileUsed()
}

// setup loads the configuration and applies the global flags before any
// command runs.
func setup(_ *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	if err := initLogging(); err != nil {
		return err
	}
	if err := applyColor(colorFlag); err != nil {
		return err
	}

	log.Debug(log.CatConfig, "Configuration loaded", "path", configPath, "platform", cfg.Platform)
	return nil
}

func initLogging() error {
	if os.Getenv(log.EnvDebug) == "" && !debugFlag {
		return nil
	}
	logPath := os.Getenv("RETROLEX_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "retrolex starting", "debug", true, "logPath", logPath, "version", version)
	return nil
}

// applyColor forces the lipgloss color profile for --color always|never.
func applyColor(mode string) error {
	switch mode {
	case "", "auto":
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
	return nil
}

// warnUnknownMode tells the user a --mode value was not recognised and the
// file is shown as plain text.
func warnUnknownMode(w io.Writer, sel filemode.Selection) {
	if sel.Unknown == "" {
		return
	}
	fmt.Fprintf(w, "warning: unknown mode %q, showing plain text (see 'retrolex dialects')\n", sel.Unknown)
}

// newApp assembles the shared services from the loaded configuration.
func newApp() (*app.App, error) {
	return app.New(cfg, app.Options{ConfigPath: configPath})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(ver string) {
	version = ver
	rootCmd.Version = ver
}
