package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rainbow/internal/config"
	"github.com/zjrosen/rainbow/internal/lexer"
	"github.com/zjrosen/rainbow/internal/log"
	"github.com/zjrosen/rainbow/internal/render"
	"github.com/zjrosen/rainbow/internal/settings"
)

// localConfigPath is checked before the user config.
const localConfigPath = ".rainbow/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	vp        *viper.Viper
	debugFlag bool
	logFile   string
	colorMode string

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "rainbow",
	Short: "Rainbow bracket colorizer",
	Long: `Colors matching bracket pairs by nesting depth.

Colors cycle through the palette for every opener, shared by all bracket
kinds, and a closer always takes the color of the opener it matches.
Closers without an opener are shown in the unmatched color.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .rainbow/config.yaml, then ~/.config/rainbow/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also enabled by RAINBOW_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: $RAINBOW_LOG or debug.log)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto",
		"when to color output: auto, always or never")
}

func initConfig() {
	vp = viper.New()

	defaults := config.Defaults()
	vp.SetDefault("preset", defaults.Preset)
	vp.SetDefault("unmatched_color", defaults.UnmatchedColor)
	vp.SetDefault("cache.enabled", defaults.Cache.Enabled)
	vp.SetDefault("cache.expiration", defaults.Cache.Expiration)
	vp.SetDefault("watch.debounce", defaults.Watch.Debounce)

	vp.SetEnvPrefix("RAINBOW")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if cfgFile != "" {
		vp.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .rainbow/config.yaml (current directory)
		// 2. ~/.config/rainbow/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			vp.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			vp.AddConfigPath(filepath.Join(home, ".config", "rainbow"))
			vp.SetConfigName("config")
			vp.SetConfigType("yaml")
		}
	}

	if err := vp.ReadInConfig(); err != nil {
		// Running without a config file is normal; anything else is worth a log line.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", vp.ConfigFileUsed())
		}
	}

	cfg = config.Config{}
	_ = vp.Unmarshal(&cfg)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	if !debugFlag && os.Getenv("RAINBOW_DEBUG") == "" {
		return nil
	}

	logPath := logFile
	if logPath == "" {
		logPath = os.Getenv("RAINBOW_LOG")
	}
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup

	log.Info(log.CatCLI, "rainbow starting", "command", cmd.Name(), "version", version, "config", vp.ConfigFileUsed())
	return nil
}

// configPath returns the file to write config changes to: the file that was
// loaded, or the local config path when none was.
func configPath() string {
	if path := vp.ConfigFileUsed(); path != "" {
		return path
	}
	return localConfigPath
}

func loadSettings() (*settings.Settings, error) {
	s, err := settings.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

func newLexer(s *settings.Settings) lexer.Lexer {
	lx := lexer.New(s.Pairs)
	if !cfg.Cache.Enabled {
		return lx
	}
	return lexer.NewInMemory(lx, cfg.Cache.Expiration)
}

func newRenderer(w io.Writer) (*render.Renderer, error) {
	switch colorMode {
	case "", "auto":
		return render.New(w), nil
	case "always":
		return render.NewWithProfile(w, termenv.TrueColor), nil
	case "never":
		return render.NewWithProfile(w, termenv.Ascii), nil
	default:
		return nil, fmt.Errorf("invalid --color value %q: want auto, always or never", colorMode)
	}
}

// readSource reads path, or stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied source file
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
