package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyLanguage      = "language"
	KeyWindowWidth   = "window_size.width"
	KeyWindowHeight  = "window_size.height"
	KeyRecentFiles   = "recent_files"
	KeyRecentLimit   = "recent_limit"
	KeyHTMLExportDir = "html_export_dir"
	KeyWatchFiles    = "watch_files"

	DefaultRecentLimit = 10
)

var errNoConfigFile = errors.New("config file path not set")

type WindowSize struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// AppConfig is the typed view of the settings.
type AppConfig struct {
	Language      string     `mapstructure:"language"`
	WindowSize    WindowSize `mapstructure:"window_size"`
	RecentFiles   []string   `mapstructure:"recent_files"`
	RecentLimit   int        `mapstructure:"recent_limit"`
	HTMLExportDir string     `mapstructure:"html_export_dir"`
	WatchFiles    bool       `mapstructure:"watch_files"`
}

// DefaultPath is <UserConfigDir>/fire-sale/config.json.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fire-sale", "config.json")
}

// DocumentsDir is the user's documents folder, or the home directory when
// there is none.
func DocumentsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	docs := filepath.Join(home, "Documents")
	if info, err := os.Stat(docs); err == nil && info.IsDir() {
		return docs
	}
	return home
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault(KeyLanguage, "en")
	v.SetDefault(KeyWindowWidth, 1000)
	v.SetDefault(KeyWindowHeight, 600)
	v.SetDefault(KeyRecentFiles, []string{})
	v.SetDefault(KeyRecentLimit, DefaultRecentLimit)
	v.SetDefault(KeyHTMLExportDir, DocumentsDir())
	v.SetDefault(KeyWatchFiles, true)
}

// New returns a Viper bound to path, or to DefaultPath when path is empty.
func New(path string) *viper.Viper {
	if path == "" {
		path = DefaultPath()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	return v
}

// Load resolves settings with precedence defaults < file < FIRESALE_* env.
// A missing file is not an error.
func Load(v *viper.Viper) (*AppConfig, error) {
	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix("firesale")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return FromViper(v)
}

func FromViper(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultRecentLimit
	}
	return &cfg, nil
}

// Save writes every setting back to the config file.
func Save(v *viper.Viper) error {
	path := v.ConfigFileUsed()
	if path == "" {
		return errNoConfigFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
