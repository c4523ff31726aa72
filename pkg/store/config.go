package store

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by the "backend" config key.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config describes where and how week snapshots are stored.
type Config interface {
	BasePath() string
	Backend() string
	LogFile() string
	LogLevel() string
	LogFormat() string
}

// LoadConfig reads .ftf.yaml (from $FTF_CONFIG_PATH or the working
// directory), FTF_* environment variables and an optional .env file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("path", "~/.ftf.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetConfigName(".ftf") // .yaml is implicit
	v.SetEnvPrefix("FTF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("FTF_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:    path,
		Store:   v.GetString("backend"),
		LogPath: logFile,
		Level:   v.GetString("log.level"),
		Format:  v.GetString("log.format"),
	}, nil
}

// StaticConfig builds a Config without reading any files.
func StaticConfig(path, backend string) Config {
	return &fileConfig{Path: path, Store: backend, Level: "info", Format: "text"}
}

type fileConfig struct {
	Path    string `json:"path"`
	Store   string `json:"backend"`
	LogPath string `json:"logFile,omitempty"`
	Level   string `json:"logLevel"`
	Format  string `json:"logFormat"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() string {
	return f.Store
}

func (f *fileConfig) LogFile() string {
	return f.LogPath
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}

func (f *fileConfig) LogFormat() string {
	return f.Format
}
