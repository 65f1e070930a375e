package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gubarz/roadforge/internal/parser"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	RoadmapPath     string   `mapstructure:"path"`
	Format          string   `mapstructure:"format"`
	Output          string   `mapstructure:"output"`
	StartDate       string   `mapstructure:"start_date"`
	ExcludeSections []string `mapstructure:"exclude_sections"`
	LibraryPattern  string   `mapstructure:"library_pattern"`
	ColorHeader     string   `mapstructure:"color_header"`
	ColorGraph      string   `mapstructure:"color_graph"`
	ColorRevision   string   `mapstructure:"color_revision"`
	ColorTheory     string   `mapstructure:"color_theory"`
	ColorDim        string   `mapstructure:"color_dim"`
	LogLevel        string   `mapstructure:"log_level"`
	LogFile         string   `mapstructure:"log_file"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper. An explicit file must exist
// and parse; otherwise the usual locations are searched and a missing
// config is not an error.
func Init(file string) error {
	viper.SetDefault("path", "roadmap.md")
	viper.SetDefault("format", "text")
	viper.SetDefault("output", "print")
	viper.SetDefault("start_date", "")
	viper.SetDefault("exclude_sections", parser.DefaultExcludedSections)
	viper.SetDefault("library_pattern", "**/*.md")
	viper.SetDefault("color_header", "36")   // Cyan
	viper.SetDefault("color_graph", "34")    // Blue
	viper.SetDefault("color_revision", "33") // Yellow
	viper.SetDefault("color_theory", "35")   // Magenta
	viper.SetDefault("color_dim", "90")      // Gray
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_file", "")

	viper.SetEnvPrefix("ROADFORGE")
	viper.AutomaticEnv()

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		viper.SetConfigName("roadforge")
		viper.SetConfigType("yaml")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "roadforge"))
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")

		// Try to read config, but don't fail if not found or malformed
		_ = viper.ReadInConfig()
	}

	return viper.Unmarshal(&C)
}

// GetPath returns the default roadmap path with tilde expansion
func GetPath() string {
	return expandTilde(viper.GetString("path"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetFormat returns the output encoding: text, json or yaml
func GetFormat() string {
	return viper.GetString("format")
}

// GetOutput returns the link output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetStartDate returns the configured roadmap start date (YYYY-MM-DD)
func GetStartDate() string {
	return viper.GetString("start_date")
}

// GetExcludeSections returns the section titles never kept as references
func GetExcludeSections() []string {
	return viper.GetStringSlice("exclude_sections")
}

// GetLibraryPattern returns the glob used to discover roadmap files
func GetLibraryPattern() string {
	return viper.GetString("library_pattern")
}

// GetColorHeader returns ANSI color code for headers
func GetColorHeader() string {
	return viper.GetString("color_header")
}

// GetColorGraph returns ANSI color code for graph tasks
func GetColorGraph() string {
	return viper.GetString("color_graph")
}

// GetColorRevision returns ANSI color code for revision tasks
func GetColorRevision() string {
	return viper.GetString("color_revision")
}

// GetColorTheory returns ANSI color code for theory tasks
func GetColorTheory() string {
	return viper.GetString("color_theory")
}

// GetColorDim returns ANSI color code for secondary text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetLogLevel returns the log level
func GetLogLevel() string {
	return viper.GetString("log_level")
}

// GetLogFile returns the log file path, empty for stderr
func GetLogFile() string {
	return expandTilde(viper.GetString("log_file"))
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetFormat sets the output encoding at runtime
func SetFormat(format string) {
	viper.Set("format", format)
	C.Format = format
}
