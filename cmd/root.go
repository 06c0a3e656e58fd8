package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobsift"
)

// Config is the CLI-level configuration: where the resume lives, the
// user's preferences and the optional integrations. Engine weights and
// thresholds live in the same file and are decoded by the config package.
type Config struct {
	Resume         string             `mapstructure:"resume"`
	DreamCompanies []string           `mapstructure:"dream-companies"`
	Preferences    *PreferencesConfig `mapstructure:"preferences"`
	AI             *AIConfig          `mapstructure:"ai"`
	Redis          *RedisConfig       `mapstructure:"redis"`
}

// PreferencesConfig mirrors posting.Preferences in config-file shape.
type PreferencesConfig struct {
	WorkArrangement    []string `mapstructure:"work-arrangement"`
	Locations          []string `mapstructure:"locations"`
	SalaryMinimum      *int     `mapstructure:"salary-minimum"`
	ExcludedIndustries []string `mapstructure:"excluded-industries"`
	StrictLocation     bool     `mapstructure:"strict-location"`
}

// AIConfig controls the Gemini fit oracle.
type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig stores Gemini provider configuration.
type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// RedisConfig enables the Redis-backed duplicate registry.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	TTLHours int    `mapstructure:"ttl-hours"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobsift is a cli for parsing, scoring and ranking job postings against your resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobsift.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// A missing config file is fine: embedded defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}
