package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/rostersync/internal/publish"
	"github.com/agentstation/rostersync/internal/store"
	"github.com/agentstation/rostersync/pkg/constants"
	"github.com/agentstation/rostersync/pkg/errors"
)

// Config holds the tool configuration.
type Config struct {
	// Output settings
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Logging settings
	LogLevel  string
	LogFormat string
	LogOutput string

	// Config file path
	ConfigFile string

	// Master-data connection settings
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// Pipeline settings
	InputFile string
	OutputDir string
	RulesFile string

	// SFTP publishing settings
	SFTPHost      string
	SFTPPort      int
	SFTPUser      string
	SFTPPassword  string
	SFTPRemoteDir string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.rostersync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up environment variable handling
	viper.SetEnvPrefix("rostersync")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Set defaults
	setDefaults()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".rostersync")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose:    viper.GetBool("verbose"),
		Quiet:      viper.GetBool("quiet"),
		NoColor:    viper.GetBool("no-color"),
		ConfigFile: viper.ConfigFileUsed(),
	}
	config.applyViper()

	return config, nil
}

// LoadFile reads the given config file and merges it into the config.
func (c *Config) LoadFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.WrapIO("read", path, err)
	}
	c.ConfigFile = viper.ConfigFileUsed()
	c.applyViper()
	return nil
}

// applyViper copies the current viper state into the config.
func (c *Config) applyViper() {
	c.Format = viper.GetString("output.format")
	c.LogLevel = viper.GetString("log.level")
	c.LogFormat = viper.GetString("log.format")
	c.LogOutput = viper.GetString("log.output")

	c.DBHost = viper.GetString("db.host")
	c.DBPort = viper.GetInt("db.port")
	c.DBUser = viper.GetString("db.user")
	c.DBPassword = viper.GetString("db.password")
	c.DBName = viper.GetString("db.name")

	c.InputFile = viper.GetString("input.file")
	c.OutputDir = viper.GetString("output.dir")
	c.RulesFile = viper.GetString("rules.file")

	c.SFTPHost = viper.GetString("sftp.host")
	c.SFTPPort = viper.GetInt("sftp.port")
	c.SFTPUser = viper.GetString("sftp.user")
	c.SFTPPassword = viper.GetString("sftp.password")
	c.SFTPRemoteDir = viper.GetString("sftp.dir")
}

// StoreConfig returns the master-data connection settings.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Database: c.DBName,
	}
}

// SFTPConfig returns the script publishing settings.
func (c *Config) SFTPConfig() publish.Config {
	return publish.Config{
		Host:      c.SFTPHost,
		Port:      c.SFTPPort,
		User:      c.SFTPUser,
		Password:  c.SFTPPassword,
		RemoteDir: c.SFTPRemoteDir,
	}
}

// loadEnvFiles loads .env files in order of precedence.
func loadEnvFiles() {
	// .env.local overrides .env
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("db.host", constants.DefaultDBHost)
	viper.SetDefault("db.port", constants.DefaultDBPort)
	viper.SetDefault("db.user", constants.DefaultDBUser)
	viper.SetDefault("db.name", constants.DefaultDBName)

	viper.SetDefault("input.file", constants.DefaultInputFile)
	viper.SetDefault("output.dir", constants.DefaultOutputDir)

	viper.SetDefault("sftp.port", constants.DefaultSFTPPort)
	viper.SetDefault("sftp.dir", "/")

	viper.SetDefault("log.format", "auto")
	viper.SetDefault("log.output", "stderr")
}
