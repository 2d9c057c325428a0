package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig  `yaml:"logging"`
	GeminiModel string         `yaml:"gemini_model"`
	Pipeline    PipelineConfig `yaml:"pipeline"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PipelineConfig holds the knobs of the daily run.
type PipelineConfig struct {
	// DaysBack is the publication-date lookback window for the PubMed search.
	DaysBack int `yaml:"days_back"`

	// MaxResults caps the esearch result list. Only the top hit is used.
	MaxResults int `yaml:"max_results"`

	// OutputFile is the local archive path, overwritten on every run.
	OutputFile string `yaml:"output_file"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.0-flash"
	}
	if c.Pipeline.DaysBack <= 0 {
		c.Pipeline.DaysBack = 1
	}
	if c.Pipeline.MaxResults <= 0 {
		c.Pipeline.MaxResults = 10
	}
	if c.Pipeline.OutputFile == "" {
		c.Pipeline.OutputFile = "latest_blog_post.md"
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
