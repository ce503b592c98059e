package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	AI       AIConfig       `yaml:"ai"`
	Agent    AgentConfig    `yaml:"agent"`
	Database DatabaseConfig `yaml:"database"`
	Memory   MemoryConfig   `yaml:"memory"`
	API      APIConfig      `yaml:"api"`
	Log      LogConfig      `yaml:"log"`
}

type AIConfig struct {
	Plugin      string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"gemini"`
	Temperature float64      `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.3"`
	Gemini      GeminiConfig `yaml:"gemini"`
	Ollama      OllamaConfig `yaml:"ollama"`
	OpenAI      OpenAIConfig `yaml:"openai"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GOOGLE_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

// OpenAIConfig covers any OpenAI-compatible chat completions endpoint
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1/"`
	Model   string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

type AgentConfig struct {
	Profile  string `yaml:"profile" env:"AGENT_PROFILE" env-default:"insurance"`
	MCPURL   string `yaml:"mcp_url" env:"MCP_SERVER_URL" env-default:"http://localhost:8200/mcp"`
	MaxTurns int    `yaml:"max_turns" env:"AGENT_MAX_TURNS" env-default:"10"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	StorePath     string `yaml:"store_path" env:"STORE_DB_PATH" env-default:"tienda.db"`
	InsurancePath string `yaml:"insurance_path" env:"INSURANCE_DB_PATH" env-default:"seguros.db"`
	DSN           string `yaml:"dsn" env:"DATABASE_DSN"`
}

type MemoryConfig struct {
	Backend     string `yaml:"backend" env:"MEMORY_BACKEND" env-default:"memory"`
	RedisURL    string `yaml:"redis_url" env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	Prefix      string `yaml:"prefix" env:"MEMORY_PREFIX" env-default:"mcpworkshop"`
	MaxMessages int    `yaml:"max_messages" env:"MEMORY_MAX_MESSAGES" env-default:"50"`
}

type APIConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// DSNFor returns the connection string for the named workshop database.
// SQLite uses one file per database, postgres shares the configured DSN.
func (c DatabaseConfig) DSNFor(name string) string {
	if c.Driver == "postgres" {
		return c.DSN
	}
	if name == "insurance" {
		return c.InsurancePath
	}
	return c.StorePath
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// A missing config.yaml is not an error, envs and defaults still apply.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
