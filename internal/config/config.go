package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var supportedSampleRates = map[int]bool{
	8000:  true,
	16000: true,
	22050: true,
	44100: true,
	48000: true,
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	LLM      LLMConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Speech   SpeechConfig
	Voice    VoiceConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	TopK       int
	VectorSize uint64
}

type LLMConfig struct {
	Provider    string
	MaxAttempts int
	Temperature float32
	Timeout     time.Duration
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
}

type SpeechConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type VoiceConfig struct {
	Duration   time.Duration
	SampleRate int
	BeamSize   int
}

type StorageConfig struct {
	ScratchPath string
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	openAIKey := getEnv("OPENAI_API_KEY", "")

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_analyzer"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_analyzer_refs"),
			TopK:       getEnvAsInt("QDRANT_TOP_K", 3),
			VectorSize: uint64(getEnvAsInt64("QDRANT_VECTOR_SIZE", 768)),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
			MaxAttempts: getEnvAsInt("LLM_MAX_ATTEMPTS", 1),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.3),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", "0s"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		OpenAI: OpenAIConfig{
			APIKey:     openAIKey,
			BaseURL:    getEnv("OPENAI_BASE_URL", ""),
			Model:      getEnv("OPENAI_MODEL", "llama3-70b-8192"),
			EmbedModel: getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		},
		Speech: SpeechConfig{
			APIKey:  getEnv("SPEECH_API_KEY", openAIKey),
			BaseURL: getEnv("SPEECH_BASE_URL", ""),
			Model:   getEnv("SPEECH_MODEL", "whisper-1"),
		},
		Voice: VoiceConfig{
			Duration:   getEnvAsDuration("VOICE_DURATION", "5s"),
			SampleRate: getEnvAsInt("VOICE_SAMPLE_RATE", 44100),
			BeamSize:   getEnvAsInt("VOICE_BEAM_SIZE", 5),
		},
		Storage: StorageConfig{
			ScratchPath: getEnv("SCRATCH_PATH", os.TempDir()),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// Validate reports the first setting that would make the service unusable.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if strings.TrimSpace(c.Gemini.APIKey) == "" {
			return errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q (expected %q or %q)", c.LLM.Provider, ProviderGemini, ProviderOpenAI)
	}

	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("LLM_MAX_ATTEMPTS must be at least 1, got %d", c.LLM.MaxAttempts)
	}
	if c.Voice.Duration <= 0 {
		return fmt.Errorf("VOICE_DURATION must be positive, got %s", c.Voice.Duration)
	}
	if !supportedSampleRates[c.Voice.SampleRate] {
		return fmt.Errorf("unsupported VOICE_SAMPLE_RATE %d", c.Voice.SampleRate)
	}
	if c.Voice.BeamSize < 1 {
		return fmt.Errorf("VOICE_BEAM_SIZE must be at least 1, got %d", c.Voice.BeamSize)
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// SpeechEnabled reports whether a speech-to-text backend is configured.
func (c *Config) SpeechEnabled() bool {
	return strings.TrimSpace(c.Speech.APIKey) != "" || strings.TrimSpace(c.Speech.BaseURL) != ""
}

func (c *Config) QdrantEnabled() bool {
	return strings.TrimSpace(c.Qdrant.URL) != ""
}

// ProviderCredentials returns the API key, base URL and model names of the
// selected LLM provider.
func (c *Config) ProviderCredentials() (apiKey, baseURL, model, embedModel string) {
	if c.LLM.Provider == ProviderOpenAI {
		return c.OpenAI.APIKey, c.OpenAI.BaseURL, c.OpenAI.Model, c.OpenAI.EmbedModel
	}
	return c.Gemini.APIKey, "", c.Gemini.Model, c.Gemini.EmbedModel
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
