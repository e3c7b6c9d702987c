package config

import "os"

// Config is read once from the environment at startup. The two provider
// credentials (GROQ_API_KEY, HF_TOKEN) are the only required values.
type Config struct {
	Addr     string
	DBPath   string
	WebDir   string
	ImageDir string

	GroqAPIKey  string
	GroqBaseURL string
	ChatModel   string

	HFToken string
}

func FromEnv() *Config {
	return &Config{
		Addr:        getEnv("ADDR", ":8100"),
		DBPath:      getEnv("DB_PATH", "omnichat.db"),
		WebDir:      getEnv("WEB_DIR", "web"),
		ImageDir:    getEnv("IMAGE_DIR", "generated"),
		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqBaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		ChatModel:   getEnv("CHAT_MODEL", "llama-3.1-8b-instant"),
		HFToken:     os.Getenv("HF_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
