package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress string

	// AI text/TTS collaborators
	AIAPIKey     string
	AIBaseURL    string
	ChatModelID  string
	UtilityModel string
	TTSVoice     string

	// Realtime audio session endpoint
	RealtimeURL string

	// Local persistence
	DataDir string
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	apiKey := os.Getenv("AI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: AI_API_KEY not set - panda replies will fall back to canned text")
	}

	baseURL := os.Getenv("AI_BASE_URL")

	chatModel := os.Getenv("AI_CHAT_MODEL")
	if chatModel == "" {
		chatModel = "gpt-4o"
	}
	utilityModel := os.Getenv("AI_UTILITY_MODEL")
	if utilityModel == "" {
		utilityModel = "gpt-4o-mini"
	}

	ttsVoice := os.Getenv("AI_TTS_VOICE")
	if ttsVoice == "" {
		ttsVoice = "onyx"
	}

	realtimeURL := os.Getenv("AI_REALTIME_URL")
	if realtimeURL == "" {
		realtimeURL = "wss://api.openai.com/v1/realtime"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	log.Printf("config: HTTP_ADDRESS=%s DATA_DIR=%s", addr, dataDir)
	return Config{
		HTTPAddress:  addr,
		AIAPIKey:     apiKey,
		AIBaseURL:    baseURL,
		ChatModelID:  chatModel,
		UtilityModel: utilityModel,
		TTSVoice:     ttsVoice,
		RealtimeURL:  realtimeURL,
		DataDir:      dataDir,
	}
}
