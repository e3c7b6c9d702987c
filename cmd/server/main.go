package main

import (
	"net/http"

	"github.com/omnichat-ai/omnichat/internal/api"
	"github.com/omnichat-ai/omnichat/internal/config"
	"github.com/omnichat-ai/omnichat/internal/db"
	"github.com/omnichat-ai/omnichat/internal/hfimage"
	"github.com/omnichat-ai/omnichat/internal/llm"
	"github.com/omnichat-ai/omnichat/internal/session"
	"github.com/omnichat-ai/omnichat/internal/summarize"
	"github.com/omnichat-ai/omnichat/internal/tools"
	"github.com/omnichat-ai/omnichat/internal/youtube"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.FromEnv()
	if cfg.GroqAPIKey == "" {
		logger.Fatal("GROQ_API_KEY must be set")
	}
	if cfg.HFToken == "" {
		logger.Warn("HF_TOKEN is not set, image generation will fail")
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to initialize database",
			zap.Error(err),
			zap.String("dbPath", cfg.DBPath))
	}
	defer database.Close()

	llmService, err := llm.New(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.ChatModel)
	if err != nil {
		logger.Fatal("failed to initialize LLM service", zap.Error(err))
	}

	summarizer := summarize.New(llmService)
	handler := api.NewHandler(
		database,
		session.NewRegistry(),
		tools.NewChat(llmService),
		tools.NewVideoSummary(youtube.NewClient(), summarizer),
		tools.NewDocumentSummary(summarizer),
		tools.NewImageGen(hfimage.NewClient(cfg.HFToken), nil, cfg.ImageDir),
		logger,
	)

	http.HandleFunc("/api/signup", handler.Signup)
	http.HandleFunc("/api/login", handler.Login)
	http.HandleFunc("/api/logout", handler.Logout)
	http.HandleFunc("/api/conversations", handler.GetConversations)
	http.HandleFunc("/api/conversations/open", handler.OpenConversation)
	http.HandleFunc("/api/conversations/new", handler.NewConversation)
	http.HandleFunc("/api/conversations/delete", handler.DeleteConversation)
	http.HandleFunc("/api/chat", handler.ChatMessage)
	http.HandleFunc("/api/youtube", handler.SummarizeVideo)
	http.HandleFunc("/api/pdf", handler.SummarizePDF)
	http.HandleFunc("/api/image", handler.GenerateImage)

	// Generated images and the static UI.
	http.Handle("/generated/", http.StripPrefix("/generated/", http.FileServer(http.Dir(cfg.ImageDir))))
	http.Handle("/", http.FileServer(http.Dir(cfg.WebDir)))

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
