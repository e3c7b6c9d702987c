package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/omnichat-ai/omnichat/internal/db"
	"github.com/omnichat-ai/omnichat/internal/history"
	"github.com/omnichat-ai/omnichat/internal/models"
	"github.com/omnichat-ai/omnichat/internal/session"
	"github.com/omnichat-ai/omnichat/internal/tools"
	"go.uber.org/zap"
)

const sessionHeader = "X-Session-Token"

// maxUploadBytes bounds PDF uploads.
const maxUploadBytes = 32 << 20

type Handler struct {
	db       *db.Database
	sessions *session.Registry
	chat     *tools.Chat
	video    *tools.VideoSummary
	docs     *tools.DocumentSummary
	image    *tools.ImageGen
	logger   *zap.Logger
}

func NewHandler(database *db.Database, sessions *session.Registry, chat *tools.Chat, video *tools.VideoSummary, docs *tools.DocumentSummary, image *tools.ImageGen, logger *zap.Logger) *Handler {
	return &Handler{
		db:       database,
		sessions: sessions,
		chat:     chat,
		video:    video,
		docs:     docs,
		image:    image,
		logger:   logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type conversationSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type sessionResponse struct {
	ConversationID string           `json:"conversation_id,omitempty"`
	Title          string           `json:"title"`
	Messages       []models.Message `json:"messages"`
}

type messageResponse struct {
	Message        models.Message `json:"message"`
	ConversationID string         `json:"conversation_id"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.db.CreateUser(req.Username, req.Password)
	switch {
	case errors.Is(err, db.ErrEmptyCredentials):
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	case errors.Is(err, db.ErrUserExists):
		http.Error(w, "Username already exists", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("failed to create user", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ok, err := h.db.VerifyUser(req.Username, req.Password)
	if err != nil {
		h.logger.Error("failed to verify user", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, _ := h.sessions.Login(req.Username, h.db)
	h.logger.Info("user logged in", zap.String("username", req.Username))

	writeJSON(w, h.logger, loginResponse{Token: token, Username: req.Username})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.sessions.Logout(r.Header.Get(sessionHeader))
	w.WriteHeader(http.StatusOK)
}

// GetConversations lists the user's conversations, derived from the log, in
// first-appearance order.
func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	ix, ok := h.grouped(w, sess.Username)
	if !ok {
		return
	}

	list := make([]conversationSummary, 0, ix.Len())
	for _, conv := range ix.All() {
		list = append(list, conversationSummary{ID: conv.ID, Title: conv.Title})
	}
	writeJSON(w, h.logger, list)
}

func (h *Handler) OpenConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ConversationID string `json:"conversation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ix, ok := h.grouped(w, sess.Username)
	if !ok {
		return
	}

	conv, found := ix.Get(req.ConversationID)
	if !found {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}

	sess.Open(conv)
	writeJSON(w, h.logger, sessionResponse{
		ConversationID: conv.ID,
		Title:          conv.Title,
		Messages:       sess.Messages,
	})
}

func (h *Handler) NewConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.StartNew()
	writeJSON(w, h.logger, sessionResponse{
		Title:    history.PlaceholderTitle,
		Messages: sess.Messages,
	})
}

func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	convID := r.URL.Query().Get("conversation_id")
	if convID == "" {
		http.Error(w, "conversation_id is required", http.StatusBadRequest)
		return
	}

	// The log layer deletes by conversation id alone; nothing here checks
	// that the id belongs to this user yet.
	if err := sess.Delete(convID); err != nil {
		h.logger.Error("failed to delete conversation", zap.Error(err), zap.String("conversation_id", convID))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ChatMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := sess.SubmitUserTurn(r.Context(), req.Content, h.chat)
	if err != nil {
		h.logger.Error("failed to process chat turn", zap.Error(err))
		http.Error(w, "Failed to save message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, messageResponse{Message: msg, ConversationID: sess.ActiveConversationID})
}

func (h *Handler) SummarizeVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		URL      string `json:"url"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "A YouTube URL is required", http.StatusBadRequest)
		return
	}
	if req.Language == "" {
		req.Language = tools.LanguageEnglish
	}

	msg, err := sess.RunTool(r.Context(), session.ToolFunc(func(ctx context.Context, _ []models.Message) models.Message {
		return h.video.Summarize(ctx, req.URL, req.Language)
	}))
	if err != nil {
		h.logger.Error("failed to record video summary", zap.Error(err))
		http.Error(w, "Failed to save message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, messageResponse{Message: msg, ConversationID: sess.ActiveConversationID})
}

func (h *Handler) SummarizePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "A PDF upload is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	msg, err := sess.RunTool(r.Context(), session.ToolFunc(func(ctx context.Context, _ []models.Message) models.Message {
		return h.docs.Summarize(ctx, contents)
	}))
	if err != nil {
		h.logger.Error("failed to record PDF summary", zap.Error(err))
		http.Error(w, "Failed to save message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, messageResponse{Message: msg, ConversationID: sess.ActiveConversationID})
}

func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		http.Error(w, "An image prompt is required", http.StatusBadRequest)
		return
	}

	msg, err := sess.SubmitUserTurn(r.Context(), req.Prompt, session.ToolFunc(func(ctx context.Context, _ []models.Message) models.Message {
		return h.image.Generate(ctx, req.Prompt)
	}))
	if err != nil {
		h.logger.Error("failed to process image turn", zap.Error(err))
		http.Error(w, "Failed to save message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, messageResponse{Message: msg, ConversationID: sess.ActiveConversationID})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := h.sessions.Get(r.Header.Get(sessionHeader))
	if !ok {
		http.Error(w, "Not logged in", http.StatusUnauthorized)
		return nil, false
	}
	return sess, true
}

func (h *Handler) grouped(w http.ResponseWriter, username string) (*history.Index, bool) {
	records, err := h.db.ListMessages(username)
	if err != nil {
		h.logger.Error("failed to list messages", zap.Error(err), zap.String("username", username))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return history.Group(records), true
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
