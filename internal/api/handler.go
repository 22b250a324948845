package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ragline/backend/internal/interfaces"
	"ragline/backend/internal/model"
)

const defaultConversationLimit = 50

// ChatHandler handles HTTP requests for question answering and conversation
// management.
type ChatHandler struct {
	service interfaces.ChatService
	stats   interfaces.StatsProvider
}

func NewChatHandler(svc interfaces.ChatService, stats interfaces.StatsProvider) *ChatHandler {
	return &ChatHandler{service: svc, stats: stats}
}

// HandleAsk godoc
// @Summary      Ask a question
// @Description  Answers a question with retrieval-augmented generation. A missing conversation_id starts a new conversation.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        askRequest  body  AskRequest  true  "Question"
// @Success      200  {object}  model.Answer
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/chat [post]
func (h *ChatHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, false)
}

// HandleAskAdvanced godoc
// @Summary      Ask a question with quality validation
// @Description  Like /chat, but the answer additionally carries a quality report and the retrieval configuration used.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        askRequest  body  AskRequest  true  "Question"
// @Success      200  {object}  model.Answer
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/chat/advanced [post]
func (h *ChatHandler) HandleAskAdvanced(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, true)
}

func (h *ChatHandler) ask(w http.ResponseWriter, r *http.Request, advanced bool) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	question := model.Question{
		Text:           req.Question,
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
		Complexity:     model.Complexity(req.Complexity),
		DocumentCount:  req.DocumentCount,
	}

	var answer *model.Answer
	var err error
	if advanced {
		answer, err = h.service.AskWithAdvancedRAG(r.Context(), question)
	} else {
		answer, err = h.service.Ask(r.Context(), question)
	}
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, answer)
}

// HandleListConversations godoc
// @Summary      List conversations
// @Description  Lists the user's conversations, most recently active first.
// @Tags         Conversations
// @Produce      json
// @Param        user_id  query  string  true   "User ID"
// @Param        limit    query  int     false  "Maximum number of conversations"
// @Success      200  {array}   model.Conversation
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ChatHandler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_id query parameter is required"})
		return
	}

	limit := defaultConversationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	conversations, err := h.service.ListConversations(r.Context(), userID, limit)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if conversations == nil {
		conversations = []*model.Conversation{}
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

// HandleGetHistory godoc
// @Summary      Get conversation history
// @Description  Returns a conversation's messages in chronological order, with sources on assistant turns.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path   string  true  "Conversation ID"
// @Param        user_id         query  string  true  "User ID"
// @Success      200  {array}   model.Message
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages [get]
func (h *ChatHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_id query parameter is required"})
		return
	}

	messages, err := h.service.GetHistory(r.Context(), conversationID, userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	respondWithJSON(w, http.StatusOK, messages)
}

// HandleDeleteConversation godoc
// @Summary      Delete a conversation
// @Description  Deletes a conversation and all its messages. Deleting a missing conversation succeeds.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path   string  true  "Conversation ID"
// @Param        user_id         query  string  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ChatHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_id query parameter is required"})
		return
	}

	if err := h.service.DeleteConversation(r.Context(), conversationID, userID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleStats godoc
// @Summary      Runtime statistics
// @Description  Returns in-memory counters: questions, failures, tokens, cost, model selections.
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  metrics.Snapshot
// @Router       /v1/stats [get]
func (h *ChatHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.stats.Stats())
}
