// Package v1 is the REST surface of the agent
package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/va6996/mcpworkshop/agents"
	logcontext "github.com/va6996/mcpworkshop/context"
	"github.com/va6996/mcpworkshop/log"
	"github.com/va6996/mcpworkshop/memory"
)

const Version = "1.0.0"

// Agent is what the API needs from agents.Agent
type Agent interface {
	Initialized() bool
	ToolCount() int
	Chat(ctx context.Context, message, threadID string) (*agents.ChatResult, error)
	History(ctx context.Context, threadID string) ([]memory.Message, error)
}

type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	ThreadID string `json:"thread_id"`
}

type HistoryResponse struct {
	ThreadID string           `json:"thread_id"`
	Messages []memory.Message `json:"messages"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Server serves the chat, history and health endpoints for one agent
type Server struct {
	agent    Agent
	title    string
	validate *validator.Validate
}

func NewServer(agent Agent, title string) *Server {
	return &Server{
		agent:    agent,
		title:    title,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handler returns the routes of the API. CORS is applied by the caller.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.root)
	mux.HandleFunc("POST /chat", s.chat)
	mux.HandleFunc("GET /history/{thread_id}", s.history)
	mux.HandleFunc("GET /health", s.health)
	return mux
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]interface{}{
		"message": s.title,
		"version": Version,
		"endpoints": map[string]string{
			"POST /chat":               "Enviar mensaje al agente",
			"GET /history/{thread_id}": "Obtener historial de conversación",
			"GET /health":              "Verificar estado del sistema",
		},
	})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	ctx := logcontext.WithRequestID(r.Context(), logcontext.NewRequestID())

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Cuerpo inválido: %v", err))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Cuerpo inválido: %v", err))
		return
	}
	if req.ThreadID == "" {
		req.ThreadID = logcontext.DefaultThreadID
	}

	if !s.agent.Initialized() {
		writeError(ctx, w, http.StatusServiceUnavailable, "Agente no inicializado")
		return
	}

	log.Infof(ctx, "Received chat message on thread %s", req.ThreadID)
	res, err := s.agent.Chat(ctx, req.Message, req.ThreadID)
	if err != nil {
		log.Errorf(ctx, "Chat failed: %v", err)
		writeError(ctx, w, http.StatusInternalServerError, fmt.Sprintf("Error al procesar mensaje: %v", err))
		return
	}
	writeJSON(ctx, w, http.StatusOK, res)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	threadID := r.PathValue("thread_id")

	if !s.agent.Initialized() {
		writeError(ctx, w, http.StatusServiceUnavailable, "Agente no inicializado")
		return
	}

	msgs, err := s.agent.History(ctx, threadID)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, fmt.Sprintf("Error al obtener historial: %v", err))
		return
	}
	writeJSON(ctx, w, http.StatusOK, HistoryResponse{ThreadID: threadID, Messages: msgs})
}

// health always answers 200, the body carries the state
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":     "unhealthy",
		"api":        "online",
		"agente":     "not_initialized",
		"mcp_server": "not_connected",
	}
	if s.agent.Initialized() {
		status["status"] = "healthy"
		status["agente"] = "initialized"
		if n := s.agent.ToolCount(); n > 0 {
			status["mcp_server"] = "connected"
			status["tools_available"] = n
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, status)
}

func writeError(ctx context.Context, w http.ResponseWriter, code int, detail string) {
	writeJSON(ctx, w, code, errorResponse{Detail: detail})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf(ctx, "Failed to write response: %v", err)
	}
}
