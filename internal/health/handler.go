// Package health serves the unauthenticated status endpoints of the bot.
package health

import (
	"encoding/json"
	"net/http"
)

// RootMessage is the plain text body of GET /.
const RootMessage = "📚 Question Paper Bot is running! 🤖"

// Handler serves fixed, side-effect free status payloads.
type Handler struct {
	Bot string
}

// NewHandler returns a handler reporting the given bot name.
func NewHandler(bot string) *Handler {
	return &Handler{Bot: bot}
}

type healthResponse struct {
	Status string `json:"status"`
	Bot    string `json:"bot"`
}

// ServeRoot handles GET /.
func (h *Handler) ServeRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(RootMessage))
}

// ServeHealth handles GET /health.
//
//	{"status":"healthy","bot":"question_paper_bot"}
func (h *Handler) ServeHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "healthy", Bot: h.Bot})
}
