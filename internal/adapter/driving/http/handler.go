package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/huddlehq/huddle/internal/core/domain"
	"github.com/huddlehq/huddle/internal/core/port"
	"github.com/huddlehq/huddle/internal/core/service"
)

type Handler struct {
	Rooms    *service.Rooms
	Relay    *service.Relay
	Registry *service.Registry
	Repo     port.MessageRepository
	Identity port.IdentityStore
}

func NewHandler(rooms *service.Rooms, relay *service.Relay, registry *service.Registry,
	repo port.MessageRepository, identity port.IdentityStore) *Handler {
	return &Handler{
		Rooms:    rooms,
		Relay:    relay,
		Registry: registry,
		Repo:     repo,
		Identity: identity,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ws", h.ServeWS)
	r.Get("/healthz", h.Health)
	r.Get("/stats", h.Stats)
	r.Get("/rooms/{roomID}/messages", h.RoomMessages)
	r.Get("/profiles/{userID}", h.GetProfile)
	r.Put("/profiles/{userID}", h.PutProfile)

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rooms, sessions := h.Registry.Stats()
	writeJSON(w, http.StatusOK, map[string]int{"rooms": rooms, "sessions": sessions})
}

type messageDTO struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SenderID  string    `json:"senderId"`
}

func (h *Handler) RoomMessages(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	msgs, err := h.Repo.ByRoom(r.Context(), roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("history query failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}

	dtos := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, messageDTO{
			ID:        m.ID,
			Author:    m.Author,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			SenderID:  m.SenderID,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

type profileDTO struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, err := h.Identity.GetProfile(r.Context(), userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "profile unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, profileDTO{UserID: profile.UserID, DisplayName: profile.DisplayName})
}

func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var dto profileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(dto.DisplayName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "displayName is required"})
		return
	}

	profile := domain.Profile{UserID: userID, DisplayName: strings.TrimSpace(dto.DisplayName)}
	if err := h.Identity.UpsertProfile(r.Context(), profile); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("profile upsert failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "profile unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, profileDTO{UserID: profile.UserID, DisplayName: profile.DisplayName})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
