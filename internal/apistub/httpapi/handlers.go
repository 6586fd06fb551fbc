package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gynecare/internal/apistub/auth"
	"github.com/dmitrijs2005/gynecare/internal/apistub/store"
	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/gorilla/mux"
)

const grantTypePassword = "password"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeOAuthError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{"error": code, "error_description": description})
}

// writeStoreError maps store failures onto the reply shapes the client
// decodes.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var fe store.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, fe)
	case errors.Is(err, store.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found.")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		writeDetail(w, http.StatusInternalServerError, "A server error occurred.")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return false
	}
	return true
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// token implements the OAuth password grant. Both JSON and form bodies are
// accepted.
func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			writeOAuthError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		req = models.TokenRequest{
			GrantType:    r.PostForm.Get("grant_type"),
			Username:     r.PostForm.Get("username"),
			Password:     r.PostForm.Get("password"),
			ClientID:     r.PostForm.Get("client_id"),
			ClientSecret: r.PostForm.Get("client_secret"),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "Malformed request body.")
		return
	}

	if req.GrantType != grantTypePassword {
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type", "Unsupported grant type.")
		return
	}
	if s.clientID != "" && (req.ClientID != s.clientID || req.ClientSecret != s.clientSecret) {
		writeOAuthError(w, http.StatusUnauthorized, "invalid_client", "Invalid client credentials.")
		return
	}

	user, err := s.store.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeOAuthError(w, http.StatusBadRequest, "invalid_grant", "Invalid credentials given.")
			return
		}
		s.writeStoreError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "token issued", "user_id", user.ID)

	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		TokenType:   "Bearer",
		Scope:       "read write",
	})
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if !decodeBody(w, r, &reg) {
		return
	}
	user, err := s.store.CreateUser(reg)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.User(userIDFromContext(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id != userIDFromContext(r.Context()) {
		writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}
	var upd models.ProfileUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	user, err := s.store.UpdateUser(id, upd)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) listChats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ChatSessions(userIDFromContext(r.Context())))
}

func (s *Server) createChat(w http.ResponseWriter, r *http.Request) {
	var req models.NewChatSession
	if !decodeBody(w, r, &req) {
		return
	}
	// The owner is always the caller, whatever the body says.
	cs := s.store.CreateChatSession(userIDFromContext(r.Context()), req.Title)
	writeJSON(w, http.StatusCreated, cs)
}

func (s *Server) getChat(w http.ResponseWriter, r *http.Request) {
	cs, err := s.store.ChatSession(userIDFromContext(r.Context()), pathID(r))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	userMsg, botMsg, err := s.store.AddMessage(userIDFromContext(r.Context()), pathID(r), req.Text, req.PainScale)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SendMessageResult{UserMessage: userMsg, BotMessage: botMsg})
}

func (s *Server) listDoctors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"results": s.store.Doctors()})
}

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Appointments(userIDFromContext(r.Context())))
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req models.AppointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a, err := s.store.CreateAppointment(userIDFromContext(r.Context()), req)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
