package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler returns the routed API with request logging applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/token/", s.token).Methods(http.MethodPost)
	r.HandleFunc("/api/users/", s.createUser).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireAuth)

	api.HandleFunc("/users/me/", s.currentUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/", s.updateUser).Methods(http.MethodPatch)

	api.HandleFunc("/chat-sessions/", s.listChats).Methods(http.MethodGet)
	api.HandleFunc("/chat-sessions/", s.createChat).Methods(http.MethodPost)
	api.HandleFunc("/chat-sessions/{id:[0-9]+}/", s.getChat).Methods(http.MethodGet)
	api.HandleFunc("/chat-sessions/{id:[0-9]+}/send-message/", s.sendMessage).Methods(http.MethodPost)

	api.HandleFunc("/doctors/", s.listDoctors).Methods(http.MethodGet)
	api.HandleFunc("/appointments/", s.listAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/", s.createAppointment).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, `Method "`+r.Method+`" not allowed.`)
	})

	return s.logRequests(r)
}
