package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter assembles the API surface. Registration and login are public;
// everything else requires a valid bearer token.
func NewRouter(auth *AuthMiddleware, users *UserHandler, rooms *RoomHandler, meetings *MeetingHandler, notifications *NotificationHandler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", users.Login).Methods(http.MethodPost)
	api.HandleFunc("/users", users.Register).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(auth.Handler)

	protected.HandleFunc("/users", users.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", users.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id}", users.Get).Methods(http.MethodGet)

	protected.HandleFunc("/meeting-rooms", rooms.Create).Methods(http.MethodPost)
	protected.HandleFunc("/meeting-rooms", rooms.List).Methods(http.MethodGet)
	protected.HandleFunc("/meeting-rooms/available", meetings.Availability).Methods(http.MethodGet)
	protected.HandleFunc("/meeting-rooms/{id}", rooms.Get).Methods(http.MethodGet)
	protected.HandleFunc("/meeting-rooms/{id}", rooms.Update).Methods(http.MethodPut)
	protected.HandleFunc("/meeting-rooms/{id}", rooms.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/meetings", meetings.Create).Methods(http.MethodPost)
	protected.HandleFunc("/meetings", meetings.List).Methods(http.MethodGet)
	protected.HandleFunc("/meetings/{id}", meetings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/meetings/{id}", meetings.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/meetings/{id}/cancel", meetings.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/meetings/{id}/approve", meetings.Approve).Methods(http.MethodPost)
	protected.HandleFunc("/meetings/{id}/reject", meetings.Reject).Methods(http.MethodPost)
	protected.HandleFunc("/meetings/{id}/approvals", meetings.ApprovalHistory).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}
