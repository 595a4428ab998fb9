package http

import (
	"net/http"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"
	"meetingroom-backend/internal/service"

	"github.com/gorilla/mux"
)

type RoomHandler struct {
	rooms service.RoomService
}

func NewRoomHandler(rooms service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

type roomRequest struct {
	Name         string            `json:"name"`
	Code         string            `json:"code"`
	Location     string            `json:"location"`
	Capacity     int32             `json:"capacity"`
	Status       domain.RoomStatus `json:"status"`
	NeedApproval bool              `json:"need_approval"`
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	if RoleFromContext(r.Context()) != domain.UserRoleAdmin {
		writeError(w, domain.ErrForbidden)
		return
	}
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	room, err := h.rooms.Create(r.Context(), service.CreateRoomInput{
		Name:         req.Name,
		Code:         req.Code,
		Location:     req.Location,
		Capacity:     req.Capacity,
		Status:       req.Status,
		NeedApproval: req.NeedApproval,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.RoomFilter{
		Keyword:     q.Get("keyword"),
		Status:      domain.RoomStatus(q.Get("status")),
		MinCapacity: parseInt32(q.Get("min_capacity"), 0),
		Page:        parseInt32(q.Get("page"), 1),
		PageSize:    parseInt32(q.Get("limit"), 10),
	}
	rooms, total, err := h.rooms.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  rooms,
		"total": total,
		"page":  filter.Page,
		"limit": filter.PageSize,
	})
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	if RoleFromContext(r.Context()) != domain.UserRoleAdmin {
		writeError(w, domain.ErrForbidden)
		return
	}
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	room := &domain.Room{
		ID:           mux.Vars(r)["id"],
		Name:         req.Name,
		Code:         req.Code,
		Location:     req.Location,
		Capacity:     req.Capacity,
		Status:       req.Status,
		NeedApproval: req.NeedApproval,
	}
	updated, err := h.rooms.Update(r.Context(), room)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if RoleFromContext(r.Context()) != domain.UserRoleAdmin {
		writeError(w, domain.ErrForbidden)
		return
	}
	if err := h.rooms.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
