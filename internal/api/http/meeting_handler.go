package http

import (
	"net/http"
	"strconv"
	"time"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"
	"meetingroom-backend/internal/service"

	"github.com/gorilla/mux"
)

type MeetingHandler struct {
	meetings service.MeetingService
}

func NewMeetingHandler(meetings service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

type createMeetingRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	RoomID       string    `json:"room_id"`
	Participants []string  `json:"participants"`
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMeetingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.meetings.Create(r.Context(), service.CreateMeetingInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RoomID:       req.RoomID,
		Participants: req.Participants,
	}, UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type updateMeetingRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	RoomID       *string    `json:"room_id"`
	Participants []string   `json:"participants"`
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateMeetingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	meeting, err := h.meetings.Update(r.Context(), mux.Vars(r)["id"], service.UpdateMeetingInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RoomID:       req.RoomID,
		Participants: req.Participants,
	}, UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.meetings.Cancel(r.Context(), mux.Vars(r)["id"], UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meeting, err := h.meetings.Approve(ctx, mux.Vars(r)["id"], RoleFromContext(ctx), UserIDFromContext(ctx))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

type rejectMeetingRequest struct {
	Reason string `json:"reason"`
}

func (h *MeetingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectMeetingRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	ctx := r.Context()
	meeting, err := h.meetings.Reject(ctx, mux.Vars(r)["id"], RoleFromContext(ctx), UserIDFromContext(ctx), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := time.Parse(time.RFC3339, q.Get("start_time"))
	if err != nil {
		writeError(w, &domain.ValidationError{Message: "invalid start_time"})
		return
	}
	end, err := time.Parse(time.RFC3339, q.Get("end_time"))
	if err != nil {
		writeError(w, &domain.ValidationError{Message: "invalid end_time"})
		return
	}
	var capacity int64
	if v := q.Get("capacity"); v != "" {
		if capacity, err = strconv.ParseInt(v, 10, 32); err != nil {
			writeError(w, &domain.ValidationError{Message: "invalid capacity"})
			return
		}
	}

	rooms, err := h.meetings.Availability(r.Context(), start, end, int32(capacity))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}

func (h *MeetingHandler) ApprovalHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.meetings.ApprovalHistory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"approvals": records})
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.meetings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.MeetingFilter{
		Keyword:   q.Get("keyword"),
		Status:    domain.MeetingStatus(q.Get("status")),
		RoomID:    q.Get("room_id"),
		CreatorID: q.Get("creator_id"),
	}
	if v := q.Get("start_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.StartFrom = &t
		}
	}
	if v := q.Get("end_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.EndTo = &t
		}
	}
	filter.Page = parseInt32(q.Get("page"), 1)
	filter.PageSize = parseInt32(q.Get("limit"), 10)

	meetings, total, err := h.meetings.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  meetings,
		"total": total,
		"page":  filter.Page,
		"limit": filter.PageSize,
	})
}

func parseInt32(s string, def int32) int32 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 1 {
		return def
	}
	return int32(v)
}
