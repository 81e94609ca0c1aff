package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jack-dao/team-management/internal/api/middleware"
	"github.com/jack-dao/team-management/internal/api/response"
	"github.com/jack-dao/team-management/internal/api/validation"
	"github.com/jack-dao/team-management/internal/member"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// MemberService is the domain behaviour the member endpoints depend on.
type MemberService interface {
	List(ctx context.Context, filter member.SearchFilter) ([]member.TeamMember, error)
	Get(ctx context.Context, id int64) (*member.TeamMember, error)
	Create(ctx context.Context, c member.Candidate) (*member.TeamMember, error)
	Update(ctx context.Context, id int64, c member.Candidate) (*member.TeamMember, error)
	Delete(ctx context.Context, id int64) error
}

// memberRequest is the request body for POST and PUT. Server-assigned
// fields (id, createdAt, updatedAt) are not decoded.
type memberRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Function string `json:"function"`
	Role     string `json:"role"`
}

type memberResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Function  string `json:"function"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toMemberResponse(m *member.TeamMember) memberResponse {
	return memberResponse{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		Function:  string(m.Function),
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: m.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// MemberHandler handles team member CRUD endpoints.
type MemberHandler struct {
	svc MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// List handles GET /team-members.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	params := r.URL.Query()

	filter := member.SearchFilter{Query: params.Get("q")}
	if v := params.Get("function"); v != "" {
		fn, err := member.ParseJobFunction(v)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_PARAM", fmt.Sprintf("function %q is not a valid job function", v), requestID)
			return
		}
		filter.Function = &fn
	}
	if v := params.Get("role"); v != "" {
		role, err := member.ParseRole(v)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_PARAM", fmt.Sprintf("role %q is not a valid role", v), requestID)
			return
		}
		filter.Role = &role
	}

	members, err := h.svc.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list team members", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list team members", requestID)
		return
	}

	items := make([]memberResponse, 0, len(members))
	for i := range members {
		items = append(items, toMemberResponse(&members[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// GetByID handles GET /team-members/{id}.
func (h *MemberHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team member not found", requestID)
			return
		}
		slog.Error("failed to get team member", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get team member", requestID)
		return
	}

	response.Success(w, http.StatusOK, toMemberResponse(m))
}

// Create handles POST /team-members.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	candidate, ok := decodeCandidate(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Create(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, member.ErrEmailTaken) {
			response.Err(w, http.StatusConflict, "DUPLICATE_EMAIL", fmt.Sprintf("A team member with email %q already exists", candidate.Email), requestID)
			return
		}
		slog.Error("failed to create team member", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create team member", requestID)
		return
	}

	slog.Info("team member created", "id", m.ID, "requestId", requestID)
	response.Success(w, http.StatusCreated, toMemberResponse(m))
}

// Update handles PUT /team-members/{id}.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	candidate, ok := decodeCandidate(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Update(r.Context(), id, candidate)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team member not found", requestID)
		case errors.Is(err, member.ErrEmailTaken):
			response.Err(w, http.StatusConflict, "DUPLICATE_EMAIL", fmt.Sprintf("A team member with email %q already exists", candidate.Email), requestID)
		default:
			slog.Error("failed to update team member", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update team member", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, toMemberResponse(m))
}

// Delete handles DELETE /team-members/{id}.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, member.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team member not found", requestID)
			return
		}
		slog.Error("failed to delete team member", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete team member", requestID)
		return
	}

	slog.Info("team member deleted", "id", id, "requestId", requestID)
	response.NoContent(w)
}

// parseID reads the {id} URL parameter, writing a 400 response when it is not an integer.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be an integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}

// decodeCandidate decodes and validates a member body, writing a 400 response on failure.
func decodeCandidate(w http.ResponseWriter, r *http.Request) (member.Candidate, bool) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return member.Candidate{}, false
	}

	fieldErrors := validation.ValidateMemberRequest(validation.MemberRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Function: req.Function,
		Role:     req.Role,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return member.Candidate{}, false
	}

	// Both values were checked by ValidateMemberRequest.
	fn, _ := member.ParseJobFunction(req.Function)
	role, _ := member.ParseRole(req.Role)

	return member.Candidate{
		FullName: req.FullName,
		Email:    req.Email,
		Function: fn,
		Role:     role,
	}, true
}
