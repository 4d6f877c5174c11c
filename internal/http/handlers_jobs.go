package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/jobtracker/jobtracker-api/internal/domain/auth"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
)

const msgJobRemoved = "Success! Job removed"

// JobService is the subset of service.JobService the handlers use.
type JobService interface {
	List(ctx context.Context, owner string, params model.JobListParams) (*model.JobPage, error)
	Get(ctx context.Context, owner, id string) (*model.Job, error)
	Create(ctx context.Context, owner string, req model.CreateJobRequest) (*model.Job, error)
	Update(ctx context.Context, owner, id string, req model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, owner, id string) error
	Stats(ctx context.Context, owner string) (*model.JobStats, error)
}

// JobHandlers provides HTTP handlers for job-related operations.
// Every handler expects RequireBearer to have attached the caller identity.
type JobHandlers struct {
	Svc JobService
}

type jobResponse struct {
	Job *model.Job `json:"job"`
}

// ListJobs handles GET /api/v1/jobs.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, err := h.Svc.List(r.Context(), id.UserID, model.JobListParams{
		Status:  q.Get("status"),
		JobType: q.Get("jobType"),
		Sort:    q.Get("sort"),
		Search:  q.Get("search"),
		Page:    q.Get("page"),
		Limit:   q.Get("limit"),
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, page)
}

// GetJob handles GET /api/v1/jobs/{id}.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.Get(r.Context(), id.UserID, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, jobResponse{Job: job})
}

// CreateJob handles POST /api/v1/jobs. The owner is always the caller.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !DecodeJSONLenient(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), id.UserID, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, jobResponse{Job: job})
}

// UpdateJob handles PATCH /api/v1/jobs/{id}.
func (h *JobHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSONLenient(w, r, &req) {
		return
	}

	job, err := h.Svc.Update(r.Context(), id.UserID, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, jobResponse{Job: job})
}

// DeleteJob handles DELETE /api/v1/jobs/{id}.
func (h *JobHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id.UserID, r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteMsg(w, http.StatusOK, msgJobRemoved)
}

// Stats handles GET /api/v1/jobs/stats.
func (h *JobHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	stats, err := h.Svc.Stats(r.Context(), id.UserID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// requireIdentity fetches the caller identity, writing a 401 when the route was
// mounted without RequireBearer.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domainauth.Identity, bool) {
	id, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
	}
	return id, ok
}
