package requests

import (
	"time"

	"github.com/craftlink/craftlink-backend/internal/lifecycle"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/craftlink/craftlink-backend/internal/modules/jobs"
	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/google/uuid"
)

// Join-request statuses. Accepted and rejected are terminal: once the job
// owner has decided, the decision stands.
const (
	StatusPending  lifecycle.Status = "pending"
	StatusAccepted lifecycle.Status = "accepted"
	StatusRejected lifecycle.Status = "rejected"
)

// Transitions is the join-request state machine.
var Transitions = lifecycle.Table{
	StatusPending: {StatusAccepted, StatusRejected},
}

// JoinRequest is a worker's application to a job. The composite unique index
// on (job_id, worker_id) makes a duplicate application fail at the storage
// layer even under concurrent submissions.
type JoinRequest struct {
	ID       uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	JobID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_join_requests_job_worker" json:"job_id"`
	WorkerID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_join_requests_job_worker" json:"worker_id"`
	Status   lifecycle.Status `gorm:"size:20;not null;default:'pending'" json:"status"`
	Message  string           `gorm:"size:1000" json:"message"`
	Rating   *int             `json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Job    jobs.Job    `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Worker models.User `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}

// AllowsActor grants decisions and ratings to the job owner. The Job relation
// must be loaded before this is called.
func (r *JoinRequest) AllowsActor(actor policy.Actor, action policy.Action) bool {
	switch action {
	case policy.ActionDecideRequest, policy.ActionRateRequest:
		return actor.ID == r.Job.OwnerID
	default:
		return false
	}
}

// --- DTOs ---

type ApplyRequest struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type DecideRequest struct {
	Status string `json:"status"`
}

type RateRequest struct {
	Rating int `json:"rating"`
}

type WorkerRatingsRequest struct {
	WorkerIDs []string `json:"worker_ids"`
}
