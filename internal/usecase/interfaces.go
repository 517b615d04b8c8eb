package usecase

import (
	"context"
	"time"

	"github.com/max-knopp/intellio/internal/entity"
)

// Session identifies the authenticated caller. It is passed explicitly to
// every operation that needs identity or authorization; there is no ambient
// current-user state.
type Session struct {
	UserID string
	Email  string
}

// LeadUpdate is a partial-field update. Nil pointers leave the column
// untouched, which is what keeps sent_at monotonic: it is only ever set,
// never cleared.
type LeadUpdate struct {
	Status            *entity.LeadStatus
	FinalMessage      *string
	FinalComment      *string
	RejectionFeedback *string
	Notes             *string
	SentAt            *time.Time
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	// FindAllForUser returns the user's own leads plus leads belonging to
	// any organization the user is a member of, newest first.
	FindAllForUser(ctx context.Context, userID string) ([]entity.Lead, error)
	FindByStatuses(ctx context.Context, statuses []entity.LeadStatus) ([]entity.Lead, error)
	Update(ctx context.Context, id string, fields LeadUpdate) error
}

type UserDirectoryInterface interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
}

type MembershipInterface interface {
	IsMember(ctx context.Context, orgID, userID string) (bool, error)
}

type DispatchLogRepositoryInterface interface {
	Insert(ctx context.Context, log *entity.DispatchLog) error
}

// OutreachGateway forwards a finalized record to the third-party delivery
// API and reports the raw response so the attempt can be audited.
type OutreachGateway interface {
	IngestRecord(ctx context.Context, payload entity.OutreachRecord) (status int, body string, err error)
}

// EventPublisherInterface announces newly ingested leads. Publishing is best
// effort; ingestion must not fail because the broker is down.
type EventPublisherInterface interface {
	PublishLeadIngested(ctx context.Context, event LeadIngestedEvent) error
}

type LeadIngestedEvent struct {
	LeadID      string `json:"lead_id"`
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	ContactName string `json:"contact_name"`
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Score       *int   `json:"relevance_score,omitempty"`
}

// Dispatcher is the lifecycle's hook into outreach delivery. The send
// transition persists first, then dispatches through this.
type Dispatcher interface {
	Dispatch(ctx context.Context, session Session, leadID, message string) error
}
