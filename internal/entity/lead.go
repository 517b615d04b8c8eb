package entity

import (
	"time"
)

type LeadStatus string

const (
	StatusPending    LeadStatus = "pending"
	StatusCommented  LeadStatus = "commented"
	StatusSent       LeadStatus = "sent"
	StatusRejected   LeadStatus = "rejected"
	StatusInterested LeadStatus = "interested"
	StatusConverted  LeadStatus = "converted"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCommented, StatusSent, StatusRejected, StatusInterested, StatusConverted:
		return true
	}
	return false
}

// Actionable reports whether the Send/Reject/MarkCommented actions are still
// offered for a lead in this status. Once a lead leaves pending through a
// user action it is immutable to those three actions.
func (s LeadStatus) Actionable() bool {
	return s == StatusPending
}

// Lead is a candidate contact plus its AI-drafted outreach content and the
// review decision taken on it.
type Lead struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	OrgID           *string    `json:"org_id,omitempty"`
	PersonID        string     `json:"person_id"`
	ContactName     string     `json:"contact_name"`
	Position        string     `json:"position,omitempty"`
	Company         string     `json:"company,omitempty"`
	ProfilePhotoURL string     `json:"profile_photo_url,omitempty"`
	LinkedinURL     string     `json:"linkedin_url"`
	PostURL         string     `json:"post_url,omitempty"`
	PostContent     string     `json:"post_content,omitempty"`
	PostDate        *time.Time `json:"post_date,omitempty"`

	AIMessage string `json:"ai_message"`
	AIComment string `json:"ai_comment,omitempty"`

	// FinalMessage/FinalComment are the user-edited overrides. The AI drafts
	// above are never mutated once the lead is created.
	FinalMessage string `json:"final_message,omitempty"`
	FinalComment string `json:"final_comment,omitempty"`

	RelevanceScore *int `json:"relevance_score,omitempty"`

	Status            LeadStatus `json:"status"`
	RejectionFeedback string     `json:"rejection_feedback,omitempty"`
	Notes             string     `json:"notes,omitempty"`

	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// EffectiveDate is the timestamp all recency computations are based on:
// the source post date when known, the creation time otherwise.
func (l *Lead) EffectiveDate() time.Time {
	if l.PostDate != nil {
		return *l.PostDate
	}
	return l.CreatedAt
}

// ScoreOrZero treats a missing relevance score as 0 for ordering purposes.
// Display code must still distinguish absence from an actual zero.
func (l *Lead) ScoreOrZero() int {
	if l.RelevanceScore == nil {
		return 0
	}
	return *l.RelevanceScore
}

// OutreachMessage is the text that goes out on send: the user's edit when
// present, the AI draft otherwise.
func (l *Lead) OutreachMessage() string {
	if l.FinalMessage != "" {
		return l.FinalMessage
	}
	return l.AIMessage
}

type Recency int

const (
	RecencyHot Recency = iota
	RecencyWarm
	RecencyCold
)

const (
	HotWindow  = 24 * time.Hour
	WarmWindow = 72 * time.Hour
)

func (r Recency) String() string {
	switch r {
	case RecencyHot:
		return "hot"
	case RecencyWarm:
		return "warm"
	default:
		return "cold"
	}
}

// ClassifyRecency buckets a lead by the age of its effective date.
// Younger than 24h is hot, younger than 72h is warm, the rest cold.
func ClassifyRecency(effective, now time.Time) Recency {
	age := now.Sub(effective)
	switch {
	case age < HotWindow:
		return RecencyHot
	case age < WarmWindow:
		return RecencyWarm
	default:
		return RecencyCold
	}
}
