package entity

import "time"

// OutreachRecord is the fixed-shape payload forwarded to the delivery API
// when a lead is sent: contact identity, the source-post snapshot, both AI
// drafts, and the finalized message with its send timestamp.
type OutreachRecord struct {
	ID             string     `json:"id"`
	PersonID       string     `json:"person_id"`
	ContactName    string     `json:"contact_name"`
	Position       string     `json:"position,omitempty"`
	Company        string     `json:"company,omitempty"`
	LinkedinURL    string     `json:"linkedin_url"`
	PostURL        string     `json:"post_url,omitempty"`
	PostContent    string     `json:"post_content,omitempty"`
	PostDate       *time.Time `json:"post_date,omitempty"`
	AIMessage      string     `json:"ai_message"`
	AIComment      string     `json:"ai_comment,omitempty"`
	RelevanceScore *int       `json:"relevance_score,omitempty"`
	FinalMessage   string     `json:"final_message"`
	SentAt         time.Time  `json:"sent_at"`
}

// NewOutreachRecord snapshots a lead for delivery. The final message falls
// back from the explicit override to the stored edit to the AI draft.
func NewOutreachRecord(lead *Lead, overrideMessage string, sentAt time.Time) OutreachRecord {
	final := overrideMessage
	if final == "" {
		final = lead.OutreachMessage()
	}
	return OutreachRecord{
		ID:             lead.ID,
		PersonID:       lead.PersonID,
		ContactName:    lead.ContactName,
		Position:       lead.Position,
		Company:        lead.Company,
		LinkedinURL:    lead.LinkedinURL,
		PostURL:        lead.PostURL,
		PostContent:    lead.PostContent,
		PostDate:       lead.PostDate,
		AIMessage:      lead.AIMessage,
		AIComment:      lead.AIComment,
		RelevanceScore: lead.RelevanceScore,
		FinalMessage:   final,
		SentAt:         sentAt,
	}
}
