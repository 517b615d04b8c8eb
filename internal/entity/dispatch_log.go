package entity

import "time"

// DispatchLog is the audit record of one attempt to forward an approved
// message to the outreach API. One row is written per attempt, successful
// or not.
type DispatchLog struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	LeadID         string    `json:"lead_id"`
	RequestPayload []byte    `json:"request_payload"`
	ResponseStatus *int      `json:"response_status,omitempty"`
	ResponseBody   string    `json:"response_body,omitempty"`
	Success        bool      `json:"success"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DigestLog records one daily summary send, keyed on the calendar date so
// the digest is posted at most once per day.
type DigestLog struct {
	ID              string    `json:"id"`
	SummaryDate     string    `json:"summary_date"` // YYYY-MM-DD, UTC
	HotLeads        int       `json:"hot_leads"`
	WarmLeads       int       `json:"warm_leads"`
	TotalActionable int       `json:"total_actionable"`
	WebhookStatus   *int      `json:"webhook_status,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
