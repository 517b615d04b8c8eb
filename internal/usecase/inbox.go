package usecase

import (
	"context"
	"time"

	"github.com/max-knopp/intellio/internal/entity"
)

// InboxSnapshot is one fetch of the user's leads, partitioned by status and
// ranked per bucket. Interested/converted leads are surfaced only as counts;
// they belong to the contacts view.
type InboxSnapshot struct {
	Pending   []entity.Lead `json:"pending"`
	Commented []entity.Lead `json:"commented"`
	Sent      []entity.Lead `json:"sent"`
	Rejected  []entity.Lead `json:"rejected"`

	InterestedCount int `json:"interested_count"`
	ConvertedCount  int `json:"converted_count"`
}

// BuildInbox partitions leads into the four display buckets and ranks each
// bucket independently under the given sort mode.
func BuildInbox(leads []entity.Lead, mode SortMode, now time.Time) *InboxSnapshot {
	snap := &InboxSnapshot{}
	for _, lead := range leads {
		switch lead.Status {
		case entity.StatusPending:
			snap.Pending = append(snap.Pending, lead)
		case entity.StatusCommented:
			snap.Commented = append(snap.Commented, lead)
		case entity.StatusSent:
			snap.Sent = append(snap.Sent, lead)
		case entity.StatusRejected:
			snap.Rejected = append(snap.Rejected, lead)
		case entity.StatusInterested:
			snap.InterestedCount++
		case entity.StatusConverted:
			snap.ConvertedCount++
		}
	}
	snap.Pending = RankLeads(snap.Pending, mode, now)
	snap.Commented = RankLeads(snap.Commented, mode, now)
	snap.Sent = RankLeads(snap.Sent, mode, now)
	snap.Rejected = RankLeads(snap.Rejected, mode, now)
	return snap
}

// Contains reports whether a lead id is present in any bucket of the
// snapshot.
func (s *InboxSnapshot) Contains(id string) bool {
	for _, bucket := range [][]entity.Lead{s.Pending, s.Commented, s.Sent, s.Rejected} {
		for i := range bucket {
			if bucket[i].ID == id {
				return true
			}
		}
	}
	return false
}

type LeadReader interface {
	FindAllForUser(ctx context.Context, userID string) ([]entity.Lead, error)
}

// InboxController tracks one client session's view of the inbox: the current
// sort mode and the selected lead. It is single-threaded by design, matching
// the one-logical-thread-per-session model of the UI it backs.
type InboxController struct {
	reader     LeadReader
	mode       SortMode
	selectedID string
	snapshot   *InboxSnapshot
}

func NewInboxController(reader LeadReader, mode SortMode) *InboxController {
	if !mode.Valid() {
		mode = SortRecencyThenScore
	}
	return &InboxController{reader: reader, mode: mode}
}

// Refresh refetches the lead collection, rebuilds the buckets and drops the
// selection if the selected lead is no longer in the result set (it changed
// status, or left the caller's visibility).
func (c *InboxController) Refresh(ctx context.Context, session Session) (*InboxSnapshot, error) {
	leads, err := c.reader.FindAllForUser(ctx, session.UserID)
	if err != nil {
		return nil, NewDependencyError("store", err.Error())
	}

	c.snapshot = BuildInbox(leads, c.mode, time.Now().UTC())
	if c.selectedID != "" && !c.snapshot.Contains(c.selectedID) {
		c.selectedID = ""
	}
	return c.snapshot, nil
}

// Select points at a lead from the current snapshot. Ids not present in the
// snapshot are refused, so a stale click can never select an invisible lead.
func (c *InboxController) Select(id string) bool {
	if c.snapshot == nil || !c.snapshot.Contains(id) {
		return false
	}
	c.selectedID = id
	return true
}

func (c *InboxController) Selected() (string, bool) {
	return c.selectedID, c.selectedID != ""
}

func (c *InboxController) ClearSelection() {
	c.selectedID = ""
}

// SetSortMode switches the ordering for subsequent refreshes.
func (c *InboxController) SetSortMode(mode SortMode) error {
	if !mode.Valid() {
		return NewValidationError("unknown sort mode: " + string(mode))
	}
	c.mode = mode
	return nil
}
