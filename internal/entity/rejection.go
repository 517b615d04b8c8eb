package entity

import (
	"errors"
	"strings"
)

// Predefined rejection reason ids. "Other" free text is modeled separately,
// it never gets an id.
const (
	ReasonNotICP      = "not_icp"
	ReasonNotRelevant = "not_relevant"
	ReasonBadQuality  = "bad_quality"
)

var rejectionLabels = map[string]string{
	ReasonNotICP:      "Profile not ICP",
	ReasonNotRelevant: "Post not relevant",
	ReasonBadQuality:  "Bad quality of prewritten comment/message",
}

// RejectionReason is either a predefined reason (by id) or a free-text one.
// The two are only flattened into the stored feedback string at the
// transition boundary, via JoinReasons.
type RejectionReason struct {
	id   string
	text string
}

func PredefinedReason(id string) (RejectionReason, error) {
	if _, ok := rejectionLabels[id]; !ok {
		return RejectionReason{}, errors.New("unknown rejection reason: " + id)
	}
	return RejectionReason{id: id}, nil
}

func FreeTextReason(text string) (RejectionReason, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return RejectionReason{}, errors.New("free-text rejection reason must not be empty")
	}
	return RejectionReason{text: trimmed}, nil
}

func (r RejectionReason) Label() string {
	if r.id != "" {
		return rejectionLabels[r.id]
	}
	return r.text
}

// JoinReasons flattens the selected reasons into the rejection_feedback
// string persisted on the lead.
func JoinReasons(reasons []RejectionReason) string {
	labels := make([]string, 0, len(reasons))
	for _, r := range reasons {
		labels = append(labels, r.Label())
	}
	return strings.Join(labels, ", ")
}
