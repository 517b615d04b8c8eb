package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/max-knopp/intellio/internal/entity"
)

func statusLead(id string, status entity.LeadStatus, age time.Duration, score *int, now time.Time) entity.Lead {
	lead := leadAt(id, age, score, now)
	lead.Status = status
	lead.UserID = "user-1"
	return lead
}

func TestBuildInboxPartitionsByStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	leads := []entity.Lead{
		statusLead("p1", entity.StatusPending, time.Hour, intp(80), now),
		statusLead("c1", entity.StatusCommented, time.Hour, nil, now),
		statusLead("s1", entity.StatusSent, time.Hour, nil, now),
		statusLead("r1", entity.StatusRejected, time.Hour, nil, now),
		statusLead("i1", entity.StatusInterested, time.Hour, nil, now),
		statusLead("v1", entity.StatusConverted, time.Hour, nil, now),
	}

	snap := BuildInbox(leads, SortRecencyThenScore, now)

	assert.Equal(t, []string{"p1"}, ids(snap.Pending))
	assert.Equal(t, []string{"c1"}, ids(snap.Commented))
	assert.Equal(t, []string{"s1"}, ids(snap.Sent))
	assert.Equal(t, []string{"r1"}, ids(snap.Rejected))
	assert.Equal(t, 1, snap.InterestedCount)
	assert.Equal(t, 1, snap.ConvertedCount)

	// Interested/converted never land in a display bucket.
	assert.False(t, snap.Contains("i1"))
	assert.False(t, snap.Contains("v1"))
}

func TestBuildInboxRanksEachBucketIndependently(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	leads := []entity.Lead{
		statusLead("p-warm", entity.StatusPending, 30*time.Hour, intp(99), now),
		statusLead("p-hot", entity.StatusPending, time.Hour, intp(10), now),
		statusLead("r-cold", entity.StatusRejected, 100*time.Hour, intp(50), now),
		statusLead("r-hot", entity.StatusRejected, time.Hour, nil, now),
	}

	snap := BuildInbox(leads, SortRecencyThenScore, now)

	assert.Equal(t, []string{"p-hot", "p-warm"}, ids(snap.Pending))
	assert.Equal(t, []string{"r-hot", "r-cold"}, ids(snap.Rejected))
}

func TestInboxControllerClearsVanishedSelection(t *testing.T) {
	now := time.Now().UTC()
	session := Session{UserID: "user-1"}
	reader := new(MockLeadRepository)

	pending := statusLead("lead-1", entity.StatusPending, time.Hour, nil, now)

	// First fetch: the lead is pending and selectable.
	reader.On("FindAllForUser", mock.Anything, "user-1").Return([]entity.Lead{pending}, nil).Once()

	c := NewInboxController(reader, SortRecencyThenScore)
	_, err := c.Refresh(context.Background(), session)
	assert.NoError(t, err)
	assert.True(t, c.Select("lead-1"))

	selected, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, "lead-1", selected)

	// Second fetch: the lead became interested and left every bucket.
	interested := pending
	interested.Status = entity.StatusInterested
	reader.On("FindAllForUser", mock.Anything, "user-1").Return([]entity.Lead{interested}, nil).Once()

	_, err = c.Refresh(context.Background(), session)
	assert.NoError(t, err)

	_, ok = c.Selected()
	assert.False(t, ok, "selection must be cleared when the lead leaves the result set")
}

func TestInboxControllerRefusesUnknownSelection(t *testing.T) {
	reader := new(MockLeadRepository)
	reader.On("FindAllForUser", mock.Anything, "user-1").Return([]entity.Lead{}, nil)

	c := NewInboxController(reader, SortRecencyThenScore)
	_, err := c.Refresh(context.Background(), Session{UserID: "user-1"})
	assert.NoError(t, err)

	assert.False(t, c.Select("ghost"))
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestInboxControllerSortModeSwitch(t *testing.T) {
	c := NewInboxController(new(MockLeadRepository), SortRecencyThenScore)

	assert.NoError(t, c.SetSortMode(SortScoreThenRecency))
	assert.Error(t, c.SetSortMode("relevancy"))
}
