package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/max-knopp/intellio/internal/entity"
	"github.com/max-knopp/intellio/internal/infra/integration/automation"
)

type LeadSource interface {
	FindByStatuses(ctx context.Context, statuses []entity.LeadStatus) ([]entity.Lead, error)
}

type DigestLogStore interface {
	AlreadySent(ctx context.Context, summaryDate string) (bool, error)
	Record(ctx context.Context, log *entity.DigestLog) error
}

type SummaryPoster interface {
	PostSummary(ctx context.Context, payload automation.SummaryPayload) (int, error)
}

// DailyDigestWorker posts the actionable-lead summary to the automation
// webhook once per calendar day. The daily_summary_log row is the
// idempotency guard, so restarting the service never double-sends.
type DailyDigestWorker struct {
	leads        LeadSource
	digestLog    DigestLogStore
	webhook      SummaryPoster
	tickInterval time.Duration
	now          func() time.Time
	log          zerolog.Logger
}

func NewDailyDigestWorker(leads LeadSource, digestLog DigestLogStore, webhook SummaryPoster, log zerolog.Logger) *DailyDigestWorker {
	return &DailyDigestWorker{
		leads:        leads,
		digestLog:    digestLog,
		webhook:      webhook,
		tickInterval: time.Hour,
		now:          func() time.Time { return time.Now().UTC() },
		log:          log.With().Str("component", "daily_digest").Logger(),
	}
}

func (w *DailyDigestWorker) Start(ctx context.Context) {
	w.log.Info().Msg("daily digest worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("daily digest worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce sends today's digest unless it already went out.
func (w *DailyDigestWorker) RunOnce(ctx context.Context) {
	now := w.now()
	summaryDate := now.Format("2006-01-02")

	sent, err := w.digestLog.AlreadySent(ctx, summaryDate)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to check digest log")
		return
	}
	if sent {
		return
	}

	leads, err := w.leads.FindByStatuses(ctx, []entity.LeadStatus{
		entity.StatusPending, entity.StatusInterested, entity.StatusConverted,
	})
	if err != nil {
		w.log.Error().Err(err).Msg("failed to fetch leads for digest")
		return
	}

	hot, warm := CountByRecency(leads, now)

	payload := automation.SummaryPayload{
		HotLeads:        hot,
		WarmLeads:       warm,
		TotalActionable: hot + warm,
		Timestamp:       now.Format(time.RFC3339),
	}

	status, postErr := w.webhook.PostSummary(ctx, payload)
	if postErr != nil {
		w.log.Error().Err(postErr).Int("status", status).Msg("failed to post daily digest")
		return
	}

	entry := &entity.DigestLog{
		ID:              uuid.New().String(),
		SummaryDate:     summaryDate,
		HotLeads:        hot,
		WarmLeads:       warm,
		TotalActionable: hot + warm,
		CreatedAt:       now,
	}
	if status != 0 {
		entry.WebhookStatus = &status
	}
	if err := w.digestLog.Record(ctx, entry); err != nil {
		w.log.Error().Err(err).Msg("digest delivered but failed to record it")
		return
	}

	w.log.Info().Int("hot", hot).Int("warm", warm).Str("date", summaryDate).Msg("daily digest sent")
}

// CountByRecency buckets leads the same way the inbox does: hot is younger
// than 24h, warm younger than 72h. Cold leads are not counted as
// actionable.
func CountByRecency(leads []entity.Lead, now time.Time) (hot, warm int) {
	for i := range leads {
		switch entity.ClassifyRecency(leads[i].EffectiveDate(), now) {
		case entity.RecencyHot:
			hot++
		case entity.RecencyWarm:
			warm++
		}
	}
	return hot, warm
}
