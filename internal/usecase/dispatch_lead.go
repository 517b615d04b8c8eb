package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/max-knopp/intellio/internal/entity"
)

// DispatchLeadUseCase forwards a finalized message to the third-party
// outreach API and writes an audit row for every attempt, whether the
// forward succeeded or not.
type DispatchLeadUseCase struct {
	Leads    LeadRepositoryInterface
	Members  MembershipInterface
	Outreach OutreachGateway
	Logs     DispatchLogRepositoryInterface
	log      zerolog.Logger
}

func NewDispatchLeadUseCase(
	leads LeadRepositoryInterface,
	members MembershipInterface,
	outreach OutreachGateway,
	logs DispatchLogRepositoryInterface,
	log zerolog.Logger,
) *DispatchLeadUseCase {
	return &DispatchLeadUseCase{
		Leads:    leads,
		Members:  members,
		Outreach: outreach,
		Logs:     logs,
		log:      log.With().Str("usecase", "dispatch_lead").Logger(),
	}
}

// Dispatch satisfies the lifecycle's Dispatcher hook.
func (uc *DispatchLeadUseCase) Dispatch(ctx context.Context, session Session, leadID, message string) error {
	return uc.Execute(ctx, session, leadID, message)
}

func (uc *DispatchLeadUseCase) Execute(ctx context.Context, session Session, leadID, overrideMessage string) error {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return ErrLeadNotFound
	}

	ok, err := AuthorizeLeadAccess(ctx, uc.Members, session, lead)
	if err != nil {
		return NewDependencyError("store", err.Error())
	}
	if !ok {
		uc.log.Warn().Str("user_id", session.UserID).Str("lead_id", leadID).Msg("unauthorized dispatch attempt")
		return ErrForbidden
	}

	record := entity.NewOutreachRecord(lead, overrideMessage, time.Now().UTC())
	payload, _ := json.Marshal(record)

	status, body, sendErr := uc.Outreach.IngestRecord(ctx, record)

	// The attempt is logged no matter how the forward went, and a logging
	// failure must not mask the dispatch result.
	logEntry := &entity.DispatchLog{
		ID:             uuid.New().String(),
		UserID:         lead.UserID,
		LeadID:         lead.ID,
		RequestPayload: payload,
		ResponseBody:   body,
		Success:        sendErr == nil,
		CreatedAt:      time.Now().UTC(),
	}
	if status != 0 {
		logEntry.ResponseStatus = &status
	}
	if sendErr != nil {
		logEntry.ErrorMessage = sendErr.Error()
	}
	if logErr := uc.Logs.Insert(ctx, logEntry); logErr != nil {
		uc.log.Error().Err(logErr).Str("lead_id", lead.ID).Msg("failed to write dispatch log")
	}

	if sendErr != nil {
		uc.log.Error().Err(sendErr).Int("status", status).Str("lead_id", lead.ID).Msg("outreach API rejected record")
		return NewDependencyError("outreach", "failed to send message, please try again")
	}

	uc.log.Info().Str("lead_id", lead.ID).Int("status", status).Msg("lead dispatched to outreach API")
	return nil
}
