package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/max-knopp/intellio/internal/entity"
)

// LeadLifecycleUseCase applies the legal status transitions of a lead and
// the field writes each transition carries. Every transition persists to the
// store first; callers refetch afterwards and treat the store as the single
// source of truth.
type LeadLifecycleUseCase struct {
	Leads      LeadRepositoryInterface
	Members    MembershipInterface
	Dispatcher Dispatcher
	log        zerolog.Logger
}

func NewLeadLifecycleUseCase(
	leads LeadRepositoryInterface,
	members MembershipInterface,
	dispatcher Dispatcher,
	log zerolog.Logger,
) *LeadLifecycleUseCase {
	return &LeadLifecycleUseCase{
		Leads:      leads,
		Members:    members,
		Dispatcher: dispatcher,
		log:        log.With().Str("usecase", "lead_lifecycle").Logger(),
	}
}

// Send marks a pending lead as sent with the finalized message, then
// forwards it to the outreach API. The store write happens before the
// dispatch; a dispatch failure is surfaced but does not roll the status
// back.
func (uc *LeadLifecycleUseCase) Send(ctx context.Context, session Session, id, message string) error {
	lead, err := uc.authorize(ctx, session, id)
	if err != nil {
		return err
	}
	if !lead.Status.Actionable() {
		return NewStateError("send", lead.Status)
	}
	if message == "" {
		message = lead.OutreachMessage()
	}

	now := time.Now().UTC()
	status := entity.StatusSent
	if err := uc.Leads.Update(ctx, id, LeadUpdate{
		Status:       &status,
		FinalMessage: &message,
		SentAt:       &now,
	}); err != nil {
		return NewDependencyError("store", err.Error())
	}

	uc.log.Info().Str("lead_id", id).Msg("lead marked as sent")

	if uc.Dispatcher != nil {
		if err := uc.Dispatcher.Dispatch(ctx, session, id, message); err != nil {
			uc.log.Error().Err(err).Str("lead_id", id).Msg("outreach dispatch failed after send")
			return err
		}
	}
	return nil
}

// MarkCommented moves a pending lead to commented. No other fields change.
func (uc *LeadLifecycleUseCase) MarkCommented(ctx context.Context, session Session, id string) error {
	lead, err := uc.authorize(ctx, session, id)
	if err != nil {
		return err
	}
	if !lead.Status.Actionable() {
		return NewStateError("mark commented", lead.Status)
	}

	status := entity.StatusCommented
	if err := uc.Leads.Update(ctx, id, LeadUpdate{Status: &status}); err != nil {
		return NewDependencyError("store", err.Error())
	}
	return nil
}

// Reject moves a pending lead to rejected. At least one reason is required;
// the reasons are flattened into the stored feedback string here and
// nowhere earlier.
func (uc *LeadLifecycleUseCase) Reject(ctx context.Context, session Session, id string, reasons []entity.RejectionReason) error {
	if len(reasons) == 0 {
		return NewValidationError("at least one rejection reason is required")
	}

	lead, err := uc.authorize(ctx, session, id)
	if err != nil {
		return err
	}
	if !lead.Status.Actionable() {
		return NewStateError("reject", lead.Status)
	}

	status := entity.StatusRejected
	feedback := entity.JoinReasons(reasons)
	if err := uc.Leads.Update(ctx, id, LeadUpdate{
		Status:            &status,
		RejectionFeedback: &feedback,
	}); err != nil {
		return NewDependencyError("store", err.Error())
	}

	uc.log.Info().Str("lead_id", id).Str("feedback", feedback).Msg("lead rejected")
	return nil
}

// SetStatus is the administrative override used by the contacts view. It
// bypasses the action gating and may target any valid status.
func (uc *LeadLifecycleUseCase) SetStatus(ctx context.Context, session Session, id string, status entity.LeadStatus) error {
	if !status.Valid() {
		return NewValidationError("unknown status: " + string(status))
	}
	if _, err := uc.authorize(ctx, session, id); err != nil {
		return err
	}

	if err := uc.Leads.Update(ctx, id, LeadUpdate{Status: &status}); err != nil {
		return NewDependencyError("store", err.Error())
	}
	return nil
}

// UpdateNotes edits the free-text scratchpad. Notes stay editable in every
// status.
func (uc *LeadLifecycleUseCase) UpdateNotes(ctx context.Context, session Session, id, notes string) error {
	if _, err := uc.authorize(ctx, session, id); err != nil {
		return err
	}
	if err := uc.Leads.Update(ctx, id, LeadUpdate{Notes: &notes}); err != nil {
		return NewDependencyError("store", err.Error())
	}
	return nil
}

// UpdateMessage stores the user's edit of the outreach draft. Only offered
// while the lead is still pending; the AI draft itself is immutable.
func (uc *LeadLifecycleUseCase) UpdateMessage(ctx context.Context, session Session, id, message string) error {
	lead, err := uc.authorize(ctx, session, id)
	if err != nil {
		return err
	}
	if !lead.Status.Actionable() {
		return NewStateError("edit the message of", lead.Status)
	}
	if err := uc.Leads.Update(ctx, id, LeadUpdate{FinalMessage: &message}); err != nil {
		return NewDependencyError("store", err.Error())
	}
	return nil
}

// UpdateComment stores the user's edit of the suggested public comment.
func (uc *LeadLifecycleUseCase) UpdateComment(ctx context.Context, session Session, id, comment string) error {
	lead, err := uc.authorize(ctx, session, id)
	if err != nil {
		return err
	}
	if !lead.Status.Actionable() {
		return NewStateError("edit the comment of", lead.Status)
	}
	if err := uc.Leads.Update(ctx, id, LeadUpdate{FinalComment: &comment}); err != nil {
		return NewDependencyError("store", err.Error())
	}
	return nil
}

// authorize loads the lead and checks the caller owns it or belongs to its
// organization.
func (uc *LeadLifecycleUseCase) authorize(ctx context.Context, session Session, id string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, ErrLeadNotFound
	}
	ok, err := AuthorizeLeadAccess(ctx, uc.Members, session, lead)
	if err != nil {
		return nil, NewDependencyError("store", err.Error())
	}
	if !ok {
		return nil, ErrForbidden
	}
	return lead, nil
}

// AuthorizeLeadAccess implements the row-level rule: the owning user, or any
// member of the lead's organization.
func AuthorizeLeadAccess(ctx context.Context, members MembershipInterface, session Session, lead *entity.Lead) (bool, error) {
	if lead.UserID == session.UserID {
		return true, nil
	}
	if lead.OrgID == nil || members == nil {
		return false, nil
	}
	return members.IsMember(ctx, *lead.OrgID, session.UserID)
}
