package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/max-knopp/intellio/internal/entity"
)

// ReceiveLeadInput is the ingress webhook payload produced by the scraping
// and enrichment pipeline.
type ReceiveLeadInput struct {
	UserEmail       string `json:"user_email" validate:"required,email"`
	PersonID        string `json:"person_id" validate:"required,person_id"`
	ContactName     string `json:"contact_name" validate:"required,max=200"`
	Position        string `json:"position" validate:"max=200"`
	Company         string `json:"company" validate:"max=200"`
	ProfilePhotoURL string `json:"profile_photo_url" validate:"omitempty,http_url_scheme"`
	LinkedinURL     string `json:"linkedin_url" validate:"required,linkedin_url"`
	PostURL         string `json:"post_url" validate:"omitempty,http_url_scheme"`
	PostContent     string `json:"post_content" validate:"max=10000"`
	PostDate        string `json:"post_date" validate:"omitempty"`
	AIMessage       string `json:"ai_message" validate:"required,max=5000"`
	AIComment       string `json:"ai_comment" validate:"max=5000"`
	RelevanceScore  *int   `json:"relevance_score" validate:"omitempty,min=0,max=100"`
}

type ReceiveLeadOutput struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id"`
	Message string `json:"message"`
}

type ReceiveLeadUseCase struct {
	Leads    LeadRepositoryInterface
	Users    UserDirectoryInterface
	Events   EventPublisherInterface
	validate *validator.Validate
	log      zerolog.Logger
}

func NewReceiveLeadUseCase(
	leads LeadRepositoryInterface,
	users UserDirectoryInterface,
	events EventPublisherInterface,
	log zerolog.Logger,
) *ReceiveLeadUseCase {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("person_id", func(fl validator.FieldLevel) bool {
		return IsValidPersonID(fl.Field().String())
	})
	v.RegisterValidation("linkedin_url", func(fl validator.FieldLevel) bool {
		return IsLinkedInURL(fl.Field().String())
	})
	v.RegisterValidation("http_url_scheme", func(fl validator.FieldLevel) bool {
		return IsValidHTTPURL(fl.Field().String())
	})

	return &ReceiveLeadUseCase{
		Leads:    leads,
		Users:    users,
		Events:   events,
		validate: v,
		log:      log.With().Str("usecase", "receive_lead").Logger(),
	}
}

// Execute validates and normalizes an inbound lead payload, resolves the
// target user by email and creates the lead in status pending.
func (uc *ReceiveLeadUseCase) Execute(ctx context.Context, input ReceiveLeadInput) (*ReceiveLeadOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return nil, NewValidationError(fmt.Sprintf("field %s failed %s validation", f.Field(), f.Tag()))
		}
		return nil, NewValidationError(err.Error())
	}

	var postDate *time.Time
	if input.PostDate != "" {
		parsed, err := parseTimestamp(input.PostDate)
		if err != nil {
			return nil, NewValidationError("post_date must be an ISO8601 timestamp")
		}
		postDate = &parsed
	}

	userID, err := uc.Users.FindIDByEmail(ctx, input.UserEmail)
	if err != nil {
		uc.log.Warn().Str("email", input.UserEmail).Msg("ingress for unknown user")
		return nil, ErrUserNotFound
	}

	lead := &entity.Lead{
		ID:              uuid.New().String(),
		UserID:          userID,
		PersonID:        input.PersonID,
		ContactName:     StripHTMLTags(input.ContactName),
		Position:        StripHTMLTags(input.Position),
		Company:         StripHTMLTags(input.Company),
		ProfilePhotoURL: input.ProfilePhotoURL,
		LinkedinURL:     input.LinkedinURL,
		PostURL:         input.PostURL,
		PostContent:     StripHTMLTags(input.PostContent),
		PostDate:        postDate,
		AIMessage:       StripHTMLTags(input.AIMessage),
		AIComment:       StripHTMLTags(input.AIComment),
		RelevanceScore:  input.RelevanceScore,
		Status:          entity.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, NewDependencyError("store", "failed to create lead: "+err.Error())
	}

	if uc.Events != nil {
		event := LeadIngestedEvent{
			LeadID:      lead.ID,
			UserID:      userID,
			UserEmail:   input.UserEmail,
			ContactName: lead.ContactName,
			Company:     lead.Company,
			Position:    lead.Position,
			Score:       lead.RelevanceScore,
		}
		if err := uc.Events.PublishLeadIngested(ctx, event); err != nil {
			// Best effort: the lead is already persisted, a dead broker must
			// not fail the webhook.
			uc.log.Error().Err(err).Str("lead_id", lead.ID).Msg("failed to publish lead-ingested event")
		}
	}

	uc.log.Info().Str("lead_id", lead.ID).Str("user_id", userID).Msg("lead received")

	return &ReceiveLeadOutput{
		Success: true,
		LeadID:  lead.ID,
		Message: "Lead received and queued for review",
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}
