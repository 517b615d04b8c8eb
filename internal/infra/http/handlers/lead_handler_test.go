package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/max-knopp/intellio/internal/entity"
	"github.com/max-knopp/intellio/internal/infra/auth"
	"github.com/max-knopp/intellio/internal/infra/http/middleware"
	"github.com/max-knopp/intellio/internal/usecase"
)

func newLeadRouter(leads *mockLeadRepository, dispatcher usecase.Dispatcher) (*chi.Mux, string) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _ := jwtManager.GenerateToken("user-1", "a@b.com")

	lifecycle := usecase.NewLeadLifecycleUseCase(leads, nil, dispatcher, zerolog.Nop())
	handler := NewLeadHandler(leads, lifecycle, zerolog.Nop())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtManager))
		r.Get("/leads", handler.HandleGetInbox)
		r.Post("/leads/{id}/send", handler.HandleSend)
		r.Post("/leads/{id}/reject", handler.HandleReject)
		r.Post("/leads/{id}/commented", handler.HandleMarkCommented)
		r.Patch("/leads/{id}/status", handler.HandleSetStatus)
		r.Patch("/leads/{id}/notes", handler.HandleUpdateNotes)
		r.Patch("/leads/{id}/message", handler.HandleUpdateMessage)
	})
	return r, token
}

func authedRequest(method, target, token, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func reviewLead(id string, status entity.LeadStatus) entity.Lead {
	return entity.Lead{
		ID:          id,
		UserID:      "user-1",
		PersonID:    "p1",
		ContactName: "Jane Doe",
		LinkedinURL: "https://linkedin.com/in/janedoe",
		AIMessage:   "Hi Jane...",
		Status:      status,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
}

func TestGetInboxRequiresToken(t *testing.T) {
	router, _ := newLeadRouter(new(mockLeadRepository), nil)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetInboxRejectsForgedToken(t *testing.T) {
	router, _ := newLeadRouter(new(mockLeadRepository), nil)

	other := auth.NewJWTManager("other-secret", time.Hour)
	forged, _ := other.GenerateToken("user-1", "a@b.com")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/leads", forged, ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetInboxPartitionsLeads(t *testing.T) {
	leads := new(mockLeadRepository)
	leads.On("FindAllForUser", mock.Anything, "user-1").Return([]entity.Lead{
		reviewLead("p1", entity.StatusPending),
		reviewLead("s1", entity.StatusSent),
		reviewLead("i1", entity.StatusInterested),
	}, nil)

	router, token := newLeadRouter(leads, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/leads", token, ""))

	assert.Equal(t, http.StatusOK, rec.Code)

	var snap usecase.InboxSnapshot
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Len(t, snap.Pending, 1)
	assert.Len(t, snap.Sent, 1)
	assert.Equal(t, 1, snap.InterestedCount)
}

func TestGetInboxRejectsUnknownSortMode(t *testing.T) {
	router, token := newLeadRouter(new(mockLeadRepository), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/leads?sort=alphabetical", token, ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendEndpoint(t *testing.T) {
	leads := new(mockLeadRepository)
	dispatcher := new(mockDispatcher)

	pending := reviewLead("lead-1", entity.StatusPending)
	leads.On("FindByID", mock.Anything, "lead-1").Return(&pending, nil)
	leads.On("Update", mock.Anything, "lead-1", mock.Anything).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything, "lead-1", "edited message").Return(nil)

	router, token := newLeadRouter(leads, dispatcher)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/leads/lead-1/send", token, `{"message":"edited message"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	dispatcher.AssertExpectations(t)
}

func TestSendOnSentLeadIsConflict(t *testing.T) {
	leads := new(mockLeadRepository)
	sent := reviewLead("lead-1", entity.StatusSent)
	leads.On("FindByID", mock.Anything, "lead-1").Return(&sent, nil)

	router, token := newLeadRouter(leads, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/leads/lead-1/send", token, `{"message":"again"}`))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_STATE", body["error"])
}

func TestRejectEndpointMixedReasons(t *testing.T) {
	leads := new(mockLeadRepository)
	pending := reviewLead("lead-1", entity.StatusPending)
	leads.On("FindByID", mock.Anything, "lead-1").Return(&pending, nil)
	leads.On("Update", mock.Anything, "lead-1", mock.MatchedBy(func(u usecase.LeadUpdate) bool {
		return u.RejectionFeedback != nil &&
			*u.RejectionFeedback == "Profile not ICP, competitor employee"
	})).Return(nil)

	router, token := newLeadRouter(leads, nil)
	body := `{"reasons":[{"id":"not_icp"},{"text":"competitor employee"}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/leads/lead-1/reject", token, body))

	assert.Equal(t, http.StatusOK, rec.Code)
	leads.AssertExpectations(t)
}

func TestRejectEndpointEmptyReasons(t *testing.T) {
	router, token := newLeadRouter(new(mockLeadRepository), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/leads/lead-1/reject", token, `{"reasons":[]}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectEndpointUnknownReasonID(t *testing.T) {
	router, token := newLeadRouter(new(mockLeadRepository), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/leads/lead-1/reject", token, `{"reasons":[{"id":"too_tall"}]}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetStatusEndpoint(t *testing.T) {
	leads := new(mockLeadRepository)
	rejected := reviewLead("lead-1", entity.StatusRejected)
	leads.On("FindByID", mock.Anything, "lead-1").Return(&rejected, nil)
	leads.On("Update", mock.Anything, "lead-1", mock.MatchedBy(func(u usecase.LeadUpdate) bool {
		return u.Status != nil && *u.Status == entity.StatusConverted
	})).Return(nil)

	router, token := newLeadRouter(leads, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/leads/lead-1/status", token, `{"status":"converted"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	leads.AssertExpectations(t)
}

func TestUpdateNotesEndpoint(t *testing.T) {
	leads := new(mockLeadRepository)
	sent := reviewLead("lead-1", entity.StatusSent)
	leads.On("FindByID", mock.Anything, "lead-1").Return(&sent, nil)
	leads.On("Update", mock.Anything, "lead-1", mock.MatchedBy(func(u usecase.LeadUpdate) bool {
		return u.Notes != nil && *u.Notes == "call booked"
	})).Return(nil)

	router, token := newLeadRouter(leads, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/leads/lead-1/notes", token, `{"notes":"call booked"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateMessageOnSentLeadIsConflict(t *testing.T) {
	leads := new(mockLeadRepository)
	sent := reviewLead("lead-1", entity.StatusSent)
	leads.On("FindByID", mock.Anything, "lead-1").Return(&sent, nil)

	router, token := newLeadRouter(leads, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/leads/lead-1/message", token, `{"message":"rewrite"}`))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
