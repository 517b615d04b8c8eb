package cargo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/max-knopp/intellio/internal/entity"
)

func sampleRecord() entity.OutreachRecord {
	return entity.OutreachRecord{
		ID:           "lead-1",
		PersonID:     "p1",
		ContactName:  "Jane Doe",
		LinkedinURL:  "https://linkedin.com/in/janedoe",
		AIMessage:    "Hi Jane...",
		FinalMessage: "Hi Jane, final!",
		SentAt:       time.Now().UTC(),
	}
}

func TestIngestRecordSendsTokenAndPayload(t *testing.T) {
	var gotToken string
	var gotRecord entity.OutreachRecord

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		json.NewDecoder(r.Body).Decode(&gotRecord)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"accepted":true}`))
	}))
	defer srv.Close()

	client := NewClient("secret-token", srv.URL)
	status, body, err := client.IngestRecord(context.Background(), sampleRecord())

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"accepted":true}`, body)
	assert.Equal(t, "secret-token", gotToken)
	assert.Equal(t, "Hi Jane, final!", gotRecord.FinalMessage)
}

func TestIngestRecordNon2xxReturnsBodyAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"duplicate"}`))
	}))
	defer srv.Close()

	client := NewClient("secret-token", srv.URL)
	status, body, err := client.IngestRecord(context.Background(), sampleRecord())

	assert.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, `{"error":"duplicate"}`, body)
}

func TestIngestRecordRequiresToken(t *testing.T) {
	client := NewClient("", "http://localhost:1")
	status, _, err := client.IngestRecord(context.Background(), sampleRecord())

	assert.Error(t, err)
	assert.Zero(t, status)
}

func TestIngestRecordUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient("secret-token", srv.URL)
	status, _, err := client.IngestRecord(context.Background(), sampleRecord())

	assert.Error(t, err)
	assert.Zero(t, status)
}
