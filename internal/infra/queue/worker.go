package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/max-knopp/intellio/internal/usecase"
)

// AlertMailer sends the new-lead notification email to a lead's owner.
type AlertMailer interface {
	SendNewLeadAlert(to, contactName, company, position string, score *int) error
}

// Worker consumes lead-ingested events and emails the owning user.
type Worker struct {
	Channel *amqp.Channel
	Mailer  AlertMailer
	log     zerolog.Logger
}

func NewWorker(ch *amqp.Channel, mailer AlertMailer, log zerolog.Logger) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
		log:     log.With().Str("component", "alert_worker").Logger(),
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		w.log.Fatal().Err(err).Msg("failed to register RabbitMQ consumer")
	}

	w.log.Info().Str("queue", queueName).Msg("alert worker waiting for messages")

	for d := range msgs {
		var event usecase.LeadIngestedEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			w.log.Error().Err(err).Msg("malformed lead-ingested event, dropping")
			// Malformed message: reject without requeue so it dead-letters.
			d.Nack(false, false)
			continue
		}

		if err := w.Mailer.SendNewLeadAlert(
			event.UserEmail, event.ContactName, event.Company, event.Position, event.Score,
		); err != nil {
			w.log.Error().Err(err).Str("lead_id", event.LeadID).Msg("failed to send new-lead alert")
			d.Nack(false, false)
			continue
		}

		w.log.Info().Str("lead_id", event.LeadID).Str("to", event.UserEmail).Msg("new-lead alert sent")
		d.Ack(false)
	}
}
