package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/patients"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/schedule"
)

type queueClient interface {
	Send(ctx context.Context, body string) error
	Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queueMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

type queueMessage struct {
	ID            string
	Body          string
	ReceiptHandle string
}

type notificationKind string

const (
	kindBooking      notificationKind = "booking"
	kindCancellation notificationKind = "cancellation"
	kindReschedule   notificationKind = "reschedule"
)

type queuePayload struct {
	ID          string               `json:"id"`
	Kind        notificationKind     `json:"kind"`
	Patient     patients.Patient     `json:"patient"`
	Appointment schedule.Appointment `json:"appointment"`
}

func encodePayload(payload queuePayload) (queuePayload, string, error) {
	if payload.ID == "" {
		payload.ID = uuid.NewString()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return queuePayload{}, "", fmt.Errorf("notify: failed to encode payload: %w", err)
	}
	return payload, string(body), nil
}
