// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify hands new contact messages to a background worker. The
// web process enqueues a task; the worker loads the message and passes it
// to a Mailer.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"portfolio/internal/models"
)

// TypeContactNotify is the task type for a new contact message.
const TypeContactNotify = "contact:notify"

// ContactPayload is the task payload for TypeContactNotify.
type ContactPayload struct {
	MessageID string `json:"message_id"`
}

// NewContactTask builds the notification task for a message.
func NewContactTask(id uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactPayload{MessageID: id.String()})
	if err != nil {
		return nil, fmt.Errorf("encode contact payload: %w", err)
	}
	return asynq.NewTask(TypeContactNotify, payload,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue enqueues notification tasks.
type Queue struct {
	client Enqueuer
}

// NewQueue creates a Queue. A nil client disables notifications.
func NewQueue(client Enqueuer) *Queue {
	return &Queue{client: client}
}

// ContactReceived enqueues a notification for message id.
func (q *Queue) ContactReceived(ctx context.Context, id uuid.UUID) error {
	if q == nil || q.client == nil {
		slog.Warn("notification queue not configured, skipping", "message_id", id)
		return nil
	}
	task, err := NewContactTask(id)
	if err != nil {
		return err
	}
	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue contact notification: %w", err)
	}
	slog.Debug("contact notification enqueued", "message_id", id, "task_id", info.ID)
	return nil
}

// RedisOpt returns the asynq connection options for a Valkey address.
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}
}

// MessageFinder loads contact messages. *store.ContactStore implements it.
type MessageFinder interface {
	FindByID(id uuid.UUID) (*models.ContactMessage, error)
}

// Mailer delivers a notification about a contact message.
type Mailer interface {
	SendContactNotification(ctx context.Context, m *models.ContactMessage) error
}

// LogMailer writes notifications to the log instead of sending mail.
type LogMailer struct {
	To string
}

// SendContactNotification implements Mailer.
func (l LogMailer) SendContactNotification(_ context.Context, m *models.ContactMessage) error {
	slog.Info("new contact message",
		"to", l.To,
		"message_id", m.ID,
		"from", m.Name,
		"email", m.Email,
		"subject", m.Subject,
	)
	return nil
}

// Handler processes notification tasks in the worker.
type Handler struct {
	messages MessageFinder
	mailer   Mailer
}

// NewHandler creates a task handler.
func NewHandler(messages MessageFinder, mailer Mailer) *Handler {
	return &Handler{messages: messages, mailer: mailer}
}

// Register mounts the handler's task types on mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeContactNotify, h.HandleContactNotify)
}

// HandleContactNotify loads the message and passes it to the mailer.
// Malformed payloads are not retried; a deleted message is dropped.
func (h *Handler) HandleContactNotify(ctx context.Context, t *asynq.Task) error {
	var p ContactPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		slog.Error("invalid contact task payload", "error", err)
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	id, err := uuid.Parse(p.MessageID)
	if err != nil {
		slog.Error("invalid message id in task", "message_id", p.MessageID, "error", err)
		return fmt.Errorf("parse message id: %v: %w", err, asynq.SkipRetry)
	}

	m, err := h.messages.FindByID(id)
	if err != nil {
		return fmt.Errorf("load contact message: %w", err)
	}
	if m == nil {
		slog.Warn("contact message gone before notification", "message_id", id)
		return nil
	}

	if err := h.mailer.SendContactNotification(ctx, m); err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}
	return nil
}

// IsPermanent reports whether err will not succeed on retry.
func IsPermanent(err error) bool {
	return errors.Is(err, asynq.SkipRetry)
}
