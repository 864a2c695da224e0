// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact validates and records submissions of the public contact
// form, then hands them to the notification queue.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"portfolio/internal/i18n"
	"portfolio/internal/models"
)

// HoneypotField is the hidden form field that humans leave empty.
const HoneypotField = "website"

// Form is a contact submission as posted.
type Form struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,max=254,email"`
	Phone   string `validate:"max=20"`
	Subject string `validate:"required,max=300"`
	Message string `validate:"required,min=20,max=5000"`
	Website string // honeypot
}

// FormFromValues reads a Form from posted values, trimming whitespace.
func FormFromValues(v url.Values) Form {
	get := func(k string) string { return strings.TrimSpace(v.Get(k)) }
	return Form{
		Name:    get("name"),
		Email:   get("email"),
		Phone:   get("phone"),
		Subject: get("subject"),
		Message: get("message"),
		Website: get(HoneypotField),
	}
}

// ValidationError carries localized errors keyed by form field name.
// General holds an error that belongs to no single field.
type ValidationError struct {
	Fields  map[string]string
	General string
}

func (e *ValidationError) Error() string {
	if e.General != "" {
		return "contact form: " + e.General
	}
	return fmt.Sprintf("contact form: %d invalid field(s)", len(e.Fields))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the form and returns a *ValidationError, or nil. A
// filled honeypot rejects the form without reporting field errors.
func (f Form) Validate(ctx context.Context) error {
	if f.Website != "" {
		return &ValidationError{General: i18n.Ctx(ctx, i18n.MsgFormError)}
	}

	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate contact form: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if _, seen := out.Fields[name]; seen {
			continue
		}
		out.Fields[name] = fieldMessage(ctx, fe)
	}
	return out
}

func fieldMessage(ctx context.Context, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return i18n.Ctx(ctx, i18n.MsgRequired)
	case "email":
		return i18n.Ctx(ctx, i18n.MsgEmail)
	case "max":
		return i18n.Ctx(ctx, i18n.MsgTooLong, paramInt(fe.Param()))
	case "min":
		return i18n.Ctx(ctx, i18n.MsgTooShort, paramInt(fe.Param()))
	default:
		return i18n.Ctx(ctx, i18n.MsgInvalid)
	}
}

func paramInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Repository stores messages. *store.ContactStore implements it.
type Repository interface {
	Create(m *models.ContactMessage) (*models.ContactMessage, error)
}

// Notifier is told about each stored message. *notify.Queue implements it.
type Notifier interface {
	ContactReceived(ctx context.Context, id uuid.UUID) error
}

// Intake validates, stores and announces contact messages.
type Intake struct {
	repo     Repository
	notifier Notifier
}

// NewIntake creates an Intake. notifier may be nil.
func NewIntake(repo Repository, notifier Notifier) *Intake {
	return &Intake{repo: repo, notifier: notifier}
}

// Submit validates f and stores it with the submitter's address. Invalid
// input yields a *ValidationError and nothing is stored. A failed
// notification is logged and does not fail the submission.
func (in *Intake) Submit(ctx context.Context, f Form, ip string) (*models.ContactMessage, error) {
	if err := f.Validate(ctx); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && verr.General != "" {
			slog.Info("contact honeypot triggered", "ip", ip)
		}
		return nil, err
	}

	m := &models.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Subject: f.Subject,
		Message: f.Message,
	}
	if ip != "" {
		m.IPAddress = &ip
	}

	saved, err := in.repo.Create(m)
	if err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}
	slog.Info("contact message received", "id", saved.ID, "ip", ip)

	if in.notifier != nil {
		if err := in.notifier.ContactReceived(ctx, saved.ID); err != nil {
			slog.Warn("contact notification failed", "id", saved.ID, "error", err)
		}
	}
	return saved, nil
}
