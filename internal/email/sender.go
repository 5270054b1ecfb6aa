package email

import (
	"context"
	"errors"
)

// Notification es un aviso al equipo de SoftSell sobre un envio de formulario.
type Notification struct {
	Subject string
	Body    string
	ReplyTo string
}

// Notifier es el puerto de notificaciones que recibe el servicio de formularios.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

var ErrNotifierDisabled = errors.New("email notifier disabled")

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Notifier {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) Notify(_ context.Context, _ Notification) error {
	if s.reason == "" {
		return ErrNotifierDisabled
	}
	return errors.Join(ErrNotifierDisabled, errors.New(s.reason))
}
