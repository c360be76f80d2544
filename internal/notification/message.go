package notification

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Routing keys for queued notifications.
const (
	KeyEmail     = "notification.email"
	BindingEmail = "notification.#"
)

type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type Message struct {
	To          string       `json:"to"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("notification: empty recipient")
	}
	if m.Subject == "" {
		return fmt.Errorf("notification: empty subject")
	}
	return nil
}

// Sender delivers a message or hands it to whatever delivers it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// FileAttachment reads a rendered document from disk.
func FileAttachment(path, contentType string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("read attachment %s: %w", path, err)
	}
	return Attachment{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
