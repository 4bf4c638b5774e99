package push

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when the dispatcher could not be configured.
// Callers treat it like any other delivery failure: log and move on.
var ErrUnavailable = errors.New("push dispatcher unavailable")

const (
	// Secret-mount path checked first (how the hosting platform injects
	// the service account), then a local file next to the binary.
	secretMountPath = "/etc/secrets/firebase-admin.json"
	localCredFile   = "firebase-admin.json"

	sendTimeout = 5 * time.Second
)

// Service delivers best-effort FCM push notifications. The Firebase
// client is initialized once on first use; if no credential file is
// found the service degrades to a no-op and the process keeps running.
type Service struct {
	credFile string

	once   sync.Once
	client *messaging.Client
}

// NewService creates a dispatcher. credFile overrides the default
// credential search order when non-empty.
func NewService(credFile string) *Service {
	return &Service{credFile: credFile}
}

func (s *Service) init() {
	path := s.credFile
	if path == "" {
		path = localCredFile
		if _, err := os.Stat(secretMountPath); err == nil {
			path = secretMountPath
		}
	}

	if _, err := os.Stat(path); err != nil {
		log.Printf("push: no credential file at %s, notifications disabled", path)
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		log.Printf("push: firebase init failed, notifications disabled: %v", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("push: messaging client failed, notifications disabled: %v", err)
		return
	}

	s.client = client
	log.Printf("push: firebase messaging initialized (credentials: %s)", path)
}

// Send delivers one notification to a device token. At-most-once, no
// retries; a slow FCM call is cut off by the send timeout.
func (s *Service) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	s.once.Do(s.init)
	if s.client == nil {
		return ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := s.client.Send(ctx, &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	return err
}
