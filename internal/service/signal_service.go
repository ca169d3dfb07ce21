package service

import (
	"context"
	"mime/multipart"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/pkg/config"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

type signalAPI interface {
	CreateSignalChat(ctx context.Context, token string) (*models.Chat, error)
	ListMessages(ctx context.Context, token, chatID string) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, token string, upload backend.MessageUpload) (*models.ChatMessage, error)
}

// SignalForm is the send box on the signal screen.
type SignalForm struct {
	Content string `form:"content"`
}

// SignalService drives the broadcast signal channel. The channel id is
// resolved once per process; the backend returns the existing channel when
// asked to create it again.
type SignalService struct {
	api     signalAPI
	uploads config.UploadConfig
	logger  *zap.Logger
	guard   *Guard

	mu     sync.Mutex
	chatID string
}

// NewSignalService constructs a SignalService.
func NewSignalService(api signalAPI, uploads config.UploadConfig, logger *zap.Logger, guard *Guard) *SignalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = NewGuard()
	}
	return &SignalService{api: api, uploads: uploads, logger: logger, guard: guard}
}

// Messages returns the signal channel id and its history.
func (s *SignalService) Messages(ctx context.Context, token string) (string, []models.ChatMessage, error) {
	chatID, err := s.ensureChat(ctx, token)
	if err != nil {
		return "", nil, err
	}
	messages, err := s.api.ListMessages(ctx, token, chatID)
	if err != nil {
		return chatID, nil, err
	}
	return chatID, messages, nil
}

// Send posts a message with an optional attachment to the signal channel.
func (s *SignalService) Send(ctx context.Context, token, sid string, form SignalForm, attachment *multipart.FileHeader) error {
	content := strings.TrimSpace(form.Content)
	if content == "" && attachment == nil {
		return appErrors.Clone(appErrors.ErrValidation, "Type a message or attach a file before sending")
	}
	if attachment != nil && attachment.Size > s.uploads.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrValidation, "Attachment is too large")
	}

	chatID, err := s.ensureChat(ctx, token)
	if err != nil {
		return err
	}

	key := sid + ":signal:send"
	if !s.guard.Begin(key) {
		return ErrMutationInFlight
	}
	defer s.guard.End(key)

	upload := backend.MessageUpload{ChatID: chatID, Content: content}
	if attachment != nil {
		file, err := attachment.Open()
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open attachment")
		}
		defer file.Close() //nolint:errcheck
		upload.File = file
		upload.FileName = attachment.Filename
		upload.FileMIMEType = attachment.Header.Get("Content-Type")
	}

	_, err = s.api.SendMessage(ctx, token, upload)
	return err
}

func (s *SignalService) ensureChat(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chatID != "" {
		return s.chatID, nil
	}
	chat, err := s.api.CreateSignalChat(ctx, token)
	if err != nil {
		return "", err
	}
	s.chatID = chat.ID
	return s.chatID, nil
}
