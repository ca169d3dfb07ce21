package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
	"github.com/tradevista/admin-console/pkg/config"
)

type fakeSignalAPI struct {
	createCalls int
	sendCalls   int
	messages    []models.ChatMessage
}

func (f *fakeSignalAPI) CreateSignalChat(context.Context, string) (*models.Chat, error) {
	f.createCalls++
	return &models.Chat{ID: "chat-1", Signal: true}, nil
}

func (f *fakeSignalAPI) ListMessages(_ context.Context, _ string, chatID string) ([]models.ChatMessage, error) {
	return f.messages, nil
}

func (f *fakeSignalAPI) SendMessage(_ context.Context, _ string, upload backend.MessageUpload) (*models.ChatMessage, error) {
	f.sendCalls++
	sent := models.ChatMessage{ID: "m-new", ChatID: upload.ChatID, Content: upload.Content}
	f.messages = append(f.messages, sent)
	return &sent, nil
}

func TestSignalChannelResolvedOnce(t *testing.T) {
	api := &fakeSignalAPI{}
	svc := NewSignalService(api, config.UploadConfig{MaxFileSizeBytes: 1024}, nil, nil)

	chatID, _, err := svc.Messages(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", chatID)

	_, _, err = svc.Messages(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 1, api.createCalls, "channel id is cached after the first resolve")
}

func TestSendRequiresContentOrAttachment(t *testing.T) {
	api := &fakeSignalAPI{}
	svc := NewSignalService(api, config.UploadConfig{MaxFileSizeBytes: 1024}, nil, nil)

	err := svc.Send(context.Background(), "token", "sid", SignalForm{Content: "   "}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, api.sendCalls)
}

func TestSendAppearsInHistory(t *testing.T) {
	api := &fakeSignalAPI{}
	svc := NewSignalService(api, config.UploadConfig{MaxFileSizeBytes: 1024}, nil, nil)

	require.NoError(t, svc.Send(context.Background(), "token", "sid", SignalForm{Content: "BTC long entry 64k"}, nil))

	_, messages, err := svc.Messages(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "BTC long entry 64k", messages[0].Content)
	assert.Equal(t, "chat-1", messages[0].ChatID)
}
