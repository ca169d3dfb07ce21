package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

// CreateSignalChat creates (or returns) the broadcast signal channel.
func (c *Client) CreateSignalChat(ctx context.Context, token string) (*models.Chat, error) {
	payload := map[string]bool{"signal": true}
	var chat models.Chat
	if err := c.doJSON(ctx, http.MethodPost, "/chat/create", token, payload, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListMessages fetches the message history of a chat.
func (c *Client) ListMessages(ctx context.Context, token, chatID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := c.getJSON(ctx, "/chat/messages/"+chatID, token, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MessageUpload is the multipart payload for sending a signal message.
// Content and attachment are each optional, but not both.
type MessageUpload struct {
	ChatID       string
	Content      string
	FileName     string
	FileMIMEType string
	File         io.Reader
}

// SendMessage posts a message (and optional attachment) to the signal channel.
func (c *Client) SendMessage(ctx context.Context, token string, upload MessageUpload) (*models.ChatMessage, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := writer.WriteField("chatId", upload.ChatID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode chat id")
	}
	if upload.Content != "" {
		if err := writer.WriteField("content", upload.Content); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode message content")
		}
	}
	if upload.File != nil {
		part, err := writer.CreateFormFile("file", upload.FileName)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode message attachment")
		}
		if _, err := io.Copy(part, upload.File); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "copy message attachment")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "finalise message form")
	}

	var sent models.ChatMessage
	if err := c.do(ctx, http.MethodPost, "/chat/send-message", token, buf, writer.FormDataContentType(), &sent); err != nil {
		return nil, err
	}
	return &sent, nil
}
