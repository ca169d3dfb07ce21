package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

// OfferUpload carries the multipart fields of the create-offer form. Dates are
// ISO strings; the banner is streamed as-is.
type OfferUpload struct {
	CourseID       string
	OfferPrice     string
	StartDate      string
	EndDate        string
	BannerName     string
	BannerMIMEType string
	Banner         io.Reader
}

// CreateOffer posts a promotional offer with its banner image.
func (c *Client) CreateOffer(ctx context.Context, token string, upload OfferUpload) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fields := map[string]string{
		"course":     upload.CourseID,
		"offerPrice": upload.OfferPrice,
		"startDate":  upload.StartDate,
		"endDate":    upload.EndDate,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode offer field")
		}
	}

	part, err := writer.CreateFormFile("banner", upload.BannerName)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode offer banner")
	}
	if _, err := io.Copy(part, upload.Banner); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "copy offer banner")
	}
	if err := writer.Close(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "finalise offer form")
	}

	return c.do(ctx, http.MethodPost, "/offer/create", token, buf, writer.FormDataContentType(), nil)
}
