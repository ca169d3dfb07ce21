package service

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
	"github.com/tradevista/admin-console/pkg/config"
)

type fakeOfferAPI struct {
	createCalls int
	lastUpload  backend.OfferUpload
}

func (f *fakeOfferAPI) ListCourses(context.Context, string) ([]models.Course, error) {
	return []models.Course{{ID: "c1", Name: "Futures 101"}}, nil
}

func (f *fakeOfferAPI) CreateOffer(_ context.Context, _ string, upload backend.OfferUpload) error {
	f.createCalls++
	f.lastUpload = upload
	return nil
}

func testUploads() config.UploadConfig {
	return config.UploadConfig{MaxFileSizeBytes: 5 * 1024 * 1024}
}

func bannerHeader(size int64, contentType string) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: "banner.png",
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	header.Header.Set("Content-Type", contentType)
	return header
}

func validOfferForm() OfferForm {
	return OfferForm{
		CourseID:   "c1",
		OfferPrice: "25",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-30",
	}
}

func TestOfferCreateBlockedWithoutBanner(t *testing.T) {
	api := &fakeOfferAPI{}
	svc := NewOfferService(api, testUploads(), nil, nil, nil)

	err := svc.Create(context.Background(), "token", "sid", validOfferForm(), nil)
	require.Error(t, err)
	assert.Equal(t, "Please select an image for the offer banner", appErrors.FromError(err).Message)
	assert.Zero(t, api.createCalls, "no backend call may be issued for a blocked draft")
}

func TestOfferCreateBlockedWithMissingFields(t *testing.T) {
	api := &fakeOfferAPI{}
	svc := NewOfferService(api, testUploads(), nil, nil, nil)

	err := svc.Create(context.Background(), "token", "sid", OfferForm{CourseID: "c1"}, bannerHeader(1024, "image/png"))
	require.Error(t, err)
	assert.Equal(t, "Please fill in all required fields", appErrors.FromError(err).Message)
	assert.Zero(t, api.createCalls)
}

func TestOfferCreateRejectsNonImageBanner(t *testing.T) {
	api := &fakeOfferAPI{}
	svc := NewOfferService(api, testUploads(), nil, nil, nil)

	err := svc.Create(context.Background(), "token", "sid", validOfferForm(), bannerHeader(1024, "application/pdf"))
	require.Error(t, err)
	assert.Equal(t, "Please select a valid image file", appErrors.FromError(err).Message)
	assert.Zero(t, api.createCalls)
}

func TestOfferCreateRejectsOversizedBanner(t *testing.T) {
	api := &fakeOfferAPI{}
	svc := NewOfferService(api, testUploads(), nil, nil, nil)

	err := svc.Create(context.Background(), "token", "sid", validOfferForm(), bannerHeader(6*1024*1024, "image/png"))
	require.Error(t, err)
	assert.Equal(t, "Image size must be less than 5MB", appErrors.FromError(err).Message)
	assert.Zero(t, api.createCalls)
}

func TestOfferCreateRejectsBadPercentage(t *testing.T) {
	api := &fakeOfferAPI{}
	svc := NewOfferService(api, testUploads(), nil, nil, nil)

	form := validOfferForm()
	form.OfferPrice = "twenty"
	err := svc.Create(context.Background(), "token", "sid", form, bannerHeader(1024, "image/png"))
	require.Error(t, err)
	assert.Equal(t, "Offer percentage must be a number", appErrors.FromError(err).Message)
	assert.Zero(t, api.createCalls)
}
