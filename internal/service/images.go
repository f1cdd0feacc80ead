package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
)

// MaxImageSize caps a single uploaded image.
const MaxImageSize = 5 << 20

// Object name prefixes per image slot.
const (
	ImagePrefixDoctor  = "doctor"
	ImagePrefixPatient = "patient"
	ImagePrefixXRay    = "patient-xray"
	ImagePrefixLab     = "patient-lab"
)

var (
	// RegistrationImageExts are accepted when a principal registers.
	RegistrationImageExts = []string{".jpg", ".jpeg", ".png", ".gif"}
	// UpdateImageExts are accepted when a profile is updated.
	UpdateImageExts = []string{".jpg", ".jpeg", ".png"}
)

// Upload is an image received from a client.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

func (u *Upload) empty() bool {
	return u == nil || u.Size == 0
}

// PatientImages groups the optional uploads a patient record carries.
type PatientImages struct {
	Image           *Upload
	XRayImage       *Upload
	LabResultsImage *Upload
}

func (p PatientImages) uploads() []*Upload {
	return []*Upload{p.Image, p.XRayImage, p.LabResultsImage}
}

// Images stores profile and medical images and hands out their public URLs.
type Images struct {
	storage model.Storage
	baseURL string
	now     func() time.Time
	logger  *logger.Logger
}

// NewImages creates an Images service. Stored objects are addressed as
// publicURL + "/images/" + name.
func NewImages(storage model.Storage, publicURL string, logger *logger.Logger) *Images {
	return &Images{
		storage: storage,
		baseURL: strings.TrimRight(publicURL, "/") + "/images/",
		now:     time.Now,
		logger:  logger,
	}
}

// Validate checks size and extension of u. Empty uploads are accepted.
func (i *Images) Validate(u *Upload, allowed []string) error {
	if u.empty() {
		return nil
	}
	if u.Size > MaxImageSize {
		return apperr.Validation("File size exceeds the maximum limit of 5MB.")
	}
	ext := strings.ToLower(path.Ext(u.Filename))
	if !slices.Contains(allowed, ext) {
		return apperr.Validation("Invalid file type. Allowed extensions: %s.", strings.Join(allowed, ", "))
	}
	return nil
}

// Save stores u as {prefix}-{ownerID}-{unix}{ext} and returns its URL. The
// object behind previousURL is removed once the new one is stored. An empty
// upload leaves previousURL in place.
func (i *Images) Save(ctx context.Context, u *Upload, prefix string, ownerID int64, previousURL string, allowed []string) (string, error) {
	if u.empty() {
		return previousURL, nil
	}
	if err := i.Validate(u, allowed); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(u.Filename))
	name := fmt.Sprintf("%s-%d-%d%s", prefix, ownerID, i.now().Unix(), ext)

	contentType := u.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(ext)
	}

	if err := i.storage.Upload(ctx, name, u.Body, u.Size, contentType); err != nil {
		i.logger.Error("Images service: failed to store image",
			"name", name,
			"error", err.Error())
		return "", apperr.Dependency(err, "failed to store image")
	}

	if previous, ok := i.objectName(previousURL); ok && previous != name {
		i.Remove(ctx, previousURL)
	}

	i.logger.Info("Images service: image stored",
		"name", name,
		"size", u.Size)

	return i.baseURL + name, nil
}

// Remove deletes the object behind url. Failures are logged and URLs that
// do not point into the store are ignored.
func (i *Images) Remove(ctx context.Context, url string) {
	name, ok := i.objectName(url)
	if !ok {
		return
	}
	if err := i.storage.Delete(ctx, name); err != nil {
		i.logger.Warn("Images service: failed to delete image",
			"name", name,
			"error", err.Error())
	}
}

// Open streams the object called name.
func (i *Images) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	ext := strings.ToLower(path.Ext(name))
	if name == "" || strings.ContainsAny(name, `/\`) || !slices.Contains(RegistrationImageExts, ext) {
		return nil, "", apperr.NotFound("Image not found")
	}

	exists, err := i.storage.Exists(ctx, name)
	if err != nil {
		return nil, "", apperr.Dependency(err, "failed to stat image")
	}
	if !exists {
		return nil, "", apperr.NotFound("Image not found")
	}

	body, err := i.storage.Download(ctx, name)
	if err != nil {
		return nil, "", apperr.Dependency(err, "failed to read image")
	}

	return body, mime.TypeByExtension(ext), nil
}

// savePatientImages stores every non-empty upload in set onto p and
// reports whether any URL changed.
func (i *Images) savePatientImages(ctx context.Context, p *model.Patient, set PatientImages, allowed []string) (bool, error) {
	slots := []struct {
		upload *Upload
		prefix string
		url    *string
	}{
		{set.Image, ImagePrefixPatient, &p.ImageURL},
		{set.XRayImage, ImagePrefixXRay, &p.XRayImageURL},
		{set.LabResultsImage, ImagePrefixLab, &p.LabResultsImageURL},
	}

	changed := false
	for _, s := range slots {
		if s.upload.empty() {
			continue
		}
		url, err := i.Save(ctx, s.upload, s.prefix, p.ID, *s.url, allowed)
		if err != nil {
			return changed, err
		}
		*s.url = url
		changed = true
	}
	return changed, nil
}

func (i *Images) validateAll(uploads []*Upload, allowed []string) error {
	for _, u := range uploads {
		if err := i.Validate(u, allowed); err != nil {
			return err
		}
	}
	return nil
}

func (i *Images) objectName(url string) (string, bool) {
	name, ok := strings.CutPrefix(url, i.baseURL)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
