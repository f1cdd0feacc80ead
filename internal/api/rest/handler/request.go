package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/model"
	"github.com/dtroode/clinic-server/internal/service"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	// multipartMemory is kept in memory per request, the rest spills to temp files.
	multipartMemory = 8 << 20
)

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("Request body too large")
		}
		return apperr.Validation("Invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid %s", name)
	}
	return id, nil
}

func listParams(r *http.Request) (model.ListParams, error) {
	q := r.URL.Query()
	params := model.ListParams{
		PageNumber: defaultPageNumber,
		PageSize:   defaultPageSize,
		Search:     strings.TrimSpace(q.Get("searchTerm")),
	}

	for name, dst := range map[string]*int{"pageNumber": &params.PageNumber, "pageSize": &params.PageSize} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.ListParams{}, apperr.Validation("Page number and page size must be greater than 0")
		}
		*dst = n
	}
	return params, nil
}

// form reads multipart or urlencoded fields. Field names match either
// camelCase or PascalCase.
type form struct {
	r     *http.Request
	files []multipart.File
}

func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return &form{r: r}, nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, apperr.Validation("Request body too large")
	}
	return nil, apperr.Validation("Invalid form data")
}

// value returns the trimmed field.
func (f *form) value(name string) string {
	return strings.TrimSpace(f.raw(name))
}

// raw returns the field as sent. Passwords are read this way so they hash
// the same bytes a later JSON login sends.
func (f *form) raw(name string) string {
	for _, key := range []string{name, pascal(name)} {
		if values, ok := f.r.Form[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (f *form) date(name string) (time.Time, error) {
	raw := f.value(name)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("Invalid %s", pascal(name))
}

func (f *form) int64(name string) (int64, error) {
	raw := f.value(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid %s", pascal(name))
	}
	return n, nil
}

// upload returns the file sent as name, or nil when none was sent.
func (f *form) upload(name string) (*service.Upload, error) {
	if f.r.MultipartForm == nil {
		return nil, nil
	}
	for _, key := range []string{name, pascal(name)} {
		headers := f.r.MultipartForm.File[key]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, apperr.Validation("Invalid %s upload", name)
		}
		f.files = append(f.files, file)
		return &service.Upload{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}, nil
	}
	return nil, nil
}

func (f *form) patientImages() (service.PatientImages, error) {
	var (
		images service.PatientImages
		err    error
	)
	if images.Image, err = f.upload("image"); err != nil {
		return images, err
	}
	if images.XRayImage, err = f.upload("xRayImage"); err != nil {
		return images, err
	}
	if images.LabResultsImage, err = f.upload("labResultsImage"); err != nil {
		return images, err
	}
	return images, nil
}

// close releases opened uploads and temporary files.
func (f *form) close() {
	for _, file := range f.files {
		_ = file.Close()
	}
	if f.r.MultipartForm != nil {
		_ = f.r.MultipartForm.RemoveAll()
	}
}

func pascal(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
