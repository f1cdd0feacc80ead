package handler

import (
	"time"

	"github.com/dtroode/clinic-server/internal/model"
	"github.com/dtroode/clinic-server/internal/service"
)

const dateLayout = "2006-01-02"

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirm struct {
	Email       string `json:"email"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	UserID  int64  `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

type adminResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type doctorResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Gender    string    `json:"gender"`
	BirthDate string    `json:"birthDate"`
	Age       int       `json:"age"`
	Specialty string    `json:"specialty"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type historyResponse struct {
	DoctorID        int64     `json:"doctorId"`
	DoctorFirstName string    `json:"doctorFirstName,omitempty"`
	DoctorLastName  string    `json:"doctorLastName,omitempty"`
	Diagnosis       string    `json:"diagnosis"`
	Treatment       string    `json:"treatment"`
	TreatmentDate   time.Time `json:"treatmentDate"`
}

type patientResponse struct {
	ID                 int64             `json:"id"`
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	Gender             string            `json:"gender"`
	BirthDate          string            `json:"birthDate"`
	Age                int               `json:"age"`
	BloodType          string            `json:"bloodType"`
	Email              string            `json:"email"`
	ImageURL           string            `json:"imageUrl,omitempty"`
	XRayImageURL       string            `json:"xRayImageUrl,omitempty"`
	LabResultsImageURL string            `json:"labResultsImageUrl,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	TreatmentHistories []historyResponse `json:"treatmentHistories"`
}

type pageResponse[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

type adminEnvelope struct {
	Message string        `json:"message"`
	Admin   adminResponse `json:"admin"`
}

type doctorEnvelope struct {
	Message string         `json:"message"`
	Doctor  doctorResponse `json:"doctor"`
}

type patientEnvelope struct {
	Message string          `json:"message"`
	Patient patientResponse `json:"patient"`
}

type userDetails struct {
	Role    string           `json:"role"`
	Admin   *adminResponse   `json:"admin,omitempty"`
	Doctor  *doctorResponse  `json:"doctor,omitempty"`
	Patient *patientResponse `json:"patient,omitempty"`
}

type detailsEnvelope struct {
	Message string      `json:"message"`
	User    userDetails `json:"user"`
}

func toAdmin(a model.Admin) adminResponse {
	return adminResponse{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt}
}

func toDoctor(d model.Doctor) doctorResponse {
	return doctorResponse{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Gender:    d.Gender,
		BirthDate: formatDate(d.BirthDate),
		Age:       d.Age,
		Specialty: d.Specialty,
		Email:     d.Email,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
	}
}

func toPatient(p model.Patient) patientResponse {
	histories := make([]historyResponse, 0, len(p.Histories))
	for _, h := range p.Histories {
		histories = append(histories, historyResponse{
			DoctorID:        h.DoctorID,
			DoctorFirstName: h.DoctorFirstName,
			DoctorLastName:  h.DoctorLastName,
			Diagnosis:       h.Diagnosis,
			Treatment:       h.Treatment,
			TreatmentDate:   h.TreatmentDate,
		})
	}

	return patientResponse{
		ID:                 p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Gender:             p.Gender,
		BirthDate:          formatDate(p.BirthDate),
		Age:                p.Age,
		BloodType:          p.BloodType,
		Email:              p.Email,
		ImageURL:           p.ImageURL,
		XRayImageURL:       p.XRayImageURL,
		LabResultsImageURL: p.LabResultsImageURL,
		CreatedAt:          p.CreatedAt,
		TreatmentHistories: histories,
	}
}

func toPage[M, R any](page model.Page[M], convert func(M) R) pageResponse[R] {
	data := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, convert(item))
	}
	return pageResponse[R]{
		Data:       data,
		TotalCount: page.TotalCount,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

func toDetails(d service.Details) userDetails {
	out := userDetails{Role: d.Role.String()}
	switch {
	case d.Admin != nil:
		admin := toAdmin(*d.Admin)
		out.Admin = &admin
	case d.Doctor != nil:
		doctor := toDoctor(*d.Doctor)
		out.Doctor = &doctor
	case d.Patient != nil:
		patient := toPatient(*d.Patient)
		out.Patient = &patient
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
