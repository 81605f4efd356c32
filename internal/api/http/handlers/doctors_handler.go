package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthsync-service/internal/api/dto"
	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/service"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// DoctorsHandler exposes doctor listing and consultation endpoints.
type DoctorsHandler struct {
	doctors *service.DoctorService
}

// NewDoctorsHandler constructs handler.
func NewDoctorsHandler(doctorService *service.DoctorService) *DoctorsHandler {
	return &DoctorsHandler{doctors: doctorService}
}

// ListDoctors GET /api/doctors.
func (h *DoctorsHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.doctors.ListDoctors(c.UserContext(), c.Query("specialty"))
	if err != nil {
		return err
	}
	items := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		items = append(items, doctorResponse(&doctors[i]))
	}
	return c.JSON(fiber.Map{"doctors": items})
}

// GetDoctor GET /api/doctors/:id.
func (h *DoctorsHandler) GetDoctor(c *fiber.Ctx) error {
	doctor, err := h.doctors.GetDoctor(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"doctor": doctorResponse(doctor)})
}

// StartConsultation POST /api/doctors/:id/consultations.
func (h *DoctorsHandler) StartConsultation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	consultation, err := h.doctors.StartConsultation(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"consultation": consultationSummary(consultation)})
}

// ListConsultations GET /api/consultations.
func (h *DoctorsHandler) ListConsultations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	consultations, err := h.doctors.ListConsultations(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ConsultationSummary, 0, len(consultations))
	for i := range consultations {
		items = append(items, consultationSummary(&consultations[i]))
	}
	return c.JSON(fiber.Map{"consultations": items})
}

// GetConsultation GET /api/consultations/:id.
func (h *DoctorsHandler) GetConsultation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	consultation, messages, err := h.doctors.GetConsultation(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}

	detail := dto.ConsultationDetailResponse{
		ID:        consultation.ID,
		DoctorID:  consultation.DoctorID,
		CreatedAt: consultation.CreatedAt,
		Messages:  make([]dto.ConsultationMessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		detail.Messages = append(detail.Messages, dto.ConsultationMessageResponse{
			ID:        message.ID,
			Sender:    message.Sender,
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"consultation": detail})
}

// EndConsultation DELETE /api/consultations/:id.
func (h *DoctorsHandler) EndConsultation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.doctors.EndConsultation(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "consultation ended"})
}

// SendConsultationMessage POST /api/consultations/:id/messages.
func (h *DoctorsHandler) SendConsultationMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SendConsultationMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.doctors.AddConsultationMessage(c.UserContext(), principal.User.ID, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": dto.ConsultationMessageResponse{
			ID:        message.ID,
			Sender:    message.Sender,
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
		},
	})
}

func doctorResponse(doctor *domain.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Specialty:       doctor.Specialty,
		Rating:          doctor.Rating,
		ExperienceYears: doctor.ExperienceYears,
		Availability:    doctor.Availability,
		ConsultationFee: doctor.ConsultationFee,
		AvatarURL:       doctor.AvatarURL,
	}
}

func consultationSummary(consultation *domain.Consultation) dto.ConsultationSummary {
	return dto.ConsultationSummary{
		ID:        consultation.ID,
		DoctorID:  consultation.DoctorID,
		CreatedAt: consultation.CreatedAt,
		UpdatedAt: consultation.UpdatedAt,
	}
}
