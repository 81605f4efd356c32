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

// RecordsHandler exposes health-check submissions and prediction history.
type RecordsHandler struct {
	health *service.HealthService
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(healthService *service.HealthService) *RecordsHandler {
	return &RecordsHandler{health: healthService}
}

// SubmitHealthCheck POST /api/predict/health-check.
func (h *RecordsHandler) SubmitHealthCheck(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.HealthCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.health.SubmitHealthCheck(c.UserContext(), principal.User.ID, service.HealthCheckInput{
		TotalCholesterol:  req.TotalCholesterol,
		HDLCholesterol:    req.HDLCholesterol,
		LDLCholesterol:    req.LDLCholesterol,
		BloodPressure:     req.BloodPressure,
		Weight:            req.Weight,
		Height:            req.Height,
		DiabetesStatus:    req.DiabetesStatus,
		InjuryDescription: req.InjuryDescription,
		Notes:             req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": healthRecordResponse(record)})
}

// ListHealthChecks GET /api/predict/health-check.
func (h *RecordsHandler) ListHealthChecks(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	records, err := h.health.ListHealthChecks(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.HealthRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, healthRecordResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SubmitPrediction POST /api/predict/:disease.
func (h *RecordsHandler) SubmitPrediction(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	prediction, err := h.health.RecordPrediction(c.UserContext(), principal.User.ID, c.Params("disease"), req.Symptoms, req.Result)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"prediction": dto.PredictionResponse{
			ID:        prediction.ID,
			Disease:   prediction.Disease,
			Symptoms:  prediction.Symptoms,
			Result:    prediction.Result,
			CreatedAt: prediction.CreatedAt,
		},
	})
}

// History GET /api/history.
func (h *RecordsHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	predictions, err := h.health.ListPredictions(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, dto.PredictionResponse{
			ID:        p.ID,
			Disease:   p.Disease,
			Symptoms:  p.Symptoms,
			Result:    p.Result,
			CreatedAt: p.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"history": items})
}

func healthRecordResponse(record *domain.HealthRecord) dto.HealthRecordResponse {
	return dto.HealthRecordResponse{
		ID:                record.ID,
		TotalCholesterol:  record.TotalCholesterol,
		HDLCholesterol:    record.HDLCholesterol,
		LDLCholesterol:    record.LDLCholesterol,
		BloodPressure:     record.BloodPressure,
		Weight:            record.Weight,
		Height:            record.Height,
		DiabetesStatus:    record.DiabetesStatus,
		InjuryDescription: record.InjuryDescription,
		Notes:             record.Notes,
		SubmittedAt:       record.SubmittedAt,
	}
}
