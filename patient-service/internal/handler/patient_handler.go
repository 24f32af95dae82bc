package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/middleware"
	"github.com/ify-osakwe/hygea/shared/models"
)

// PatientCommander defines the write-side operations used by PatientHandler.
type PatientCommander interface {
	CreatePatient(cqrs.CreatePatientCommand) (*models.Patient, error)
	UpdatePatient(cqrs.UpdatePatientCommand) (*models.PatientView, error)
	DeletePatient(cqrs.DeletePatientCommand) error
}

// PatientQuerier defines the read-side operations used by PatientHandler.
type PatientQuerier interface {
	GetPatients(cqrs.ListPatientsQuery) ([]*models.PatientView, error)
	GetPatient(cqrs.GetPatientQuery) (*models.PatientView, error)
}

// PatientHandler routes requests to the command or query service as appropriate.
type PatientHandler struct {
	commands PatientCommander
	queries  PatientQuerier
}

type CreatePatientRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Address     string `json:"address" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}

type UpdatePatientRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Address     string `json:"address" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}

func NewPatientHandler(commands PatientCommander, queries PatientQuerier) *PatientHandler {
	return &PatientHandler{commands: commands, queries: queries}
}

func (h *PatientHandler) ListPatients(c *gin.Context) {
	views, err := h.queries.GetPatients(cqrs.ListPatientsQuery{})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list patients")
		return
	}
	if views == nil {
		views = []*models.PatientView{}
	}
	c.JSON(http.StatusOK, views)
}

func (h *PatientHandler) GetPatient(c *gin.Context) {
	view, err := h.queries.GetPatient(cqrs.GetPatientQuery{PatientID: c.Param("patientId")})
	if err != nil {
		if errors.Is(err, errs.ErrPatientNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Patient not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get patient")
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreatePatient maps the orchestration outcome onto status codes. A lost
// patient.created event still answers 201: the patient is durably stored and
// billed, only downstream consumers missed the announcement.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}
	dob, err := time.Parse(models.DateLayout, req.DateOfBirth)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid date of birth")
		return
	}

	patient, err := h.commands.CreatePatient(cqrs.CreatePatientCommand{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		DateOfBirth: dob,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, patient)
	case errors.Is(err, errs.ErrEventPublish):
		log.Printf("Patient %s created but event lost: %v", patient.ID, err)
		c.JSON(http.StatusCreated, patient)
	case errors.Is(err, errs.ErrEmailExists):
		middleware.RespondWithError(c, http.StatusConflict, "A patient with this email already exists")
	case errors.Is(err, errs.ErrBillingUnavailable), errors.Is(err, errs.ErrBillingRejected):
		middleware.RespondWithError(c, http.StatusBadGateway, "Billing account could not be provisioned")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create patient")
	}
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}
	dob, err := time.Parse(models.DateLayout, req.DateOfBirth)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid date of birth")
		return
	}

	view, err := h.commands.UpdatePatient(cqrs.UpdatePatientCommand{
		PatientID:   c.Param("patientId"),
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		DateOfBirth: dob,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, view)
	case errors.Is(err, errs.ErrPatientNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Patient not found")
	case errors.Is(err, errs.ErrEmailExists):
		middleware.RespondWithError(c, http.StatusConflict, "A patient with this email already exists")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient")
	}
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	err := h.commands.DeletePatient(cqrs.DeletePatientCommand{PatientID: c.Param("patientId")})
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, errs.ErrPatientNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Patient not found")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete patient")
	}
}
