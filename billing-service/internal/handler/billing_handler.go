package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/middleware"
	"github.com/ify-osakwe/hygea/shared/models"
)

// BillingProvisioner defines the operations used by BillingHandler.
type BillingProvisioner interface {
	CreateAccount(cqrs.CreateBillingAccountCommand) (*models.BillingAccount, bool, error)
	GetAccount(cqrs.GetBillingAccountQuery) (*models.BillingAccount, error)
}

type BillingHandler struct {
	service BillingProvisioner
}

type CreateAccountRequest struct {
	PatientID string `json:"patientId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func NewBillingHandler(service BillingProvisioner) *BillingHandler {
	return &BillingHandler{service: service}
}

// CreateAccount answers 201 for a new account and 200 when the patient was
// already provisioned, so callers can retry safely.
func (h *BillingHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, created, err := h.service.CreateAccount(cqrs.CreateBillingAccountCommand{
		PatientID: req.PatientID,
		Name:      req.Name,
		Email:     req.Email,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create billing account")
		return
	}

	if created {
		c.JSON(http.StatusCreated, account)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *BillingHandler) GetAccount(c *gin.Context) {
	account, err := h.service.GetAccount(cqrs.GetBillingAccountQuery{
		PatientID: c.Param("patientId"),
	})
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Billing account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get billing account")
		return
	}
	c.JSON(http.StatusOK, account)
}
