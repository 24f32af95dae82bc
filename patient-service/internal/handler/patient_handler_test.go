package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/models"
)

// ---- mock implementations ----

type mockPatientCommander struct {
	createFn func(cqrs.CreatePatientCommand) (*models.Patient, error)
	updateFn func(cqrs.UpdatePatientCommand) (*models.PatientView, error)
	deleteFn func(cqrs.DeletePatientCommand) error
}

func (m *mockPatientCommander) CreatePatient(cmd cqrs.CreatePatientCommand) (*models.Patient, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockPatientCommander) UpdatePatient(cmd cqrs.UpdatePatientCommand) (*models.PatientView, error) {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockPatientCommander) DeletePatient(cmd cqrs.DeletePatientCommand) error {
	if m.deleteFn != nil {
		return m.deleteFn(cmd)
	}
	return fmt.Errorf("not configured")
}

type mockPatientQuerier struct {
	listFn func(cqrs.ListPatientsQuery) ([]*models.PatientView, error)
	getFn  func(cqrs.GetPatientQuery) (*models.PatientView, error)
}

func (m *mockPatientQuerier) GetPatients(q cqrs.ListPatientsQuery) ([]*models.PatientView, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockPatientQuerier) GetPatient(q cqrs.GetPatientQuery) (*models.PatientView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newPatientTestRouter(cmds PatientCommander, qrys PatientQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPatientHandler(cmds, qrys)
	v1 := r.Group("/v1/patients")
	v1.GET("", h.ListPatients)
	v1.POST("", h.CreatePatient)
	v1.GET("/:patientId", h.GetPatient)
	v1.PUT("/:patientId", h.UpdatePatient)
	v1.DELETE("/:patientId", h.DeletePatient)
	return r
}

func patientDoRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var pTestPatient = &models.Patient{
	ID: "0b51e6f2-6f1f-4e2b-9f64-0c6b2a9c2a01", Name: "Ada", Email: "ada@example.com",
	Address: "12 Analytical Way, London",
	DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	CreatedAt:   time.Now(), UpdatedAt: time.Now(),
}

var pTestView = &models.PatientView{
	ID: pTestPatient.ID, Name: "Ada", Email: "ada@example.com",
	Address: "12 Analytical Way, London", DateOfBirth: "1990-01-01",
	RegisteredDate: "2024-03-18",
	CreatedAt:      time.Now(), UpdatedAt: time.Now(),
}

func pValidBody() map[string]interface{} {
	return map[string]interface{}{
		"name": "Ada", "email": "ada@example.com",
		"address": "12 Analytical Way, London", "dateOfBirth": "1990-01-01",
	}
}

// ---- tests ----

func TestCreatePatientHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(cqrs.CreatePatientCommand) (*models.Patient, error)
		expectedStatus int
	}{
		{
			name:           "success - creates new patient",
			body:           pValidBody(),
			createFn:       func(cmd cqrs.CreatePatientCommand) (*models.Patient, error) { return pTestPatient, nil },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{"email": "ada@example.com"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid email format",
			body:           map[string]interface{}{"name": "Ada", "email": "not-valid", "address": "x", "dateOfBirth": "1990-01-01"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - malformed date of birth",
			body:           map[string]interface{}{"name": "Ada", "email": "ada@example.com", "address": "x", "dateOfBirth": "01/01/1990"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "conflict - duplicate email",
			body: pValidBody(),
			createFn: func(cmd cqrs.CreatePatientCommand) (*models.Patient, error) {
				return nil, fmt.Errorf("%w: ada@example.com", errs.ErrEmailExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "bad gateway - billing unreachable",
			body: pValidBody(),
			createFn: func(cmd cqrs.CreatePatientCommand) (*models.Patient, error) {
				return nil, fmt.Errorf("create billing account: %w", errs.ErrBillingUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "bad gateway - billing rejected",
			body: pValidBody(),
			createFn: func(cmd cqrs.CreatePatientCommand) (*models.Patient, error) {
				return nil, fmt.Errorf("create billing account: %w", errs.ErrBillingRejected)
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "created - event lost after full provisioning",
			body: pValidBody(),
			createFn: func(cmd cqrs.CreatePatientCommand) (*models.Patient, error) {
				return pTestPatient, fmt.Errorf("%w: patient %s", errs.ErrEventPublish, pTestPatient.ID)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "internal error - store failure",
			body: pValidBody(),
			createFn: func(cmd cqrs.CreatePatientCommand) (*models.Patient, error) {
				return nil, fmt.Errorf("%w: connection reset", errs.ErrStore)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockPatientCommander{createFn: tt.createFn}
			router := newPatientTestRouter(cmds, &mockPatientQuerier{})
			w := patientDoRequest(router, http.MethodPost, "/v1/patients", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdatePatientHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		updateFn       func(cqrs.UpdatePatientCommand) (*models.PatientView, error)
		expectedStatus int
	}{
		{
			name:           "success - updates patient",
			body:           pValidBody(),
			updateFn:       func(cmd cqrs.UpdatePatientCommand) (*models.PatientView, error) { return pTestView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - patient does not exist",
			body: pValidBody(),
			updateFn: func(cmd cqrs.UpdatePatientCommand) (*models.PatientView, error) {
				return nil, errs.ErrPatientNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "conflict - email used by another patient",
			body: pValidBody(),
			updateFn: func(cmd cqrs.UpdatePatientCommand) (*models.PatientView, error) {
				return nil, fmt.Errorf("%w: ada@example.com", errs.ErrEmailExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{},
			updateFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockPatientCommander{updateFn: tt.updateFn}
			router := newPatientTestRouter(cmds, &mockPatientQuerier{})
			w := patientDoRequest(router, http.MethodPut, "/v1/patients/"+pTestPatient.ID, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestDeletePatientHandler(t *testing.T) {
	tests := []struct {
		name           string
		deleteFn       func(cqrs.DeletePatientCommand) error
		expectedStatus int
	}{
		{
			name:           "success - deletes patient",
			deleteFn:       func(cmd cqrs.DeletePatientCommand) error { return nil },
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "not found - patient does not exist",
			deleteFn:       func(cmd cqrs.DeletePatientCommand) error { return errs.ErrPatientNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockPatientCommander{deleteFn: tt.deleteFn}
			router := newPatientTestRouter(cmds, &mockPatientQuerier{})
			w := patientDoRequest(router, http.MethodDelete, "/v1/patients/"+pTestPatient.ID, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListAndGetPatientHandler(t *testing.T) {
	qrys := &mockPatientQuerier{
		listFn: func(cqrs.ListPatientsQuery) ([]*models.PatientView, error) {
			return []*models.PatientView{pTestView}, nil
		},
		getFn: func(q cqrs.GetPatientQuery) (*models.PatientView, error) {
			if q.PatientID == pTestView.ID {
				return pTestView, nil
			}
			return nil, errs.ErrPatientNotFound
		},
	}
	router := newPatientTestRouter(&mockPatientCommander{}, qrys)

	w := patientDoRequest(router, http.MethodGet, "/v1/patients", nil)
	if w.Code != http.StatusOK {
		t.Errorf("list: expected 200, got %d", w.Code)
	}
	var views []models.PatientView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil || len(views) != 1 {
		t.Errorf("list: expected one view, got %s", w.Body.String())
	}

	w = patientDoRequest(router, http.MethodGet, "/v1/patients/"+pTestView.ID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("get: expected 200, got %d", w.Code)
	}

	w = patientDoRequest(router, http.MethodGet, "/v1/patients/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get missing: expected 404, got %d", w.Code)
	}
}
