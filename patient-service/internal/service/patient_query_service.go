package service

import (
	"context"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/models"
)

// PatientQueryService serves reads from the read repository.
type PatientQueryService struct {
	readRepo PatientReader
}

func NewPatientQueryService(readRepo PatientReader) *PatientQueryService {
	return &PatientQueryService{readRepo: readRepo}
}

func (s *PatientQueryService) GetPatients(cqrs.ListPatientsQuery) ([]*models.PatientView, error) {
	return s.readRepo.ListAll(context.Background())
}

func (s *PatientQueryService) GetPatient(q cqrs.GetPatientQuery) (*models.PatientView, error) {
	return s.readRepo.GetByID(context.Background(), q.PatientID)
}
