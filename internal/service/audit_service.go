package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Audit actions recorded for patient mutations.
const (
	AuditActionCreate  = "patient.create"
	AuditActionReplace = "patient.replace"
	AuditActionPatch   = "patient.patch"
	AuditActionDelete  = "patient.delete"
)

// AuditService records every successful mutation of the collection. With no
// persistence in this service the trail goes to the structured log.
type AuditService interface {
	LogChange(ctx context.Context, action, resourceID string, oldValue, newValue any)
}

type logAuditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &logAuditService{log: log}
}

func (s *logAuditService) LogChange(ctx context.Context, action, resourceID string, oldValue, newValue any) {
	s.log.WithFields(logrus.Fields{
		"action":      action,
		"resource_id": resourceID,
		"old_value":   oldValue,
		"new_value":   newValue,
	}).Info("audit entry")
}
