package usecase

import (
	"context"
	"errors"

	"patient-registry-service/internal/domain/repository"
	"patient-registry-service/internal/service"
	"patient-registry-service/internal/validation"
	"patient-registry-service/pkg/apierror"
	"patient-registry-service/pkg/response"

	"github.com/sirupsen/logrus"
)

// PatientUsecase orchestrates one validate → store → envelope pass per
// route. Every method returns a transport-ready envelope; domain errors are
// mapped through the code table and anything unexpected is logged and
// replaced with the generic catch-all error.
type PatientUsecase interface {
	List(ctx context.Context, params map[string]any) response.Envelope
	Create(ctx context.Context, body map[string]any) response.Envelope
	Get(ctx context.Context, id string) response.Envelope
	Replace(ctx context.Context, id string, body map[string]any) response.Envelope
	Patch(ctx context.Context, id string, body map[string]any) response.Envelope
	Delete(ctx context.Context, id string) response.Envelope
}

type patientUsecase struct {
	log     *logrus.Logger
	store   repository.PatientStore
	builder *response.Builder
	audit   service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	store repository.PatientStore,
	builder *response.Builder,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:     log,
		store:   store,
		builder: builder,
		audit:   audit,
	}
}

func (u *patientUsecase) List(ctx context.Context, params map[string]any) response.Envelope {
	opts, filter, err := validation.QueryParams(params)
	if err != nil {
		return u.respondError(err)
	}

	patients := u.store.FindBy(ctx, opts, filter)
	total := u.store.Count(ctx, opts, filter)

	httpCode := "200"
	if total == 0 {
		httpCode = "204"
	}

	return u.builder.Build(response.Metadata{HTTPCode: httpCode, Total: total}, patients)
}

func (u *patientUsecase) Create(ctx context.Context, body map[string]any) response.Envelope {
	draft, err := validation.CreateBody(body)
	if err != nil {
		return u.respondError(err)
	}

	patient, err := u.store.Create(ctx, draft)
	if err != nil {
		return u.respondError(err)
	}

	u.audit.LogChange(ctx, service.AuditActionCreate, patient.ID, nil, patient)

	return u.builder.Build(response.Metadata{HTTPCode: "201", Total: 1}, patient)
}

func (u *patientUsecase) Get(ctx context.Context, id string) response.Envelope {
	if err := validation.PatientID(id); err != nil {
		return u.respondError(err)
	}

	patient, err := u.store.Get(ctx, id)
	if err != nil {
		return u.respondError(err)
	}

	return u.builder.Build(response.Metadata{HTTPCode: "200", Total: 1}, patient)
}

func (u *patientUsecase) Replace(ctx context.Context, id string, body map[string]any) response.Envelope {
	if err := validation.PatientID(id); err != nil {
		return u.respondError(err)
	}
	draft, err := validation.ReplaceBody(body)
	if err != nil {
		return u.respondError(err)
	}

	// The replacement may carry a different identifier than the path id when
	// identity fields changed. The store hands back the prior record alongside
	// the new one so the audit trail sees a consistent before/after pair.
	patient, previous, err := u.store.Replace(ctx, id, draft)
	if err != nil {
		return u.respondError(err)
	}

	u.audit.LogChange(ctx, service.AuditActionReplace, patient.ID, previous, patient)

	return u.builder.Build(response.Metadata{HTTPCode: "201", Total: 1}, patient)
}

func (u *patientUsecase) Patch(ctx context.Context, id string, body map[string]any) response.Envelope {
	if err := validation.PatientID(id); err != nil {
		return u.respondError(err)
	}
	draft, err := validation.PatchBody(body)
	if err != nil {
		return u.respondError(err)
	}

	patient, previous, err := u.store.Patch(ctx, id, draft)
	if err != nil {
		return u.respondError(err)
	}

	u.audit.LogChange(ctx, service.AuditActionPatch, patient.ID, previous, patient)

	return u.builder.Build(response.Metadata{HTTPCode: "200", Total: 1}, patient)
}

func (u *patientUsecase) Delete(ctx context.Context, id string) response.Envelope {
	if err := validation.PatientID(id); err != nil {
		return u.respondError(err)
	}

	removed, err := u.store.Delete(ctx, id)
	if err != nil {
		return u.respondError(err)
	}

	u.audit.LogChange(ctx, service.AuditActionDelete, id, removed, nil)

	return u.builder.Build(response.Metadata{HTTPCode: "204", Total: 1}, struct{}{})
}

// respondError maps domain errors through the code table and swallows
// everything else behind the generic catch-all so internals never leak.
func (u *patientUsecase) respondError(err error) response.Envelope {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return u.builder.BuildError(apiErr)
	}

	u.log.Errorf("unhandled error: %+v", err)
	return u.builder.BuildError(apierror.Uncaught())
}
