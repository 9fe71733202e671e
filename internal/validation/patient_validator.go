// Package validation declares the per-operation field lists for the patient
// resource and runs raw transport input through the generic field-list
// engine. The same field names appear on several operations but differ in
// whether they are required.
package validation

import (
	"fmt"
	"regexp"

	"patient-registry-service/internal/converter"
	"patient-registry-service/internal/domain/entity"
	"patient-registry-service/pkg/apierror"
	"patient-registry-service/pkg/identifier"
	"patient-registry-service/pkg/validator"
)

// Query parameters supported by all resources.
var generalParams = []validator.Field{
	{Name: "limit", Kind: validator.Number},
	{Name: "offset", Kind: validator.Number},
	{Name: "query", Kind: validator.String},
}

// Patient-specific query parameters, used as equality filters.
var patientParams = []validator.Field{
	{Name: "firstName", Kind: validator.String},
	{Name: "lastName", Kind: validator.String},
	{Name: "dob", Kind: validator.String},
	{Name: "telecom", Kind: validator.String},
	{Name: "isActive", Kind: validator.Boolean},
}

// Fields accepted by create and replace bodies. The identity fields are
// required because the identifier is derived from them.
var createParams = []validator.Field{
	{Name: "firstName", Required: true, Kind: validator.String},
	{Name: "lastName", Required: true, Kind: validator.String},
	{Name: "dob", Required: true, Kind: validator.String},
	{Name: "telecom", Kind: validator.String},
	{Name: "isActive", Kind: validator.Boolean},
}

// Fields accepted by patch bodies; any subset is fine.
var patchParams = []validator.Field{
	{Name: "firstName", Kind: validator.String},
	{Name: "lastName", Kind: validator.String},
	{Name: "dob", Kind: validator.String},
	{Name: "telecom", Kind: validator.String},
	{Name: "isActive", Kind: validator.Boolean},
}

var idPattern = regexp.MustCompile(`^[a-f0-9]{7}$`)

// QueryParams splits one raw query-parameter map into the resource filter and
// the general search options using two independent passes. The two field
// lists are disjoint, so a key is never claimed twice.
func QueryParams(params map[string]any) (entity.SearchOptions, entity.PatientDraft, error) {
	if len(params) == 0 {
		return entity.SearchOptions{}, entity.PatientDraft{}, nil
	}

	patientValues, err := validator.Check(patientParams, params)
	if err != nil {
		return entity.SearchOptions{}, entity.PatientDraft{}, err
	}
	generalValues, err := validator.Check(generalParams, params)
	if err != nil {
		return entity.SearchOptions{}, entity.PatientDraft{}, err
	}

	return converter.SearchOptionsFromValues(generalValues),
		converter.PatientDraftFromValues(patientValues), nil
}

// CreateBody validates a create request body.
func CreateBody(body map[string]any) (entity.PatientDraft, error) {
	values, err := validator.Check(createParams, body)
	if err != nil {
		return entity.PatientDraft{}, err
	}
	return converter.PatientDraftFromValues(values), nil
}

// ReplaceBody validates a replace request body. Replace takes the same field
// list as create since the record is rebuilt from scratch.
func ReplaceBody(body map[string]any) (entity.PatientDraft, error) {
	return CreateBody(body)
}

// PatchBody validates a partial-update request body.
func PatchBody(body map[string]any) (entity.PatientDraft, error) {
	values, err := validator.Check(patchParams, body)
	if err != nil {
		return entity.PatientDraft{}, err
	}
	return converter.PatientDraftFromValues(values), nil
}

// PatientID rejects identifiers that are not exactly seven lowercase hex
// characters. Pure validation, no coercion.
func PatientID(id string) error {
	if len(id) != identifier.Length {
		return apierror.MalformedID(
			fmt.Sprintf("IDs must be exactly %d characters. Found %d.", identifier.Length, len(id)))
	}
	if !idPattern.MatchString(id) {
		return apierror.MalformedID("Given ID contains illegal characters. Only 0-9 and a-f are allowed.")
	}
	return nil
}
