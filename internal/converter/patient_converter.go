package converter

import (
	"patient-registry-service/internal/domain/entity"
	"patient-registry-service/pkg/validator"
)

// PatientDraftFromValues maps validated field values onto a patient draft.
// Absent values stay nil so downstream merge and filter logic can tell
// "absent" from "zero".
func PatientDraftFromValues(values validator.Values) entity.PatientDraft {
	draft := entity.PatientDraft{}

	if firstName, ok := values.String("firstName"); ok {
		draft.FirstName = &firstName
	}
	if lastName, ok := values.String("lastName"); ok {
		draft.LastName = &lastName
	}
	if dob, ok := values.String("dob"); ok {
		draft.Dob = &dob
	}
	if telecom, ok := values.String("telecom"); ok {
		draft.Telecom = &telecom
	}
	if isActive, ok := values.Bool("isActive"); ok {
		draft.IsActive = &isActive
	}

	return draft
}

// SearchOptionsFromValues maps validated general query values onto search
// options. Numbers arrive as float64 from the validation engine and are
// narrowed to int here.
func SearchOptionsFromValues(values validator.Values) entity.SearchOptions {
	opts := entity.SearchOptions{}

	if limit, ok := values.Number("limit"); ok {
		n := int(limit)
		opts.Limit = &n
	}
	if offset, ok := values.Number("offset"); ok {
		n := int(offset)
		opts.Offset = &n
	}
	if query, ok := values.String("query"); ok {
		opts.Query = &query
	}

	return opts
}
