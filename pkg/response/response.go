// Package response builds the uniform envelope returned by every endpoint
// and writes it to the transport. Error envelopes resolve their HTTP status
// and summary through a static, ordered code table.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"patient-registry-service/pkg/apierror"
)

// Fallbacks used when even the catch-all table row is missing.
const (
	fallbackStatus  = "500"
	fallbackSummary = "Unknown error"
	fallbackDetails = "No additional details are available for this error"
)

// Row is one entry of the error-code table: code, HTTP status, summary.
type Row struct {
	Code    string
	Status  string
	Summary string
}

// CodeTable is an ordered, append-only list of rows. Lookup returns the first
// row matching the code.
type CodeTable []Row

func (t CodeTable) Lookup(code string) (Row, bool) {
	for _, row := range t {
		if row.Code == code {
			return row, true
		}
	}
	return Row{}, false
}

// Metadata travels on every envelope. HTTPCode is kept as a string so the
// envelope round-trips unchanged through the transport adapter.
type Metadata struct {
	HTTPCode string `json:"httpCode"`
	Total    int    `json:"total,omitempty"`
}

// Status converts the metadata HTTP code into a transport status code,
// falling back to 500 when it is not a number.
func (m Metadata) Status() int {
	code, err := strconv.Atoi(m.HTTPCode)
	if err != nil {
		return http.StatusInternalServerError
	}
	return code
}

// ErrorBody is the error half of an envelope.
type ErrorBody struct {
	Summary   string   `json:"summary"`
	Details   string   `json:"details"`
	Resources []string `json:"resources"`
}

// Envelope is the uniform response shape. Exactly one of Payload and Error is
// set.
type Envelope struct {
	Metadata Metadata   `json:"metadata"`
	Payload  any        `json:"payload,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
}

// Builder converts payloads and domain errors into envelopes.
type Builder struct {
	table CodeTable
}

func NewBuilder(table CodeTable) *Builder {
	return &Builder{table: table}
}

// Build wraps a successful payload. The metadata passes through verbatim
// aside from HTTPCode defaulting to "200" when absent.
func (b *Builder) Build(meta Metadata, payload any) Envelope {
	if meta.HTTPCode == "" {
		meta.HTTPCode = "200"
	}
	return Envelope{Metadata: meta, Payload: payload}
}

// BuildError wraps a domain error. The code is resolved against the table;
// unknown codes fall back to the catch-all "000" row, and if even that row is
// absent the built-in 500 fallback applies. The error's own details and
// resources win over the defaults when provided.
func (b *Builder) BuildError(apiErr *apierror.Error) Envelope {
	row, ok := b.table.Lookup(apiErr.Code)
	if !ok {
		row, ok = b.table.Lookup(apierror.CodeUnknown)
	}
	if !ok {
		row = Row{Code: apierror.CodeUnknown, Status: fallbackStatus, Summary: fallbackSummary}
	}

	details := apiErr.Details
	if details == "" {
		details = fallbackDetails
	}
	resources := apiErr.Resources
	if resources == nil {
		resources = []string{}
	}

	return Envelope{
		Metadata: Metadata{HTTPCode: row.Status},
		Error: &ErrorBody{
			Summary:   row.Summary,
			Details:   details,
			Resources: resources,
		},
	}
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// Write serializes an envelope using the status carried in its metadata.
// 204 responses carry no body.
func Write(w http.ResponseWriter, env Envelope) {
	status := env.Metadata.Status()
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, env)
}
