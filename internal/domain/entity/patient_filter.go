package entity

// SearchOptions are the resource-independent query parameters accepted by
// list operations. Limit and Offset are validated and carried but pagination
// is not applied by the store yet.
type SearchOptions struct {
	Limit  *int    `json:"limit,omitempty"`
	Offset *int    `json:"offset,omitempty"`
	Query  *string `json:"query,omitempty"`
}

// HasQuery reports whether a non-empty free-text search term is present.
func (o SearchOptions) HasQuery() bool {
	return o.Query != nil && *o.Query != ""
}
