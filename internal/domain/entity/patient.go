package entity

// Patient is the sole resource of the registry. The identifier is derived
// from the three identity fields (firstName, lastName, dob) and changes when
// any of them changes. Optional fields are pointers so that absent values
// stay absent in the serialized record instead of appearing as zero values.
type Patient struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Dob       string  `json:"dob"`
	Created   string  `json:"created"`
	Telecom   *string `json:"telecom,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// Clone returns a deep copy. The store hands out clones only, so callers can
// never mutate stored state behind its back.
func (p Patient) Clone() Patient {
	out := p
	if p.Telecom != nil {
		telecom := *p.Telecom
		out.Telecom = &telecom
	}
	if p.IsActive != nil {
		isActive := *p.IsActive
		out.IsActive = &isActive
	}
	return out
}

// PatientDraft carries validated patient fields on their way into the store.
// Every field is optional; which ones must be present depends on the
// operation (create and replace require the three identity fields, patch and
// filtering accept any subset).
type PatientDraft struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Dob       *string `json:"dob,omitempty"`
	Telecom   *string `json:"telecom,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// Empty reports whether no field is set at all.
func (d PatientDraft) Empty() bool {
	return d.FirstName == nil && d.LastName == nil && d.Dob == nil &&
		d.Telecom == nil && d.IsActive == nil
}
