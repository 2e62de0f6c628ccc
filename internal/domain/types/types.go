// Package types contains common types used across the application
package types

// Overview is the quick profile of a row set shown before a report is
// generated. It is computed over every row, including rows the
// normalizer would later drop.
type Overview struct {
	Rows             int     `json:"rows"`
	UniqueRoles      int     `json:"unique_roles"`
	Regions          int     `json:"regions"`
	MeanAvailability float64 `json:"mean_availability"`
}

// ErrorResponse is the JSON body returned by the HTTP host on failure.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}
