// Package model contains domain models passed between layers.
package model

import "strings"

// RoleTotal is the synthetic role that aggregates every canonical role.
const RoleTotal = "Total"

// RoleNamedTotal replaces a sheet role spelled exactly like RoleTotal so
// those associates keep a node of their own.
const RoleNamedTotal = "Total (role)"

// Record is one cleaned associate row.
type Record struct {
	ID           string // associate id
	Name         string // associate name
	RawRole      string // role text as found in the sheet
	Role         string // canonical role
	Region       string
	Availability int // whole percent, 1..100 once cleaned
}

// canonicalKeywords is checked in order; the first substring hit wins.
var canonicalKeywords = []string{"SCRUM", "TPDL", "PGM", "PM"}

// CanonicalRole maps free-text role labels onto the canonical vocabulary.
// "SCRUM PM" resolves to SCRUM because SCRUM is tested first. A role
// reading "Total" becomes RoleNamedTotal.
func CanonicalRole(raw string) string {
	trimmed := strings.TrimSpace(raw)
	upper := strings.ToUpper(trimmed)
	for _, kw := range canonicalKeywords {
		if strings.Contains(upper, kw) {
			return kw
		}
	}
	if trimmed == RoleTotal {
		return RoleNamedTotal
	}
	return trimmed
}

// PreferredRoles is the fixed leading order of roles in every view.
var PreferredRoles = []string{RoleTotal, "PGM", "PM", "SCRUM", "TPDL"}
