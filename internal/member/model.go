package member

import (
	"fmt"
	"time"
)

// JobFunction is the business function a team member works in.
type JobFunction string

const (
	FunctionProduct        JobFunction = "PRODUCT"
	FunctionMarketingSales JobFunction = "MARKETING_SALES"
	FunctionIT             JobFunction = "IT"
	FunctionEngineering    JobFunction = "ENGINEERING"
)

// JobFunctions lists every valid JobFunction in declaration order.
var JobFunctions = []JobFunction{FunctionProduct, FunctionMarketingSales, FunctionIT, FunctionEngineering}

// ParseJobFunction converts s to a JobFunction. Matching is exact and case-sensitive.
func ParseJobFunction(s string) (JobFunction, error) {
	switch JobFunction(s) {
	case FunctionProduct, FunctionMarketingSales, FunctionIT, FunctionEngineering:
		return JobFunction(s), nil
	default:
		return "", fmt.Errorf("unknown job function %q", s)
	}
}

// Role is the permission level of a team member.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleContributor Role = "CONTRIBUTOR"
)

// Roles lists every valid Role in declaration order.
var Roles = []Role{RoleAdmin, RoleContributor}

// ParseRole converts s to a Role. Matching is exact and case-sensitive.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleContributor:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// TeamMember represents a row in the team_members table.
type TeamMember struct {
	ID        int64
	FullName  string
	Email     string
	Function  JobFunction
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchFilter holds the optional listing constraints. Zero values mean "not set".
type SearchFilter struct {
	Query    string // substring of full name or email, case-insensitive
	Function *JobFunction
	Role     *Role
}

// IsEmpty reports whether no constraint is set.
func (f SearchFilter) IsEmpty() bool {
	return f.Query == "" && f.Function == nil && f.Role == nil
}
