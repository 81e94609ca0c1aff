package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/jack-dao/team-management/internal/member"
)

const minFullNameLength = 2

// MemberRequest mirrors the fields needed for create and update validation.
type MemberRequest struct {
	FullName string
	Email    string
	Function string
	Role     string
}

// ValidateMemberRequest validates a create or update team member request.
// Returns a slice of field errors; empty slice means valid.
func ValidateMemberRequest(req MemberRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.FullName) == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "fullName is required"})
	} else if utf8.RuneCountInString(req.FullName) < minFullNameLength {
		errs = append(errs, FieldError{Field: "fullName", Message: fmt.Sprintf("fullName must be at least %d characters", minFullNameLength)})
	}

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !IsEmail(req.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid email address"})
	}

	if req.Function == "" {
		errs = append(errs, FieldError{Field: "function", Message: "function is required"})
	} else if _, err := member.ParseJobFunction(req.Function); err != nil {
		errs = append(errs, FieldError{Field: "function", Message: "function must be one of " + joinQuoted(member.JobFunctions)})
	}

	if req.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	} else if _, err := member.ParseRole(req.Role); err != nil {
		errs = append(errs, FieldError{Field: "role", Message: "role must be one of " + joinQuoted(member.Roles)})
	}

	return errs
}

// IsEmail reports whether s is a bare addr-spec such as "jane@example.com".
// Display-name forms like "Jane <jane@example.com>" are rejected.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1
}

func joinQuoted[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", string(v))
	}
	return strings.Join(quoted, ", ")
}
