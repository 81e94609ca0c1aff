package member_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jack-dao/team-management/internal/member"
)

func TestParseJobFunction_AcceptsEveryLiteral(t *testing.T) {
	for _, fn := range member.JobFunctions {
		got, err := member.ParseJobFunction(string(fn))
		require.NoError(t, err)
		assert.Equal(t, fn, got)
	}
}

func TestParseJobFunction_Rejects(t *testing.T) {
	for _, in := range []string{"", "product", "Engineering", "SALES", " IT"} {
		t.Run(in, func(t *testing.T) {
			_, err := member.ParseJobFunction(in)
			assert.Error(t, err)
		})
	}
}

func TestParseRole_AcceptsEveryLiteral(t *testing.T) {
	for _, role := range member.Roles {
		got, err := member.ParseRole(string(role))
		require.NoError(t, err)
		assert.Equal(t, role, got)
	}
}

func TestParseRole_Rejects(t *testing.T) {
	for _, in := range []string{"", "admin", "OWNER", "CONTRIBUTOR "} {
		t.Run(in, func(t *testing.T) {
			_, err := member.ParseRole(in)
			assert.Error(t, err)
		})
	}
}

func TestSearchFilter_IsEmpty(t *testing.T) {
	fn := member.FunctionIT
	role := member.RoleAdmin

	assert.True(t, member.SearchFilter{}.IsEmpty())
	assert.False(t, member.SearchFilter{Query: "x"}.IsEmpty())
	assert.False(t, member.SearchFilter{Function: &fn}.IsEmpty())
	assert.False(t, member.SearchFilter{Role: &role}.IsEmpty())
}
