package member_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jack-dao/team-management/internal/member"
)

func newMember(name, email string, fn member.JobFunction, role member.Role) *member.TeamMember {
	return &member.TeamMember{FullName: name, Email: email, Function: fn, Role: role}
}

func TestMemoryRepository_CreateAssignsIDsAndTimestamps(t *testing.T) {
	repo := member.NewMemoryRepository()
	ctx := context.Background()

	a := newMember("Ann", "ann@x.com", member.FunctionIT, member.RoleAdmin)
	b := newMember("Bob", "bob@x.com", member.FunctionProduct, member.RoleContributor)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestMemoryRepository_CreateDuplicateEmail(t *testing.T) {
	repo := member.NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newMember("Ann", "ann@x.com", member.FunctionIT, member.RoleAdmin)))
	err := repo.Create(ctx, newMember("Other", "ann@x.com", member.FunctionIT, member.RoleAdmin))

	assert.ErrorIs(t, err, member.ErrEmailTaken)
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryRepository_GetByIDReturnsCopy(t *testing.T) {
	repo := member.NewMemoryRepository()
	ctx := context.Background()

	m := newMember("Ann", "ann@x.com", member.FunctionIT, member.RoleAdmin)
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	got.FullName = "changed"

	again, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.FullName)
}

func TestMemoryRepository_GetByIDNotFound(t *testing.T) {
	repo := member.NewMemoryRepository()

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, member.ErrNotFound)
}

func TestMemoryRepository_Search(t *testing.T) {
	repo := member.NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newMember("Test User", "one@x.com", member.FunctionIT, member.RoleAdmin)))
	require.NoError(t, repo.Create(ctx, newMember("Jane", "jane.TEST@x.com", member.FunctionProduct, member.RoleContributor)))
	require.NoError(t, repo.Create(ctx, newMember("Joe", "joe@x.com", member.FunctionIT, member.RoleContributor)))

	it := member.FunctionIT
	contributor := member.RoleContributor

	tests := []struct {
		name   string
		filter member.SearchFilter
		want   []string
	}{
		{name: "no constraints", filter: member.SearchFilter{}, want: []string{"Test User", "Jane", "Joe"}},
		{name: "query matches name or email", filter: member.SearchFilter{Query: "test"}, want: []string{"Test User", "Jane"}},
		{name: "query is case-insensitive", filter: member.SearchFilter{Query: "TeSt"}, want: []string{"Test User", "Jane"}},
		{name: "function", filter: member.SearchFilter{Function: &it}, want: []string{"Test User", "Joe"}},
		{name: "role", filter: member.SearchFilter{Role: &contributor}, want: []string{"Jane", "Joe"}},
		{name: "function and role", filter: member.SearchFilter{Function: &it, Role: &contributor}, want: []string{"Joe"}},
		{name: "query and role", filter: member.SearchFilter{Query: "test", Role: &contributor}, want: []string{"Jane"}},
		{name: "no match", filter: member.SearchFilter{Query: "nobody"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, m := range got {
				names = append(names, m.FullName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestMemoryRepository_Update(t *testing.T) {
	repo := member.NewMemoryRepository()
	ctx := context.Background()

	a := newMember("Ann", "ann@x.com", member.FunctionIT, member.RoleAdmin)
	b := newMember("Bob", "bob@x.com", member.FunctionIT, member.RoleAdmin)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	createdAt := a.CreatedAt

	upd := &member.TeamMember{ID: a.ID, FullName: "Ann 2", Email: "ann@x.com", Function: member.FunctionEngineering, Role: member.RoleContributor}
	require.NoError(t, repo.Update(ctx, upd))

	assert.Equal(t, createdAt, upd.CreatedAt)
	assert.False(t, upd.UpdatedAt.Before(createdAt))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann 2", got.FullName)
	assert.Equal(t, member.FunctionEngineering, got.Function)
	assert.Equal(t, member.RoleContributor, got.Role)

	clash := &member.TeamMember{ID: a.ID, FullName: "Ann", Email: "bob@x.com", Function: member.FunctionIT, Role: member.RoleAdmin}
	assert.ErrorIs(t, repo.Update(ctx, clash), member.ErrEmailTaken)

	missing := &member.TeamMember{ID: 99, FullName: "X", Email: "x@x.com"}
	assert.ErrorIs(t, repo.Update(ctx, missing), member.ErrNotFound)
}

func TestMemoryRepository_DeleteAndExists(t *testing.T) {
	repo := member.NewMemoryRepository()
	ctx := context.Background()

	m := newMember("Ann", "ann@x.com", member.FunctionIT, member.RoleAdmin)
	require.NoError(t, repo.Create(ctx, m))

	exists, err := repo.ExistsByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	taken, err := repo.ExistsByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, repo.Delete(ctx, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), member.ErrNotFound)

	exists, err = repo.ExistsByID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	taken, err = repo.ExistsByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.False(t, taken)
}
