package member

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a team member record is not found.
var ErrNotFound = errors.New("team member not found")

// ErrEmailTaken is returned when another team member already uses the email.
var ErrEmailTaken = errors.New("email already exists")

// Repository provides CRUD operations on the team_members table.
type Repository interface {
	Create(ctx context.Context, m *TeamMember) error
	GetByID(ctx context.Context, id int64) (*TeamMember, error)
	List(ctx context.Context) ([]TeamMember, error)
	Search(ctx context.Context, filter SearchFilter) ([]TeamMember, error)
	Update(ctx context.Context, m *TeamMember) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
