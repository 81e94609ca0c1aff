package member

import (
	"context"
	"fmt"
)

// Candidate holds the caller-supplied fields of a team member. Identity and
// timestamps are always assigned by storage.
type Candidate struct {
	FullName string
	Email    string
	Function JobFunction
	Role     Role
}

// Service enforces the team member business rules on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new member Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every member when the filter is empty, otherwise the members matching it.
func (s *Service) List(ctx context.Context, filter SearchFilter) ([]TeamMember, error) {
	if filter.IsEmpty() {
		members, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing team members: %w", err)
		}
		return members, nil
	}

	members, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("searching team members: %w", err)
	}
	return members, nil
}

// Get returns the member with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*TeamMember, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting team member %d: %w", id, err)
	}
	return m, nil
}

// Create stores a new member. Returns ErrEmailTaken if the email is already in use.
func (s *Service) Create(ctx context.Context, c Candidate) (*TeamMember, error) {
	taken, err := s.repo.ExistsByEmail(ctx, c.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	m := &TeamMember{
		FullName: c.FullName,
		Email:    c.Email,
		Function: c.Function,
		Role:     c.Role,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating team member: %w", err)
	}
	return m, nil
}

// Update overwrites the mutable fields of member id. Keeping the current email
// is never a conflict; moving to an email held by another member is.
func (s *Service) Update(ctx context.Context, id int64, c Candidate) (*TeamMember, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting team member %d: %w", id, err)
	}

	if existing.Email != c.Email {
		taken, err := s.repo.ExistsByEmail(ctx, c.Email)
		if err != nil {
			return nil, fmt.Errorf("checking email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	existing.FullName = c.FullName
	existing.Email = c.Email
	existing.Function = c.Function
	existing.Role = c.Role

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("updating team member %d: %w", id, err)
	}
	return existing, nil
}

// Delete removes member id or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking team member %d: %w", id, err)
	}
	if !exists {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting team member %d: %w", id, err)
	}
	return nil
}
