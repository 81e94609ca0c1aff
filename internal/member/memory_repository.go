package member

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository implements Repository in process memory. Emails are kept
// unique under the same lock that guards the records.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	members map[int64]TeamMember
	now     func() time.Time
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		members: make(map[int64]TeamMember),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(_ context.Context, m *TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailInUse(m.Email, 0) {
		return ErrEmailTaken
	}

	r.nextID++
	now := r.now()
	m.ID = r.nextID
	m.CreatedAt = now
	m.UpdatedAt = now
	r.members[m.ID] = *m
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]TeamMember, error) {
	return r.Search(ctx, SearchFilter{})
}

func (r *MemoryRepository) Search(_ context.Context, filter SearchFilter) ([]TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	members := []TeamMember{}
	for _, m := range r.members {
		if query != "" &&
			!strings.Contains(strings.ToLower(m.FullName), query) &&
			!strings.Contains(strings.ToLower(m.Email), query) {
			continue
		}
		if filter.Function != nil && m.Function != *filter.Function {
			continue
		}
		if filter.Role != nil && m.Role != *filter.Role {
			continue
		}
		members = append(members, m)
	}

	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *MemoryRepository) Update(_ context.Context, m *TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.members[m.ID]
	if !ok {
		return ErrNotFound
	}
	if r.emailInUse(m.Email, m.ID) {
		return ErrEmailTaken
	}

	existing.FullName = m.FullName
	existing.Email = m.Email
	existing.Function = m.Function
	existing.Role = m.Role
	existing.UpdatedAt = r.now()
	r.members[m.ID] = existing

	*m = existing
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return ErrNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *MemoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.emailInUse(email, 0), nil
}

func (r *MemoryRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[id]
	return ok, nil
}

// emailInUse must be called with r.mu held. Records with id exceptID are ignored.
func (r *MemoryRepository) emailInUse(email string, exceptID int64) bool {
	for id, m := range r.members {
		if id != exceptID && m.Email == email {
			return true
		}
	}
	return false
}
