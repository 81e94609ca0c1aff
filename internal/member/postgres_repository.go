package member

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const selectColumns = `id, full_name, email, job_function, team_role, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new team member record and fills in the generated id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, m *TeamMember) error {
	query := `
		INSERT INTO team_members (full_name, email, job_function, team_role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, m.FullName, m.Email, string(m.Function), string(m.Role)).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("inserting team member: %w", err)
	}

	return nil
}

// GetByID retrieves a single team member by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*TeamMember, error) {
	query := `SELECT ` + selectColumns + ` FROM team_members WHERE id = $1`

	m, err := scanMember(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying team member: %w", err)
	}

	return m, nil
}

// List retrieves all team members ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]TeamMember, error) {
	query := `SELECT ` + selectColumns + ` FROM team_members ORDER BY id ASC`

	return r.queryMany(ctx, query)
}

// Search retrieves team members matching every constraint set on the filter.
func (r *PostgresRepository) Search(ctx context.Context, filter SearchFilter) ([]TeamMember, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filter.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+likeEscaper.Replace(filter.Query)+"%")
		argIdx++
	}
	if filter.Function != nil {
		conditions = append(conditions, fmt.Sprintf("job_function = $%d", argIdx))
		args = append(args, string(*filter.Function))
		argIdx++
	}
	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("team_role = $%d", argIdx))
		args = append(args, string(*filter.Role))
	}

	query := `SELECT ` + selectColumns + ` FROM team_members`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	return r.queryMany(ctx, query, args...)
}

// Update overwrites the mutable fields of an existing record and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, m *TeamMember) error {
	query := `
		UPDATE team_members
		SET full_name = $1, email = $2, job_function = $3, team_role = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, m.FullName, m.Email, string(m.Function), string(m.Role), m.ID).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("updating team member: %w", err)
	}

	return nil
}

// Delete removes a team member by id.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ExistsByEmail reports whether any record uses the given email.
func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM team_members WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return exists, nil
}

// ExistsByID reports whether a record with the given id exists.
func (r *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM team_members WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking id: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]TeamMember, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var members []TeamMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team member row: %w", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team member rows: %w", err)
	}

	if members == nil {
		members = []TeamMember{}
	}

	return members, nil
}

// scanMember reads one row in selectColumns order.
func scanMember(row pgx.Row) (*TeamMember, error) {
	var m TeamMember
	var function, role string
	err := row.Scan(&m.ID, &m.FullName, &m.Email, &function, &role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Function = JobFunction(function)
	m.Role = Role(role)
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
