package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/library-service/internal/domain"
)

// MemberRepository defines persistence access for borrower accounts.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	UpdateProfile(ctx context.Context, id string, age int, gender, dob, address string) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

const memberColumns = `id, user_full_name, email, password_hash, mobile_number,
    user_type, admission_id, employee_id, gender, age, dob, address, photo,
    is_admin, active_transactions, prev_transactions, created_at, updated_at`

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (user_full_name, email, password_hash, mobile_number,
            user_type, admission_id, employee_id, gender, age, dob, address, photo, is_admin)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.UserFullName,
		member.Email,
		member.PasswordHash,
		member.MobileNumber,
		member.UserType,
		member.AdmissionID,
		member.EmployeeID,
		member.Gender,
		member.Age,
		member.DOB,
		member.Address,
		member.Photo,
		member.IsAdmin,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	const query = `
        UPDATE members SET user_full_name=$1, email=$2, mobile_number=$3, user_type=$4,
            admission_id=$5, employee_id=$6, gender=$7, age=$8, dob=$9, address=$10,
            photo=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		member.UserFullName,
		member.Email,
		member.MobileNumber,
		member.UserType,
		member.AdmissionID,
		member.EmployeeID,
		member.Gender,
		member.Age,
		member.DOB,
		member.Address,
		member.Photo,
		member.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) UpdateProfile(ctx context.Context, id string, age int, gender, dob, address string) error {
	const query = `
        UPDATE members SET age=$1, gender=$2, dob=$3, address=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query, age, gender, dob, address, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	const query = `UPDATE members SET photo=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, photo, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *memberRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Member, error) {
	var member domain.Member
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&member.ID,
		&member.UserFullName,
		&member.Email,
		&member.PasswordHash,
		&member.MobileNumber,
		&member.UserType,
		&member.AdmissionID,
		&member.EmployeeID,
		&member.Gender,
		&member.Age,
		&member.DOB,
		&member.Address,
		&member.Photo,
		&member.IsAdmin,
		&member.ActiveTransactions,
		&member.PrevTransactions,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers returns borrower accounts, excluding admin-only accounts.
func (r *memberRepository) ListMembers(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members
        WHERE user_type IN ($1, $2) ORDER BY user_full_name`

	rows, err := r.pool.Query(ctx, query, domain.UserTypeStudent, domain.UserTypeStaff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID,
			&member.UserFullName,
			&member.Email,
			&member.PasswordHash,
			&member.MobileNumber,
			&member.UserType,
			&member.AdmissionID,
			&member.EmployeeID,
			&member.Gender,
			&member.Age,
			&member.DOB,
			&member.Address,
			&member.Photo,
			&member.IsAdmin,
			&member.ActiveTransactions,
			&member.PrevTransactions,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}
