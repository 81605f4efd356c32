package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

// DoctorRepository provides read access to practitioner profiles.
type DoctorRepository interface {
	List(ctx context.Context, specialty string) ([]domain.Doctor, error)
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository returns a Postgres-backed implementation.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

const doctorColumns = `id, name, specialty, rating, experience_years, availability,
        consultation_fee, avatar_url, created_at`

func (r *doctorRepository) List(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY rating DESC`
	args := []any{}
	if specialty != "" {
		query = `SELECT ` + doctorColumns + ` FROM doctors WHERE specialty=$1 ORDER BY rating DESC`
		args = append(args, specialty)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		var doctor domain.Doctor
		if err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Specialty,
			&doctor.Rating,
			&doctor.ExperienceYears,
			&doctor.Availability,
			&doctor.ConsultationFee,
			&doctor.AvatarURL,
			&doctor.CreatedAt,
		); err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	return doctors, rows.Err()
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	const query = `SELECT ` + doctorColumns + ` FROM doctors WHERE id=$1`

	var doctor domain.Doctor
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Specialty,
		&doctor.Rating,
		&doctor.ExperienceYears,
		&doctor.Availability,
		&doctor.ConsultationFee,
		&doctor.AvatarURL,
		&doctor.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}
