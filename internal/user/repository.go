package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrDuplicatePhone = errors.New("phone number already registered")
)

type Repository interface {
	CreateDoctor(ctx context.Context, d *Doctor) error
	CreatePatient(ctx context.Context, p *Patient) error
	GetDoctorByPhone(ctx context.Context, phone string) (*Doctor, error)
	GetPatientByPhone(ctx context.Context, phone string) (*Patient, error)
	UpdateDoctor(ctx context.Context, d *Doctor) error
	UpdatePatient(ctx context.Context, p *Patient) error
	FindDoctors(ctx context.Context, specialization, location string) ([]Doctor, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *postgresRepo) CreateDoctor(ctx context.Context, d *Doctor) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	query := `
		INSERT INTO doctors (id, name, phonenumber, password_hash, specialization, experience_years, bio, location_name, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.PhoneNumber, d.PasswordHash, d.Specialization,
		d.ExperienceYears, d.Bio, d.LocationName, d.Latitude, d.Longitude,
		d.CreatedAt, d.UpdatedAt)
	if isDuplicate(err) {
		return ErrDuplicatePhone
	}
	return err
}

func (r *postgresRepo) CreatePatient(ctx context.Context, p *Patient) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO patients (id, name, phonenumber, password_hash, medical_history, age, height, weight, gender, bloodgroup, bio, location_name, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.PhoneNumber, p.PasswordHash, p.MedicalHistory,
		p.Age, p.Height, p.Weight, p.Gender, p.BloodGroup, p.Bio,
		p.LocationName, p.Latitude, p.Longitude, p.CreatedAt, p.UpdatedAt)
	if isDuplicate(err) {
		return ErrDuplicatePhone
	}
	return err
}

func (r *postgresRepo) GetDoctorByPhone(ctx context.Context, phone string) (*Doctor, error) {
	query := `
		SELECT id, name, phonenumber, password_hash, specialization, experience_years, bio, location_name, latitude, longitude, created_at, updated_at
		FROM doctors WHERE phonenumber = $1
	`
	var d Doctor
	var locationName sql.NullString
	err := r.db.QueryRowContext(ctx, query, phone).Scan(
		&d.ID, &d.Name, &d.PhoneNumber, &d.PasswordHash, &d.Specialization,
		&d.ExperienceYears, &d.Bio, &locationName, &d.Latitude, &d.Longitude,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.LocationName = locationName.String
	return &d, nil
}

func (r *postgresRepo) GetPatientByPhone(ctx context.Context, phone string) (*Patient, error) {
	query := `
		SELECT id, name, phonenumber, password_hash, medical_history, age, height, weight, gender, bloodgroup, bio, location_name, latitude, longitude, created_at, updated_at
		FROM patients WHERE phonenumber = $1
	`
	var p Patient
	var locationName sql.NullString
	err := r.db.QueryRowContext(ctx, query, phone).Scan(
		&p.ID, &p.Name, &p.PhoneNumber, &p.PasswordHash, &p.MedicalHistory,
		&p.Age, &p.Height, &p.Weight, &p.Gender, &p.BloodGroup, &p.Bio,
		&locationName, &p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.LocationName = locationName.String
	return &p, nil
}

func (r *postgresRepo) UpdateDoctor(ctx context.Context, d *Doctor) error {
	d.UpdatedAt = time.Now()

	query := `
		UPDATE doctors
		SET name = $2, specialization = $3, experience_years = $4, bio = $5,
		    location_name = $6, latitude = $7, longitude = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Specialization, d.ExperienceYears, d.Bio,
		d.LocationName, d.Latitude, d.Longitude, d.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdatePatient(ctx context.Context, p *Patient) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE patients
		SET name = $2, medical_history = $3, age = $4, height = $5, weight = $6,
		    gender = $7, bloodgroup = $8, bio = $9, location_name = $10,
		    latitude = $11, longitude = $12, updated_at = $13
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.MedicalHistory, p.Age, p.Height, p.Weight,
		p.Gender, p.BloodGroup, p.Bio, p.LocationName,
		p.Latitude, p.Longitude, p.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindDoctors applies optional exact-match filters, no ranking.
func (r *postgresRepo) FindDoctors(ctx context.Context, specialization, location string) ([]Doctor, error) {
	query := `
		SELECT id, name, phonenumber, specialization, experience_years, bio, location_name, latitude, longitude, created_at, updated_at
		FROM doctors
	`
	var conditions []string
	var args []any
	if specialization != "" {
		args = append(args, specialization)
		conditions = append(conditions, fmt.Sprintf("specialization = $%d", len(args)))
	}
	if location != "" {
		args = append(args, location)
		conditions = append(conditions, fmt.Sprintf("location_name = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		var d Doctor
		var locationName sql.NullString
		if err := rows.Scan(
			&d.ID, &d.Name, &d.PhoneNumber, &d.Specialization,
			&d.ExperienceYears, &d.Bio, &locationName, &d.Latitude,
			&d.Longitude, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.LocationName = locationName.String
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}
