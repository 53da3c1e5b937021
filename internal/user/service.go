package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidCoordinates = errors.New("invalid latitude or longitude")
	ErrGeocodeFailed      = errors.New("unable to get location from coordinates")
)

// Geocoder resolves coordinates to a human-readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}

// RegisterInput carries the fields shared by doctor and patient signup.
type RegisterInput struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phonenumber"`
	Password    string `json:"password"`
}

// ProfileUpdate holds the optional fields of an update-profile request.
// Only non-nil fields are applied, and only those allowed for the caller's
// role. Coordinates arrive as strings, matching the mobile client.
type ProfileUpdate struct {
	Name            *string  `json:"name"`
	Specialization  *string  `json:"specialization"`
	ExperienceYears *int     `json:"experience_years"`
	MedicalHistory  *string  `json:"medical_history"`
	Age             *int     `json:"age"`
	Height          *float64 `json:"height"`
	Weight          *int     `json:"weight"`
	Gender          *string  `json:"gender"`
	BloodGroup      *string  `json:"bloodgroup"`
	Bio             *string  `json:"bio"`
	LocationName    *string  `json:"location_name"`
	Latitude        *string  `json:"latitude"`
	Longitude       *string  `json:"longitude"`
}

type Service interface {
	RegisterDoctor(ctx context.Context, in RegisterInput) (*Doctor, error)
	RegisterPatient(ctx context.Context, in RegisterInput) (*Patient, error)
	LoginDoctor(ctx context.Context, phone, password string) (*Doctor, error)
	LoginPatient(ctx context.Context, phone, password string) (*Patient, error)
	UpdateProfile(ctx context.Context, role Role, phone string, update ProfileUpdate) error
	GetDoctor(ctx context.Context, phone string) (*Doctor, error)
	GetPatient(ctx context.Context, phone string) (*Patient, error)
	FindDoctors(ctx context.Context, specialization, location string) ([]Doctor, error)
}

type service struct {
	repo     Repository
	geocoder Geocoder
}

func NewService(repo Repository, geocoder Geocoder) Service {
	return &service{repo: repo, geocoder: geocoder}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *service) RegisterDoctor(ctx context.Context, in RegisterInput) (*Doctor, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	d := &Doctor{
		ID:           uuid.New(),
		Name:         in.Name,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
	}
	if err := s.repo.CreateDoctor(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) RegisterPatient(ctx context.Context, in RegisterInput) (*Patient, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	p := &Patient{
		ID:           uuid.New(),
		Name:         in.Name,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
	}
	if err := s.repo.CreatePatient(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) LoginDoctor(ctx context.Context, phone, password string) (*Doctor, error) {
	d, err := s.repo.GetDoctorByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return d, nil
}

func (s *service) LoginPatient(ctx context.Context, phone, password string) (*Patient, error) {
	p, err := s.repo.GetPatientByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// UpdateProfile applies the role-scoped subset of fields, then resolves a
// location name from coordinates when the client sent coordinates but left
// location_name empty.
func (s *service) UpdateProfile(ctx context.Context, role Role, phone string, update ProfileUpdate) error {
	switch role {
	case RoleDoctor:
		return s.updateDoctor(ctx, phone, update)
	case RolePatient:
		return s.updatePatient(ctx, phone, update)
	default:
		return fmt.Errorf("invalid role: %s", role)
	}
}

func (s *service) updateDoctor(ctx context.Context, phone string, update ProfileUpdate) error {
	d, err := s.repo.GetDoctorByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if update.Name != nil {
		d.Name = *update.Name
	}
	if update.Specialization != nil {
		d.Specialization = *update.Specialization
	}
	if update.ExperienceYears != nil {
		d.ExperienceYears = *update.ExperienceYears
	}
	if update.Bio != nil {
		d.Bio = *update.Bio
	}
	if update.LocationName != nil {
		d.LocationName = *update.LocationName
	}

	lat, lng, name, err := s.resolveLocation(ctx, update, d.LocationName)
	if err != nil {
		return err
	}
	if lat != nil {
		d.Latitude, d.Longitude = lat, lng
	}
	if name != "" {
		d.LocationName = name
	}

	return s.repo.UpdateDoctor(ctx, d)
}

func (s *service) updatePatient(ctx context.Context, phone string, update ProfileUpdate) error {
	p, err := s.repo.GetPatientByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.MedicalHistory != nil {
		p.MedicalHistory = *update.MedicalHistory
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Height != nil {
		p.Height = *update.Height
	}
	if update.Weight != nil {
		p.Weight = *update.Weight
	}
	if update.Gender != nil {
		p.Gender = *update.Gender
	}
	if update.BloodGroup != nil {
		p.BloodGroup = *update.BloodGroup
	}
	if update.Bio != nil {
		p.Bio = *update.Bio
	}
	if update.LocationName != nil {
		p.LocationName = *update.LocationName
	}

	lat, lng, name, err := s.resolveLocation(ctx, update, p.LocationName)
	if err != nil {
		return err
	}
	if lat != nil {
		p.Latitude, p.Longitude = lat, lng
	}
	if name != "" {
		p.LocationName = name
	}

	return s.repo.UpdatePatient(ctx, p)
}

// resolveLocation parses the string coordinates and, when the profile has no
// location name, reverse-geocodes them into one. A geocoder miss is a
// reported error, not a silent skip.
func (s *service) resolveLocation(ctx context.Context, update ProfileUpdate, currentName string) (lat, lng *float64, name string, err error) {
	if update.Latitude == nil && update.Longitude == nil {
		return nil, nil, "", nil
	}
	if update.Latitude == nil || update.Longitude == nil {
		return nil, nil, "", ErrInvalidCoordinates
	}

	latStr := strings.TrimSpace(*update.Latitude)
	lngStr := strings.TrimSpace(*update.Longitude)
	if latStr == "" || lngStr == "" {
		return nil, nil, "", ErrInvalidCoordinates
	}

	latVal, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, nil, "", ErrInvalidCoordinates
	}
	lngVal, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, nil, "", ErrInvalidCoordinates
	}

	if currentName == "" {
		address, err := s.geocoder.ReverseGeocode(ctx, latVal, lngVal)
		if err != nil || address == "" {
			return nil, nil, "", ErrGeocodeFailed
		}
		name = address
	}

	return &latVal, &lngVal, name, nil
}

func (s *service) GetDoctor(ctx context.Context, phone string) (*Doctor, error) {
	return s.repo.GetDoctorByPhone(ctx, phone)
}

func (s *service) GetPatient(ctx context.Context, phone string) (*Patient, error) {
	return s.repo.GetPatientByPhone(ctx, phone)
}

func (s *service) FindDoctors(ctx context.Context, specialization, location string) ([]Doctor, error) {
	return s.repo.FindDoctors(ctx, specialization, location)
}
