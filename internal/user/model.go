package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Doctor is a directory profile. Latitude/Longitude are nil until the owner
// shares a location.
type Doctor struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	PhoneNumber     string    `json:"phonenumber" db:"phonenumber"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Specialization  string    `json:"specialization" db:"specialization"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	Bio             string    `json:"bio" db:"bio"`
	LocationName    string    `json:"location_name" db:"location_name"`
	Latitude        *float64  `json:"latitude" db:"latitude"`
	Longitude       *float64  `json:"longitude" db:"longitude"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type Patient struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	PhoneNumber    string    `json:"phonenumber" db:"phonenumber"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	MedicalHistory string    `json:"medical_history" db:"medical_history"`
	Age            int       `json:"age" db:"age"`
	Height         float64   `json:"height" db:"height"`
	Weight         int       `json:"weight" db:"weight"`
	Gender         string    `json:"gender" db:"gender"`
	BloodGroup     string    `json:"bloodgroup" db:"bloodgroup"`
	Bio            string    `json:"bio" db:"bio"`
	LocationName   string    `json:"location_name" db:"location_name"`
	Latitude       *float64  `json:"latitude" db:"latitude"`
	Longitude      *float64  `json:"longitude" db:"longitude"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
