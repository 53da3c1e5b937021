package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"medassist/internal/auth"
)

type Handler struct {
	svc    Service
	tokens *auth.TokenManager
}

func NewHandler(svc Service, tokens *auth.TokenManager) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

type authResponse struct {
	PhoneNumber string `json:"phonenumber"`
	Token       string `json:"token"`
}

func (h *Handler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, RoleDoctor)
}

func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, RolePatient)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, role Role) {
	var in RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.PhoneNumber == "" || in.Password == "" {
		respondError(w, http.StatusBadRequest, "phonenumber and password are required")
		return
	}

	var err error
	if role == RoleDoctor {
		_, err = h.svc.RegisterDoctor(r.Context(), in)
	} else {
		_, err = h.svc.RegisterPatient(r.Context(), in)
	}
	if err != nil {
		if errors.Is(err, ErrDuplicatePhone) {
			respondError(w, http.StatusBadRequest, "phone number already registered")
			return
		}
		log.WithError(err).Error("registration failed")
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	token, err := h.tokens.Issue(in.PhoneNumber, string(role))
	if err != nil {
		log.WithError(err).Error("token issuance failed")
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{PhoneNumber: in.PhoneNumber, Token: token})
}

type loginRequest struct {
	PhoneNumber string `json:"phonenumber"`
	Password    string `json:"password"`
}

func (h *Handler) LoginDoctor(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, RoleDoctor)
}

func (h *Handler) LoginPatient(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, RolePatient)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, role Role) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PhoneNumber == "" {
		respondError(w, http.StatusBadRequest, "phonenumber is required")
		return
	}

	var err error
	if role == RoleDoctor {
		_, err = h.svc.LoginDoctor(r.Context(), req.PhoneNumber, req.Password)
	} else {
		_, err = h.svc.LoginPatient(r.Context(), req.PhoneNumber, req.Password)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respondError(w, http.StatusBadRequest, "invalid phonenumber")
		case errors.Is(err, ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid password")
		default:
			log.WithError(err).Error("login failed")
			respondError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	token, err := h.tokens.Issue(req.PhoneNumber, string(role))
	if err != nil {
		log.WithError(err).Error("token issuance failed")
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, authResponse{PhoneNumber: req.PhoneNumber, Token: token})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.UpdateProfile(r.Context(), Role(claims.Role), claims.PhoneNumber, update)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respondError(w, http.StatusNotFound, "profile not found")
		case errors.Is(err, ErrInvalidCoordinates):
			respondError(w, http.StatusBadRequest, "invalid latitude or longitude")
		case errors.Is(err, ErrGeocodeFailed):
			respondError(w, http.StatusBadRequest, "unable to get location from coordinates")
		default:
			log.WithError(err).Error("profile update failed")
			respondError(w, http.StatusInternalServerError, "profile update failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "profile updated successfully"})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var profile any
	var err error
	switch Role(claims.Role) {
	case RoleDoctor:
		profile, err = h.svc.GetDoctor(r.Context(), claims.PhoneNumber)
	case RolePatient:
		profile, err = h.svc.GetPatient(r.Context(), claims.PhoneNumber)
	default:
		respondError(w, http.StatusBadRequest, "invalid role")
		return
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		log.WithError(err).Error("profile lookup failed")
		respondError(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (h *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	specialization := r.URL.Query().Get("specialization")
	location := r.URL.Query().Get("location")

	doctors, err := h.svc.FindDoctors(r.Context(), specialization, location)
	if err != nil {
		log.WithError(err).Error("doctor lookup failed")
		respondError(w, http.StatusInternalServerError, "doctor lookup failed")
		return
	}
	if doctors == nil {
		doctors = []Doctor{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"doctors": doctors})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/doctor/register", h.RegisterDoctor)
	r.Post("/patient/register", h.RegisterPatient)
	r.Post("/doctor/login", h.LoginDoctor)
	r.Post("/patient/login", h.LoginPatient)
	r.Get("/doctors", h.GetDoctors)

	r.Group(func(r chi.Router) {
		r.Use(h.tokens.Middleware)
		r.Put("/profile", h.UpdateProfile)
		r.Get("/me", h.GetMe)
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
