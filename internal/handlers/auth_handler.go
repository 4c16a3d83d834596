package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/config"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger

	// emailDomainOK checks that the address domain accepts mail.
	emailDomainOK func(ctx context.Context, email string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		log:           log,
		emailDomainOK: func(ctx context.Context, email string) bool {
			return validators.EmailDomainAccepts(ctx, net.DefaultResolver, email)
		},
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"omitempty,oneof=patient doctor"`
	DateOfBirth string `json:"date_of_birth"`

	// doctor profile
	Specialization  string  `json:"specialization"`
	Qualifications  string  `json:"qualifications"`
	Biography       string  `json:"biography"`
	ConsultationFee float64 `json:"consultation_fee" binding:"gte=0"`

	// patient profile
	Gender    string `json:"gender"`
	BloodType string `json:"blood_type"`
	Allergies string `json:"allergies"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.emailDomainOK(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RolePatient
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		d, err := domain.ParseDate(req.DateOfBirth)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		dob = &d
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := models.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
		DateOfBirth:  dob,
	}

	var profileID uuid.UUID
	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if role == models.RoleDoctor {
			doctor := models.Doctor{
				UserID:          user.ID,
				Specialization:  req.Specialization,
				Qualifications:  req.Qualifications,
				Biography:       req.Biography,
				ConsultationFee: req.ConsultationFee,
			}
			if err := tx.Omit("User").Create(&doctor).Error; err != nil {
				return err
			}
			profileID = doctor.ID
			return nil
		}

		patient := models.Patient{
			UserID:    user.ID,
			Gender:    req.Gender,
			BloodType: req.BloodType,
			Allergies: req.Allergies,
		}
		if err := tx.Omit("User").Create(&patient).Error; err != nil {
			return err
		}
		profileID = patient.ID
		return nil
	})
	if httperr.IsUniqueViolation(err) {
		httperr.Write(c, http.StatusConflict, "email_already_exists", "An account with this email already exists.")
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, &user, time.Now())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":       user,
		"profile_id": profileID,
		"token":      token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, &user, time.Now())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}
