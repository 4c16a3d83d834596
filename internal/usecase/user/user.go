package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// ======================================================
// LIST
// ======================================================

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

// Execute lists users, optionally only those holding role.
func (uc *ListUsers) Execute(ctx context.Context, role string) ([]models.User, error) {
	switch role {
	case "", models.RolePatient, models.RoleDoctor, models.RoleAdmin:
	default:
		return nil, httperr.ErrValidation("invalid_role")
	}

	users, err := uc.repo.ListUsers(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ======================================================
// PROFILE
// ======================================================

type GetProfile struct {
	repo domain.Repository
}

func NewGetProfile(repo domain.Repository) *GetProfile {
	return &GetProfile{repo: repo}
}

func (uc *GetProfile) Execute(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := uc.repo.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// ======================================================
// DELETE
// ======================================================

// DeleteUser removes a user and everything hanging off its profile.
type DeleteUser struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteUser(repo domain.Repository, audit *audit.Dispatcher) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit}
}

func (uc *DeleteUser) Execute(ctx context.Context, userID uuid.UUID, actorID *uuid.UUID) error {
	if actorID != nil && *actorID == userID {
		return httperr.ErrBusiness("cannot_delete_self")
	}

	err := uc.repo.DeleteUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("user")
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: userID.String(),
	})
	return nil
}
