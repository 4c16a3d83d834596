package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/imaging"
)

// UploadAvatar re-encodes the image as WebP, stores it and records the URL
// on the doctor.
type UploadAvatar struct {
	repo  domain.Repository
	store domain.ObjectStore
	audit *audit.Dispatcher
}

func NewUploadAvatar(
	repo domain.Repository,
	store domain.ObjectStore,
	audit *audit.Dispatcher,
) *UploadAvatar {
	return &UploadAvatar{repo: repo, store: store, audit: audit}
}

func (uc *UploadAvatar) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
	image io.Reader,
	actorID *uuid.UUID,
) (string, error) {

	if uc.store == nil {
		return "", httperr.ErrBusiness("storage_disabled")
	}

	if _, err := findDoctor(ctx, uc.repo, doctorID); err != nil {
		return "", err
	}

	body, err := imaging.Avatar(image, imaging.AvatarSide)
	if errors.Is(err, imaging.ErrUnsupported) {
		return "", httperr.ErrValidation("invalid_image")
	}
	if err != nil {
		return "", err
	}

	// a fresh key per upload so caches never serve the old picture
	key := fmt.Sprintf("avatars/doctors/%s/%s.webp", doctorID, uuid.NewString())

	url, err := uc.store.Put(ctx, key, body, imaging.ContentType)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	if err := uc.repo.SetAvatarURL(ctx, doctorID, url); err != nil {
		return "", fmt.Errorf("save avatar url: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "avatar_updated",
		Entity:   "doctor",
		EntityID: doctorID.String(),
	})

	return url, nil
}
