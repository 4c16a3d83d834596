package doctor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/infra/repository/memory"
)

type memoryStore struct {
	objects map[string][]byte
	err     error
}

func (s *memoryStore) Put(_ context.Context, key string, body []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = body
	return "https://cdn.example.com/" + key, nil
}

func TestReplaceAvailabilities_ValidatesAndNormalizes(t *testing.T) {
	repo := memory.NewAppointmentRepository()
	d := repo.AddDoctor("Gregory", "House")
	repo.AddWindow(d.ID, "sunday", "08:00", "09:00")

	rows, err := NewReplaceAvailabilities(repo, nil).Execute(context.Background(), d.ID, []WindowInput{
		{Day: "Monday", StartTime: "9:00", EndTime: "12:00:00"},
		{Day: "friday", StartTime: "14:00", EndTime: "24:00"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "monday", rows[0].Day)
	assert.Equal(t, "09:00", rows[0].StartTime)
	assert.Equal(t, "12:00", rows[0].EndTime)

	stored, err := NewListAvailabilities(repo).Execute(context.Background(), d.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "friday", stored[1].Day)
}

func TestReplaceAvailabilities_Rejections(t *testing.T) {
	repo := memory.NewAppointmentRepository()
	d := repo.AddDoctor("Gregory", "House")
	uc := NewReplaceAvailabilities(repo, nil)

	_, err := uc.Execute(context.Background(), d.ID, []WindowInput{{Day: "monday", StartTime: "12:00", EndTime: "09:00"}}, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_window"))

	_, err = uc.Execute(context.Background(), d.ID, []WindowInput{{Day: "mon", StartTime: "09:00", EndTime: "12:00"}}, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_day"))

	_, err = uc.Execute(context.Background(), uuid.New(), nil, nil)
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))
}

func TestUploadAvatar_StoresWebPAndSavesURL(t *testing.T) {
	repo := memory.NewAppointmentRepository()
	d := repo.AddDoctor("Gregory", "House")
	store := &memoryStore{}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 64))))

	url, err := NewUploadAvatar(repo, store, nil).Execute(context.Background(), d.ID, &buf, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/avatars/doctors/"+d.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(url, ".webp"))
	assert.Len(t, store.objects, 1)

	saved, err := repo.GetDoctor(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, url, saved.AvatarURL)
}

func TestUploadAvatar_Rejections(t *testing.T) {
	repo := memory.NewAppointmentRepository()
	d := repo.AddDoctor("Gregory", "House")

	_, err := NewUploadAvatar(repo, &memoryStore{}, nil).Execute(context.Background(), d.ID, strings.NewReader("text"), nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	_, err = NewUploadAvatar(repo, nil, nil).Execute(context.Background(), d.ID, strings.NewReader("text"), nil)
	assert.True(t, httperr.IsBusiness(err, "storage_disabled"))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	_, err = NewUploadAvatar(repo, &memoryStore{err: errors.New("bucket missing")}, nil).Execute(context.Background(), d.ID, &buf, nil)
	require.Error(t, err)
	_, isBusiness := httperr.As(err)
	assert.False(t, isBusiness)
}
