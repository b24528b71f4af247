package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
)

type stubAnnouncementRepo struct {
	items  map[uint]models.Announcement
	nextID uint
}

func newStubAnnouncementRepo() *stubAnnouncementRepo {
	return &stubAnnouncementRepo{items: map[uint]models.Announcement{}, nextID: 1}
}

func (s *stubAnnouncementRepo) List(ctx context.Context, filter repository.AnnouncementFilter) ([]models.Announcement, error) {
	out := make([]models.Announcement, 0, len(s.items))
	for _, item := range s.items {
		if filter.Audience != "" && item.Audience != filter.Audience {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *stubAnnouncementRepo) GetByID(ctx context.Context, id uint) (models.Announcement, error) {
	item, ok := s.items[id]
	if !ok {
		return models.Announcement{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubAnnouncementRepo) Create(ctx context.Context, item *models.Announcement) error {
	item.ID = s.nextID
	s.nextID++
	s.items[item.ID] = *item
	return nil
}

func (s *stubAnnouncementRepo) Save(ctx context.Context, item *models.Announcement) error {
	s.items[item.ID] = *item
	return nil
}

func (s *stubAnnouncementRepo) Delete(ctx context.Context, id uint) error {
	delete(s.items, id)
	return nil
}

func newTestAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return NewAnnouncementService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func TestAnnouncementCreateDefaultsAudience(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	got, err := svc.Create(context.Background(), dto.AnnouncementCreateRequest{
		Title:   "Sports day",
		Message: "Friday on the main field.",
	}, 3, campusRef(1))
	require.NoError(t, err)
	require.Equal(t, models.AudienceAll, got.Audience)
	require.Equal(t, uint(3), got.CreatedBy)
}

func TestAnnouncementCreateSanitizesMessage(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	got, err := svc.Create(context.Background(), dto.AnnouncementCreateRequest{
		Title:   "Notice",
		Message: `<p>Hello</p><script>alert(1)</script>`,
	}, 1, nil)
	require.NoError(t, err)
	require.Contains(t, got.Message, "<p>Hello</p>")
	require.NotContains(t, got.Message, "script")
}

func TestAnnouncementCreateValidation(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	_, err := svc.Create(context.Background(), dto.AnnouncementCreateRequest{Message: "no title"}, 1, nil)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestAnnouncementUpdatePartial(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newTestAnnouncementService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.AnnouncementCreateRequest{
		Title:    "Old title",
		Message:  "Body",
		Audience: "teachers",
	}, 1, nil)
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, dto.AnnouncementUpdateRequest{
		Title: dto.NewOptional("New title"),
	})
	require.NoError(t, err)
	require.Equal(t, "New title", got.Title)
	require.Equal(t, "Body", got.Message, "absent fields stay untouched")
	require.Equal(t, "teachers", got.Audience)
}

func TestAnnouncementUpdateNullAudienceResetsDefault(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newTestAnnouncementService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.AnnouncementCreateRequest{
		Title:    "Notice",
		Message:  "Body",
		Audience: "teachers",
	}, 1, nil)
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, dto.AnnouncementUpdateRequest{
		Audience: dto.Optional[string]{Set: true},
	})
	require.NoError(t, err)
	require.Equal(t, models.AudienceAll, got.Audience)
}

func TestAnnouncementUpdateMissing(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	_, err := svc.Update(context.Background(), 42, dto.AnnouncementUpdateRequest{
		Title: dto.NewOptional("anything"),
	})
	require.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestAnnouncementGetMissing(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestAnnouncementDeleteIdempotent(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	require.NoError(t, svc.Delete(context.Background(), 42))
}
