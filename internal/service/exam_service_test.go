package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
)

type stubExamRepo struct {
	items  map[uint]models.Exam
	nextID uint
}

func newStubExamRepo() *stubExamRepo {
	return &stubExamRepo{items: map[uint]models.Exam{}, nextID: 1}
}

func (s *stubExamRepo) List(ctx context.Context, filter repository.ExamFilter) ([]models.Exam, error) {
	out := make([]models.Exam, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *stubExamRepo) GetByID(ctx context.Context, id uint) (models.Exam, error) {
	item, ok := s.items[id]
	if !ok {
		return models.Exam{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubExamRepo) Create(ctx context.Context, item *models.Exam) error {
	item.ID = s.nextID
	s.nextID++
	s.items[item.ID] = *item
	return nil
}

func (s *stubExamRepo) Save(ctx context.Context, item *models.Exam) error {
	s.items[item.ID] = *item
	return nil
}

func (s *stubExamRepo) Delete(ctx context.Context, id uint) error {
	delete(s.items, id)
	return nil
}

func newTestExamService(repo repository.ExamRepository) ExamService {
	return NewExamService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func TestExamCreateDefaultsStatus(t *testing.T) {
	svc := newTestExamService(newStubExamRepo())

	got, err := svc.Create(context.Background(), dto.ExamCreateRequest{
		Title: "Midterm Mathematics",
	}, campusRef(1))
	require.NoError(t, err)
	require.Equal(t, models.ExamStatusPlanned, got.Status)
	require.Nil(t, got.ExamDate)
}

func TestExamCreateValidation(t *testing.T) {
	svc := newTestExamService(newStubExamRepo())

	_, err := svc.Create(context.Background(), dto.ExamCreateRequest{}, nil)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestExamUpdatePartial(t *testing.T) {
	repo := newStubExamRepo()
	svc := newTestExamService(repo)
	ctx := context.Background()

	examDate := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, dto.ExamCreateRequest{
		Title:    "Midterm Mathematics",
		ExamDate: &examDate,
		Class:    "10",
		Section:  "B",
	}, nil)
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, dto.ExamUpdateRequest{
		Subject: dto.NewOptional("Mathematics"),
	})
	require.NoError(t, err)
	require.Equal(t, "Mathematics", got.Subject)
	require.Equal(t, "Midterm Mathematics", got.Title, "absent fields stay untouched")
	require.NotNil(t, got.ExamDate)
	require.True(t, got.ExamDate.Equal(examDate))
}

func TestExamUpdateNullClearsDatesAndInvigilator(t *testing.T) {
	repo := newStubExamRepo()
	svc := newTestExamService(repo)
	ctx := context.Background()

	examDate := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	invigilator := uint(5)
	created, err := svc.Create(ctx, dto.ExamCreateRequest{
		Title:         "Finals Physics",
		ExamDate:      &examDate,
		InvigilatorID: &invigilator,
	}, nil)
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, dto.ExamUpdateRequest{
		ExamDate:      dto.Optional[time.Time]{Set: true},
		InvigilatorID: dto.Optional[uint]{Set: true},
	})
	require.NoError(t, err)
	require.Nil(t, got.ExamDate, "explicit null clears the date")
	require.Nil(t, got.InvigilatorID, "explicit null unassigns the invigilator")
}

func TestExamUpdateReassignsInvigilator(t *testing.T) {
	repo := newStubExamRepo()
	svc := newTestExamService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.ExamCreateRequest{Title: "Finals Physics"}, nil)
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, dto.ExamUpdateRequest{
		InvigilatorID: dto.NewOptional(uint(9)),
	})
	require.NoError(t, err)
	require.NotNil(t, got.InvigilatorID)
	require.Equal(t, uint(9), *got.InvigilatorID)
}

func TestExamUpdateMissing(t *testing.T) {
	svc := newTestExamService(newStubExamRepo())

	_, err := svc.Update(context.Background(), 77, dto.ExamUpdateRequest{
		Title: dto.NewOptional("anything"),
	})
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestExamDeleteIdempotent(t *testing.T) {
	svc := newTestExamService(newStubExamRepo())

	require.NoError(t, svc.Delete(context.Background(), 77))
}
