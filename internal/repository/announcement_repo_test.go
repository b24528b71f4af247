package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

func TestAnnouncementRepositoryAudienceFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	rows := []models.Announcement{
		{Title: "Sports day", Message: "Friday.", Audience: models.AudienceAll},
		{Title: "Staff meeting", Message: "Monday.", Audience: "teachers"},
		{Title: "PTA notice", Message: "Tuesday.", Audience: "parents"},
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}

	items, err := repo.List(ctx, AnnouncementFilter{Audience: "teachers"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Staff meeting", items[0].Title)

	items, err = repo.List(ctx, AnnouncementFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3, "empty audience means unfiltered")
}

func TestAnnouncementRepositoryTenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	one := models.Announcement{Title: "North campus", Message: "x", Audience: models.AudienceAll, CampusID: campusRef(1)}
	two := models.Announcement{Title: "South campus", Message: "x", Audience: models.AudienceAll, CampusID: campusRef(2)}
	require.NoError(t, repo.Create(ctx, &one))
	require.NoError(t, repo.Create(ctx, &two))

	items, err := repo.List(ctx, AnnouncementFilter{CampusID: campusRef(1)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "North campus", items[0].Title)
}

func TestAnnouncementRepositoryNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		item := models.Announcement{Title: title, Message: "x", Audience: models.AudienceAll}
		require.NoError(t, repo.Create(ctx, &item))
	}

	items, err := repo.List(ctx, AnnouncementFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "third", items[0].Title)
	require.Equal(t, "first", items[2].Title)
}

func TestAnnouncementRepositorySaveRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	item := models.Announcement{Title: "Draft", Message: "x", Audience: models.AudienceAll}
	require.NoError(t, repo.Create(ctx, &item))

	item.Title = "Final"
	require.NoError(t, repo.Save(ctx, &item))

	stored, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, "Final", stored.Title)
}
