package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

func fieldNames(err error) []string {
	var names []string
	for _, fe := range apperror.GetAppError(err).Errors {
		names = append(names, fe.Field)
	}
	return names
}

func TestSettingService(t *testing.T) {
	repo := &fakeSettingRepo{}
	svc := NewSettingService(repo, "Zay Dry Cleaners")
	ctx := context.Background()

	t.Run("first read creates the defaults once", func(t *testing.T) {
		first, err := svc.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Zay Dry Cleaners", first.AppName)
		assert.Equal(t, entity.DefaultAppColor, first.Color)
		assert.Nil(t, first.Logo)

		second, err := svc.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("invalid fields are reported together", func(t *testing.T) {
		logo := "not a url"
		_, err := svc.SaveSettings(ctx, &SettingInput{AppName: "  ", Color: "blue", Logo: &logo})
		require.True(t, apperror.IsValidation(err))
		assert.ElementsMatch(t, []string{"app_name", "color", "logo"}, fieldNames(err))
		assert.Equal(t, "Zay Dry Cleaners", repo.setting.AppName)
	})

	t.Run("save overwrites the row", func(t *testing.T) {
		logo := " https://cdn.example.com/logo.png "
		blank := "  "
		saved, err := svc.SaveSettings(ctx, &SettingInput{
			AppName: " Zay Laundry ", Description: "Since 1998", Color: "#1E40AF", Logo: &logo, Favicon: &blank,
		})
		require.NoError(t, err)
		assert.Equal(t, "Zay Laundry", saved.AppName)
		assert.Equal(t, "#1e40af", saved.Color)
		require.NotNil(t, saved.Logo)
		assert.Equal(t, "https://cdn.example.com/logo.png", *saved.Logo)
		assert.Nil(t, saved.Favicon)

		reread, err := svc.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Zay Laundry", reread.AppName)
		assert.Equal(t, 1, repo.creates)
	})
}

func coord(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestLocationService(t *testing.T) {
	svc := NewLocationService(newFakeLocationRepo())
	ctx := context.Background()

	t.Run("coordinates are required and range checked", func(t *testing.T) {
		_, err := svc.CreateLocation(ctx, &LocationInput{Name: "Gulberg"})
		require.True(t, apperror.IsValidation(err))
		assert.ElementsMatch(t, []string{"latitude", "longitude"}, fieldNames(err))

		_, err = svc.CreateLocation(ctx, &LocationInput{Name: "Gulberg", Latitude: coord("90.5"), Longitude: coord("-180.01")})
		require.True(t, apperror.IsValidation(err))
		errs := apperror.GetAppError(err).Errors
		require.Len(t, errs, 2)
		assert.Equal(t, "The latitude field must be between -90 and 90.", errs[0].Message)
		assert.Equal(t, "The longitude field must be between -180 and 180.", errs[1].Message)
	})

	t.Run("boundaries are accepted", func(t *testing.T) {
		loc, err := svc.CreateLocation(ctx, &LocationInput{Name: " Pole ", Latitude: coord("-90"), Longitude: coord("180")})
		require.NoError(t, err)
		assert.Equal(t, "Pole", loc.Name)
		require.NoError(t, svc.DeleteLocation(ctx, loc.ID))
	})

	t.Run("crud", func(t *testing.T) {
		loc, err := svc.CreateLocation(ctx, &LocationInput{Name: "Johar Town", Latitude: coord("31.4697"), Longitude: coord("74.2728")})
		require.NoError(t, err)

		updated, err := svc.UpdateLocation(ctx, loc.ID, &LocationInput{Name: "Johar Town Block G", Latitude: coord("31.4700"), Longitude: coord("74.2730")})
		require.NoError(t, err)
		assert.Equal(t, "Johar Town Block G", updated.Name)
		assert.Equal(t, "31.47", updated.Latitude.String())

		list, err := svc.ListLocations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, loc.ID, list[0].ID)

		require.NoError(t, svc.DeleteLocation(ctx, loc.ID))
		_, err = svc.GetLocation(ctx, loc.ID)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}
