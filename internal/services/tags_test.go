package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockTagRepository(ctrl)
	svc := services.NewTagService(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		repoErr error
		wantErr error
	}{
		{name: "normalizes name", input: "  GoLang "},
		{name: "empty name", input: "   ", wantErr: services.ErrInvalidInput},
		{name: "duplicate", input: "golang", repoErr: services.ErrAlreadyExists, wantErr: services.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr != services.ErrInvalidInput {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, tag *models.Tag) error {
						assert.Equal(t, "golang", tag.Name)
						assert.NotEqual(t, uuid.Nil, tag.ID)
						return tt.repoErr
					})
			}

			tag, err := svc.Create(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "golang", tag.Name)
		})
	}
}

func TestTagService_ReadAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockTagRepository(ctrl)
	svc := services.NewTagService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.EXPECT().List(gomock.Any()).Return([]models.Tag{{ID: id, Name: "go"}}, nil)
	tags, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, services.ErrNotFound)
	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, services.ErrNotFound)

	repo.EXPECT().Delete(gomock.Any(), id).Return(errors.New("db down"))
	assert.EqualError(t, svc.Delete(ctx, id), "db down")
}
