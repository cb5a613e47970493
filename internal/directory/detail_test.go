// Copyright (c) 2026 Residents Book. All rights reserved.

package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abhay4510/residents-book/internal/directory"
	"github.com/Abhay4510/residents-book/internal/directory/mocks"
	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/resident"
)

func TestDetail_OpenLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)

	want := &resident.Resident{ID: "r01", FirstName: "Ada", LastName: "Lovelace"}
	api.EXPECT().Get(gomock.Any(), "r01").Return(want, nil)

	detail := directory.NewDetail(api)
	assert.Equal(t, directory.DetailIdle, detail.State())

	got, err := detail.Open(context.Background(), "r01")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, directory.DetailLoaded, detail.State())
	assert.Equal(t, want, detail.Resident())

	detail.Close()
	assert.Equal(t, directory.DetailIdle, detail.State())
	assert.Nil(t, detail.Resident())
}

func TestDetail_MissingIDLeavesStoreUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(listOf(sampleResidents(3)), nil)
	api.EXPECT().Get(gomock.Any(), "missing").Return(nil, apperr.NotFound("Resident"))
	api.EXPECT().Get(gomock.Any(), "r02").Return(&sampleResidents(3)[1], nil)

	store := directory.NewStore(api, directory.WithLogger(discardLogger()))
	require.NoError(t, store.Load(context.Background()))
	before := store.Snapshot().Residents

	detail := directory.NewDetail(api)
	_, err := detail.Open(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, directory.DetailFailed, detail.State())
	assert.Equal(t, err, detail.Err())
	assert.Equal(t, before, store.Snapshot().Residents)

	// The list stays usable after a failed lookup.
	got, err := detail.Open(context.Background(), "r02")
	require.NoError(t, err)
	assert.Equal(t, "r02", got.ID)
	assert.NoError(t, detail.Err())
}

func TestDetail_BlankIDFailsWithoutRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	detail := directory.NewDetail(mocks.NewMockAPI(ctrl))

	_, err := detail.Open(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, directory.DetailFailed, detail.State())
}

func TestDetail_EveryOpenFetchesAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().Get(gomock.Any(), "r01").Return(&resident.Resident{ID: "r01"}, nil).Times(2)

	detail := directory.NewDetail(api)
	for range 2 {
		_, err := detail.Open(context.Background(), "r01")
		require.NoError(t, err)
		detail.Close()
	}
}

func TestDetailState_String(t *testing.T) {
	assert.Equal(t, "idle", directory.DetailIdle.String())
	assert.Equal(t, "loading", directory.DetailLoading.String())
	assert.Equal(t, "loaded", directory.DetailLoaded.String())
	assert.Equal(t, "failed", directory.DetailFailed.String())
	assert.Equal(t, "unknown", directory.DetailState(42).String())
}
