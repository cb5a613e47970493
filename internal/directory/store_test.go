// Copyright (c) 2026 Residents Book. All rights reserved.

package directory_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abhay4510/residents-book/internal/directory"
	"github.com/Abhay4510/residents-book/internal/directory/mocks"
	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/resident"
	"github.com/Abhay4510/residents-book/pkg/pagination"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleResidents(n int) []resident.Resident {
	out := make([]resident.Resident, n)
	for i := range out {
		out[i] = resident.Resident{
			ID:        fmt.Sprintf("r%02d", i+1),
			FirstName: fmt.Sprintf("First%d", i+1),
			LastName:  "Resident",
			Title:     "Member",
		}
	}
	return out
}

func listOf(residents []resident.Resident) *resident.ListResult {
	return &resident.ListResult{
		Residents:  residents,
		Pagination: pagination.NewMeta(1, directory.DefaultFetchLimit, len(residents)),
	}
}

func TestStore_StartsLoading(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := directory.NewStore(mocks.NewMockAPI(ctrl))

	snap := store.Snapshot()
	assert.True(t, snap.IsLoading)
	assert.False(t, snap.Loaded)
	assert.Empty(t, snap.Residents)
}

func TestStore_Load_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().List(gomock.Any(), 1, 500).Return(listOf(sampleResidents(3)), nil)

	store := directory.NewStore(api, directory.WithFetchLimit(500), directory.WithLogger(discardLogger()))
	require.NoError(t, store.Load(context.Background()))

	snap := store.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.True(t, snap.Loaded)
	assert.NoError(t, snap.LoadErr)
	assert.Equal(t, sampleResidents(3), snap.Residents)
}

func TestStore_Load_FailureLeavesEmptyAndRecordsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().List(gomock.Any(), 1, directory.DefaultFetchLimit).Return(nil, apperr.Network(io.EOF))

	store := directory.NewStore(api, directory.WithLogger(discardLogger()))
	err := store.Load(context.Background())
	require.Error(t, err)

	snap := store.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.False(t, snap.Loaded)
	assert.Empty(t, snap.Residents)
	assert.True(t, apperr.HasCode(snap.LoadErr, apperr.CodeNetwork))
}

func TestStore_Reload_RecoversAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	gomock.InOrder(
		api.EXPECT().List(gomock.Any(), 1, directory.DefaultFetchLimit).Return(nil, apperr.Server(500)),
		api.EXPECT().List(gomock.Any(), 1, directory.DefaultFetchLimit).Return(listOf(sampleResidents(2)), nil),
	)

	store := directory.NewStore(api, directory.WithLogger(discardLogger()))
	require.Error(t, store.Load(context.Background()))
	require.NoError(t, store.Reload(context.Background()))

	snap := store.Snapshot()
	assert.NoError(t, snap.LoadErr)
	assert.Len(t, snap.Residents, 2)
}

func TestStore_Prepend(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(listOf(sampleResidents(25)), nil)

	store := directory.NewStore(api, directory.WithLogger(discardLogger()))
	require.NoError(t, store.Load(context.Background()))
	before := store.Snapshot().Residents

	created := resident.Resident{ID: "new", FirstName: "Ada", LastName: "Lovelace", Title: "Analyst"}
	assert.True(t, store.Prepend(created))

	after := store.Snapshot().Residents
	require.Len(t, after, len(before)+1)
	assert.Equal(t, created, after[0])
	assert.Equal(t, before, after[1:])

	// Same id again is refused.
	assert.False(t, store.Prepend(created))
	assert.Equal(t, 26, store.Len())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(listOf(sampleResidents(1)), nil)

	store := directory.NewStore(api, directory.WithLogger(discardLogger()))
	require.NoError(t, store.Load(context.Background()))

	snap := store.Snapshot()
	snap.Residents[0].FirstName = "Mutated"

	assert.Equal(t, "First1", store.Snapshot().Residents[0].FirstName)
}

func TestStore_ConcurrentLoadsShareOneRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, int, int) (*resident.ListResult, error) {
			close(started)
			<-release
			return listOf(sampleResidents(4)), nil
		}).
		Times(1)

	store := directory.NewStore(api, directory.WithLogger(discardLogger()))

	var wg sync.WaitGroup
	errs := make([]error, 3)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = store.Load(context.Background())
	}()
	<-started

	for i := 1; i < len(errs); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Reload(context.Background())
		}(i)
	}

	// Give the followers time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 4, store.Len())
}

func TestStore_CreationDuringLoadSurvivesStaleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, int, int) (*resident.ListResult, error) {
			close(started)
			<-release
			return listOf(sampleResidents(2)), nil
		})

	store := directory.NewStore(api, directory.WithLogger(discardLogger()))

	done := make(chan error, 1)
	go func() { done <- store.Load(context.Background()) }()
	<-started

	created := resident.Resident{ID: "fresh", FirstName: "Grace"}
	require.True(t, store.Prepend(created))

	close(release)
	require.NoError(t, <-done)

	snap := store.Snapshot()
	require.Len(t, snap.Residents, 3)
	assert.Equal(t, "fresh", snap.Residents[0].ID)
}
