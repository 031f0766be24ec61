package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/yayayum/internal/cache"
	"github.com/magabrotheeeer/yayayum/internal/config"
	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
	"github.com/magabrotheeeer/yayayum/internal/models"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func TestStore_Defaults(t *testing.T) {
	s := New(sl.NewDiscardLogger())

	snap := s.Snapshot()
	assert.Nil(t, snap.SelectedUser)
	assert.Equal(t, ScreenUserSelection, snap.Screen)
	assert.Equal(t, PageMain, snap.Page)
}

func TestStore_LocalPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	log := sl.NewDiscardLogger()

	s := New(log, WithPersistence(cache.NewLocal(path)))
	s.SelectUser(&models.User{ID: 7, Username: "ada"})

	fresh := New(log, WithPersistence(cache.NewLocal(path)))
	require.NotNil(t, fresh.Snapshot().SelectedUser)
	assert.Equal(t, models.User{ID: 7, Username: "ada"}, *fresh.Snapshot().SelectedUser)

	fresh.SelectUser(nil)

	var u models.User
	found, err := cache.NewLocal(path).Get(SelectedUserKey, &u)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, New(log, WithPersistence(cache.NewLocal(path))).Snapshot().SelectedUser)
}

func TestStore_RedisPersistence(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rc, err := cache.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
		KeyPrefix:    "yayayum:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	s := New(sl.NewDiscardLogger(), WithPersistence(rc), WithTTL(time.Hour))
	s.SelectUser(&models.User{ID: 3, Username: "bo"})

	assert.True(t, mr.Exists("yayayum:"+SelectedUserKey))
	assert.Equal(t, time.Hour, mr.TTL("yayayum:"+SelectedUserKey))

	fresh := New(sl.NewDiscardLogger(), WithPersistence(rc))
	require.NotNil(t, fresh.Snapshot().SelectedUser)
	assert.Equal(t, "bo", fresh.Snapshot().SelectedUser.Username)

	fresh.SelectUser(nil)
	assert.False(t, mr.Exists("yayayum:"+SelectedUserKey))
}

func TestStore_CorruptPersistedData(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "broken json", content: `{"selectedUser": {`},
		{name: "wrong type", content: `{"selectedUser": "ada"}`},
		{name: "zero id", content: `{"selectedUser": {"id": 0, "username": "ada"}}`},
		{name: "empty username", content: `{"selectedUser": {"id": 1, "username": ""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			var s *Store
			require.NotPanics(t, func() {
				s = New(sl.NewDiscardLogger(), WithPersistence(cache.NewLocal(path)))
			})
			assert.Nil(t, s.Snapshot().SelectedUser)

			s.SelectUser(nil)
			var stale models.User
			found, err := cache.NewLocal(path).Get(SelectedUserKey, &stale)
			require.NoError(t, err)
			assert.False(t, found)

			s.SelectUser(&models.User{ID: 2, Username: "cy"})
			fresh := New(sl.NewDiscardLogger(), WithPersistence(cache.NewLocal(path)))
			require.NotNil(t, fresh.Snapshot().SelectedUser)
			assert.Equal(t, uint64(2), fresh.Snapshot().SelectedUser.ID)
		})
	}
}

func TestStore_StorageErrorsAreSwallowed(t *testing.T) {
	mc := new(MockCache)
	storageErr := errors.New("quota exceeded")
	mc.On("Get", SelectedUserKey, mock.Anything).Return(false, storageErr)
	mc.On("Set", SelectedUserKey, mock.Anything, time.Duration(0)).Return(storageErr)
	mc.On("Invalidate", SelectedUserKey).Return(storageErr)

	s := New(sl.NewDiscardLogger(), WithPersistence(mc))
	assert.Nil(t, s.Snapshot().SelectedUser)

	u := &models.User{ID: 1, Username: "ada"}
	require.NotPanics(t, func() { s.SelectUser(u) })
	assert.Equal(t, *u, *s.Snapshot().SelectedUser)

	require.NotPanics(t, func() { s.SelectUser(nil) })
	assert.Nil(t, s.Snapshot().SelectedUser)

	mc.AssertExpectations(t)
}

func TestStore_PersistsOnlyOnUserChange(t *testing.T) {
	mc := new(MockCache)
	mc.On("Get", SelectedUserKey, mock.Anything).Return(false, nil)
	mc.On("Set", SelectedUserKey, mock.Anything, time.Duration(0)).Return(nil).Once()

	s := New(sl.NewDiscardLogger(), WithPersistence(mc))
	s.SelectUser(&models.User{ID: 1, Username: "ada"})
	require.NoError(t, s.SetScreen(ScreenLeaderboard))
	require.NoError(t, s.SetPage(PageManage))
	s.SelectUser(&models.User{ID: 1, Username: "ada"})

	mc.AssertExpectations(t)
	mc.AssertNumberOfCalls(t, "Set", 1)
}

func TestStore_ClearRemovesRecordWrittenElsewhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	log := sl.NewDiscardLogger()

	s := New(log, WithPersistence(cache.NewLocal(path)))
	require.NoError(t, cache.NewLocal(path).Set(SelectedUserKey, models.User{ID: 5, Username: "eve"}, 0))

	s.SelectUser(nil)

	assert.Nil(t, New(log, WithPersistence(cache.NewLocal(path))).Snapshot().SelectedUser)
}

func TestStore_Subscribe(t *testing.T) {
	s := New(sl.NewDiscardLogger())

	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})

	require.Len(t, got, 1)
	assert.Equal(t, ScreenUserSelection, got[0].Screen)

	require.NoError(t, s.SetScreen(ScreenMyRatings))
	s.SelectUser(&models.User{ID: 4, Username: "dee"})
	require.Len(t, got, 3)
	assert.Equal(t, ScreenMyRatings, got[1].Screen)
	assert.Nil(t, got[1].SelectedUser)
	assert.Equal(t, "dee", got[2].SelectedUser.Username)

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.SetPage(PageManage))
	assert.Len(t, got, 3)
}

func TestStore_SubscribersCalledInOrder(t *testing.T) {
	s := New(sl.NewDiscardLogger())

	var order []string
	s.Subscribe(func(Snapshot) { order = append(order, "first") })
	s.Subscribe(func(Snapshot) { order = append(order, "second") })
	order = order[:0]

	require.NoError(t, s.SetScreen(ScreenRateMeal))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	s := New(sl.NewDiscardLogger())

	var seen Screen
	s.Subscribe(func(Snapshot) { seen = s.Snapshot().Screen })

	require.NoError(t, s.SetScreen(ScreenMealActions))
	assert.Equal(t, ScreenMealActions, seen)
}

func TestStore_SnapshotIsImmutable(t *testing.T) {
	s := New(sl.NewDiscardLogger())
	u := &models.User{ID: 1, Username: "ada"}
	s.SelectUser(u)

	u.Username = "changed"
	snap := s.Snapshot()
	snap.SelectedUser.Username = "also changed"

	assert.Equal(t, "ada", s.Snapshot().SelectedUser.Username)
}

func TestStore_RejectsUnknownScreenAndPage(t *testing.T) {
	s := New(sl.NewDiscardLogger())

	assert.Error(t, s.SetScreen(Screen("settings")))
	assert.Error(t, s.SetPage(Page("admin")))

	snap := s.Snapshot()
	assert.Equal(t, ScreenUserSelection, snap.Screen)
	assert.Equal(t, PageMain, snap.Page)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := New(sl.NewDiscardLogger())

	var (
		mu    sync.Mutex
		calls int
	)
	s.Subscribe(func(Snapshot) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			s.SelectUser(&models.User{ID: id, Username: "u"})
		}(uint64(i))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 21, calls)
	assert.NotNil(t, s.Snapshot().SelectedUser)
}
