package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/infrastructure/memstore"
)

func newRestartingSession(t *testing.T, store *memstore.Store) *entity.Session {
	t.Helper()
	sess := &entity.Session{UserID: 1, ClientID: "abc"}
	require.NoError(t, store.Sessions().Create(sess))
	require.NoError(t, store.Sessions().SetStatus(sess.ID, entity.StatusRestarting))
	return sess
}

func TestRestarterSettlesAfterDelay(t *testing.T) {
	store := memstore.New()
	sess := newRestartingSession(t, store)

	r := NewRestarter(store.Sessions(), 10*time.Millisecond, nil)
	defer r.Close()
	r.Schedule(sess.ID, true)

	assert.Eventually(t, func() bool {
		got, _ := store.Sessions().GetByID(sess.ID)
		return got.Status == entity.StatusReady
	}, time.Second, 5*time.Millisecond)
}

func TestRestarterCancel(t *testing.T) {
	store := memstore.New()
	sess := newRestartingSession(t, store)

	r := NewRestarter(store.Sessions(), 20*time.Millisecond, nil)
	defer r.Close()
	r.Schedule(sess.ID, true)
	r.Cancel(sess.ID)

	time.Sleep(60 * time.Millisecond)
	got, err := store.Sessions().GetByID(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRestarting, got.Status)
}

func TestRestarterRescheduleReplacesPending(t *testing.T) {
	store := memstore.New()
	sess := newRestartingSession(t, store)

	r := NewRestarter(store.Sessions(), 10*time.Millisecond, nil)
	defer r.Close()
	r.Schedule(sess.ID, true)
	r.Schedule(sess.ID, false) // latest wins

	assert.Eventually(t, func() bool {
		got, _ := store.Sessions().GetByID(sess.ID)
		return got.Status == entity.StatusPaused && !got.Active
	}, time.Second, 5*time.Millisecond)
}

func TestRestarterCloseSettlesImmediately(t *testing.T) {
	store := memstore.New()
	sess := newRestartingSession(t, store)

	// Long delay: only Close can settle within the test.
	r := NewRestarter(store.Sessions(), time.Hour, nil)
	r.Schedule(sess.ID, true)
	r.Close()

	got, err := store.Sessions().GetByID(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, got.Status)
	assert.True(t, got.Active)
}

func TestRestarterScheduleAfterClose(t *testing.T) {
	store := memstore.New()
	sess := newRestartingSession(t, store)

	r := NewRestarter(store.Sessions(), time.Hour, nil)
	r.Close()
	r.Schedule(sess.ID, false)

	got, err := store.Sessions().GetByID(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaused, got.Status)
}
