package intake

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreatesOnFirstReference(t *testing.T) {
	st := NewStore(time.Hour)
	assert.False(t, st.Exists("u1"))

	err := st.Update("u1", func(s *Session) error {
		assert.Equal(t, StateGreeting, s.State)
		assert.Equal(t, "u1", s.ID)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, st.Exists("u1"))
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	st := NewStore(time.Hour)
	require.NoError(t, st.Update("u1", func(s *Session) error {
		s.Name = "Jane"
		s.Exchanges = append(s.Exchanges, Exchange{UserMessage: "hi"})
		return nil
	}))

	snap, ok := st.Snapshot("u1")
	require.True(t, ok)
	snap.Name = "changed"
	snap.Exchanges[0].UserMessage = "changed"

	again, _ := st.Snapshot("u1")
	assert.Equal(t, "Jane", again.Name)
	assert.Equal(t, "hi", again.Exchanges[0].UserMessage)
}

func TestStoreSerializesSameSessionUpdates(t *testing.T) {
	st := NewStore(time.Hour)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = st.Update("u1", func(s *Session) error {
				s.Exchanges = append(s.Exchanges, Exchange{UserMessage: "m"})
				return nil
			})
		}()
	}
	wg.Wait()

	sess, _ := st.Snapshot("u1")
	assert.Len(t, sess.Exchanges, n, "no update may be lost")
}

func TestStoreEvictsAfterTTL(t *testing.T) {
	st := NewStore(20 * time.Millisecond)
	require.NoError(t, st.Update("u1", func(*Session) error { return nil }))

	time.Sleep(50 * time.Millisecond)
	assert.False(t, st.Exists("u1"))
}

func TestStoreZeroTTLKeepsSessions(t *testing.T) {
	st := NewStore(0)
	require.NoError(t, st.Update("u1", func(*Session) error { return nil }))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, st.Exists("u1"))
}

func TestStoreUpdateErrorDoesNotRefreshTTL(t *testing.T) {
	st := NewStore(time.Hour)
	wantErr := assert.AnError
	err := st.Update("u1", func(*Session) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	// session exists regardless: creation happens on first reference
	assert.True(t, st.Exists("u1"))
}
