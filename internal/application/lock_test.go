package application

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	var inSection, max int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("acme/u1")
			defer unlock()

			mu.Lock()
			inSection++
			if inSection > max {
				max = inSection
			}
			mu.Unlock()

			mu.Lock()
			inSection--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, max, "same-key sections must never overlap")
}

func TestKeyedMutex_EvictsReleasedKeys(t *testing.T) {
	km := newKeyedMutex()

	unlockA := km.Lock("acme/u1")
	unlockB := km.Lock("globex/u2")
	require.Len(t, km.locks, 2)

	unlockA()
	unlockB()
	assert.Empty(t, km.locks, "released keys must not accumulate")
}

func TestKeyedMutex_KeepsEntryWhileContended(t *testing.T) {
	km := newKeyedMutex()

	unlock := km.Lock("acme/u1")

	released := make(chan struct{})
	go func() {
		u := km.Lock("acme/u1")
		u()
		close(released)
	}()

	// wait until the second goroutine is registered as a waiter
	for {
		km.mu.Lock()
		waiting := km.locks["acme/u1"] != nil && km.locks["acme/u1"].refs == 2
		km.mu.Unlock()
		if waiting {
			break
		}
		time.Sleep(time.Millisecond)
	}

	unlock()
	<-released

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
