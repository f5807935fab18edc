package services

import (
	"sync"
	"testing"
)

func TestRedirectGuard(t *testing.T) {
	t.Run("Initial State Is Idle", func(t *testing.T) {
		guard := NewRedirectGuard(nil)
		if guard.State() != RedirectIdle {
			t.Error("expected new guard to be idle")
		}
	})

	t.Run("First Begin Wins", func(t *testing.T) {
		fired := 0
		guard := NewRedirectGuard(func() { fired++ })

		if !guard.Begin() {
			t.Error("expected first Begin to win")
		}
		if guard.Begin() {
			t.Error("expected second Begin to lose")
		}
		if fired != 1 {
			t.Errorf("expected callback to fire once, fired %d times", fired)
		}
		if guard.State() != Redirecting {
			t.Error("expected guard to be redirecting")
		}
	})

	t.Run("Reset Returns To Idle", func(t *testing.T) {
		guard := NewRedirectGuard(nil)
		guard.Begin()
		guard.Reset()

		if guard.State() != RedirectIdle {
			t.Error("expected idle after reset")
		}
		if !guard.Begin() {
			t.Error("expected Begin to win again after reset")
		}
	})

	t.Run("Concurrent Begins Have One Winner", func(t *testing.T) {
		var mu sync.Mutex
		fired := 0
		guard := NewRedirectGuard(func() {
			mu.Lock()
			fired++
			mu.Unlock()
		})

		var wg sync.WaitGroup
		wins := make(chan bool, 16)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				wins <- guard.Begin()
			}()
		}
		wg.Wait()
		close(wins)

		winners := 0
		for won := range wins {
			if won {
				winners++
			}
		}
		if winners != 1 {
			t.Errorf("expected exactly one winner, got %d", winners)
		}
		if fired != 1 {
			t.Errorf("expected callback to fire once, fired %d times", fired)
		}
	})
}
