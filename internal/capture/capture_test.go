package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/daylight/internal/shared"
)

func get(t *testing.T, url string) string {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(body)
}

func TestListener(t *testing.T) {
	t.Run("Await Without Start", func(t *testing.T) {
		l := NewListener(nil)

		_, err := l.Await(context.Background(), 50*time.Millisecond)
		if !errors.Is(err, shared.ErrListenerNotStarted) {
			t.Errorf("expected ErrListenerNotStarted, got %v", err)
		}
	})

	t.Run("Start Twice", func(t *testing.T) {
		l := NewListener(nil)

		if _, err := l.Start(); err != nil {
			t.Fatalf("first Start failed: %v", err)
		}

		if _, err := l.Start(); !errors.Is(err, shared.ErrAlreadyRunning) {
			t.Errorf("expected ErrAlreadyRunning, got %v", err)
		}

		// drain the slot so the listener goroutine is torn down
		l.Await(context.Background(), time.Millisecond)
	})

	t.Run("Timeout", func(t *testing.T) {
		l := NewListener(nil)

		if _, err := l.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		started := time.Now()
		_, err := l.Await(context.Background(), 50*time.Millisecond)
		elapsed := time.Since(started)

		if !errors.Is(err, shared.ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
		if elapsed > time.Second {
			t.Errorf("Await took %v, expected roughly 50ms", elapsed)
		}
	})

	t.Run("Start After Timed Out Await", func(t *testing.T) {
		l := NewListener(nil)

		if _, err := l.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if _, err := l.Await(context.Background(), time.Millisecond); !errors.Is(err, shared.ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}

		if _, err := l.Start(); err != nil {
			t.Fatalf("Start after timed-out Await failed: %v", err)
		}
		l.Await(context.Background(), time.Millisecond)
	})

	t.Run("Context Cancelled", func(t *testing.T) {
		l := NewListener(nil)

		if _, err := l.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := l.Await(ctx, time.Minute); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("Listener Closed Without Delivery", func(t *testing.T) {
		p := &pending{result: make(chan string, 1), shutdown: func() {}}
		p.abandon()

		l := NewListener(nil)
		l.pending = p

		if _, err := l.Await(context.Background(), time.Second); !errors.Is(err, shared.ErrListenerClosed) {
			t.Errorf("expected ErrListenerClosed, got %v", err)
		}
	})

	t.Run("Concurrent Awaits", func(t *testing.T) {
		l := NewListener(nil)

		if _, err := l.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		errC := make(chan error, 2)
		var wg sync.WaitGroup
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := l.Await(context.Background(), 50*time.Millisecond)
				errC <- err
			}()
		}
		wg.Wait()
		close(errC)

		var notStarted, timedOut int
		for err := range errC {
			switch {
			case errors.Is(err, shared.ErrListenerNotStarted):
				notStarted++
			case errors.Is(err, shared.ErrTimeout):
				timedOut++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}

		if notStarted != 1 || timedOut != 1 {
			t.Errorf("expected one loser and one timeout, got %d ErrListenerNotStarted and %d ErrTimeout", notStarted, timedOut)
		}
	})

	t.Run("End To End", func(t *testing.T) {
		l := NewListener(nil)

		port, err := l.Start()
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if port == 0 {
			t.Fatal("expected a non-zero ephemeral port")
		}

		base := fmt.Sprintf("http://127.0.0.1:%d", port)

		// a redirect without a code keeps the listener waiting
		if body := get(t, base+"/callback?state=xyz"); !strings.Contains(body, "Waiting for authorization") {
			t.Errorf("expected waiting body, got %q", body)
		}

		if body := get(t, base+"/callback?code=abc123&state=xyz"); !strings.Contains(body, "Authorization complete") {
			t.Errorf("expected completion body, got %q", body)
		}

		code, err := l.Await(context.Background(), 5*time.Second)
		if err != nil {
			t.Fatalf("Await failed: %v", err)
		}
		if code != "abc123" {
			t.Errorf("expected code abc123, got %q", code)
		}

		// delivery tears the socket down; a second request must fail
		deadline := time.Now().Add(2 * time.Second)
		for {
			conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), 100*time.Millisecond)
			if err != nil {
				break
			}
			conn.Close()
			if time.Now().After(deadline) {
				t.Fatal("listener still accepting connections after delivery")
			}
			time.Sleep(20 * time.Millisecond)
		}

		// and the slot is free for a fresh capture
		if _, err := l.Start(); err != nil {
			t.Fatalf("Start after delivered capture failed: %v", err)
		}
		l.Await(context.Background(), time.Millisecond)
	})

	t.Run("Encoded Code Via HTTP", func(t *testing.T) {
		l := NewListener(nil)

		port, err := l.Start()
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		get(t, fmt.Sprintf("http://127.0.0.1:%d/callback?code=abc%%2Bdef", port))

		code, err := l.Await(context.Background(), 5*time.Second)
		if err != nil {
			t.Fatalf("Await failed: %v", err)
		}
		if code != "abc+def" {
			t.Errorf("expected decoded code abc+def, got %q", code)
		}
	})
}
