package capture

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/daylight/internal/shared"
)

const (
	completeBody = "Authorization complete. You may close this window."
	waitingBody  = "Waiting for authorization. You may close this window."

	// requestDeadline bounds how long a single redirect connection may take
	// to send its request line and headers.
	requestDeadline = 10 * time.Second
)

// pending pairs the one-shot result channel of a capture in flight with the
// teardown for its listening socket.
type pending struct {
	result   chan string
	once     sync.Once
	shutdown func()
}

// deliver hands off the authorization code (only once).
//
// The channel is buffered, so a late delivery after the receiver is gone
// never blocks; the code is silently discarded.
func (p *pending) deliver(code string) {
	p.once.Do(func() {
		p.result <- code
		close(p.result)
	})
}

// abandon closes the result channel without a value, observed by the waiter
// as [shared.ErrListenerClosed].
func (p *pending) abandon() {
	p.once.Do(func() {
		close(p.result)
	})
}

// Listener owns the single-slot registry for loopback code captures.
//
// Construct one per process with [NewListener] and pass it to whatever
// surfaces the start/await operations. The zero slot means no capture is in
// flight; the mutex only ever covers the slot swap, never I/O or the wait.
type Listener struct {
	mu      sync.Mutex
	pending *pending
	logger  *log.Logger
}

// NewListener creates a Listener with the given logger.
func NewListener(logger *log.Logger) *Listener {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Listener{logger: logger}
}

// Start binds a loopback TCP listener on an OS-assigned ephemeral port and
// begins accepting redirect requests in the background.
//
// Returns the bound port for the caller's redirect URI. Fails with
// [shared.ErrAlreadyRunning] while a capture is pending, with
// [shared.ErrBindFailure] if the bind is refused, and with
// [shared.ErrUnsupportedAddress] if the bound address is not an IP/port pair.
func (l *Listener) Start() (uint16, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending != nil {
		return 0, shared.ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrBindFailure, err)
	}

	port, err := ListenAddrPort(ln.Addr())
	if err != nil {
		ln.Close()
		return 0, err
	}

	p := &pending{result: make(chan string, 1)}
	var closeOnce sync.Once
	p.shutdown = func() {
		closeOnce.Do(func() { ln.Close() })
	}
	l.pending = p

	l.logger.Info("oauth listener started", "port", port)
	go l.serve(ln, p)

	return port, nil
}

// Await blocks until a code arrives on the pending capture, the timeout
// elapses, or ctx is cancelled.
//
// The pending capture is taken from the slot atomically, so a concurrent
// Await loses with [shared.ErrListenerNotStarted]. Whatever the outcome, the
// listening socket is torn down before returning; a redirect arriving after a
// timeout is discarded.
func (l *Listener) Await(ctx context.Context, timeout time.Duration) (string, error) {
	l.mu.Lock()
	p := l.pending
	l.pending = nil
	l.mu.Unlock()

	if p == nil {
		return "", shared.ErrListenerNotStarted
	}
	defer p.shutdown()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case code, ok := <-p.result:
		if !ok {
			return "", shared.ErrListenerClosed
		}
		return code, nil
	case <-timer.C:
		return "", fmt.Errorf("%w: no redirect within %v", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// serve accepts redirect requests one at a time until a code shows up or the
// socket closes. A single redirect is one event, not a stream, so there is no
// per-connection fan-out.
func (l *Listener) serve(ln net.Listener, p *pending) {
	defer p.shutdown()
	defer p.abandon()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		code, found := handleConn(conn)
		if found {
			l.logger.Info("authorization code captured")
			p.deliver(code)
			return
		}
	}
}

// handleConn reads a single HTTP request off conn, answers it with the fixed
// plain-text body, and reports any extracted code.
func handleConn(conn net.Conn) (string, bool) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(requestDeadline))

	req, err := http.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		return "", false
	}

	code, found := ExtractCode(req.URL.String())

	body := waitingBody
	if found {
		body = completeBody
	}

	resp := http.Response{
		StatusCode:    http.StatusOK,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        make(http.Header),
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.Write(conn)

	return code, found
}
