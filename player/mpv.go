package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aceplay/aceplay/constant"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV is the mpv window used as a Sink. It is started idle on first use and
// then reused: every selection loads its source into the same instance.
//
// Title updates and stops are sent in the background so callers holding
// their own locks never wait on a slow mpv.
type MPV struct {
	mu    sync.Mutex // serializes IPC commands
	loads uint64     // generation of the last loadfile, guarded by mu

	procMu     sync.Mutex
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	started    bool
	listener   *EventListener

	titleMu sync.Mutex
	title   string

	bgMu    sync.Mutex
	bg      sync.WaitGroup
	closing bool

	subMu sync.Mutex
	subs  map[int]EventCallback
	next  int
}

// ticket ties one engine to the file it loaded. gen is guarded by MPV.mu.
type ticket struct {
	cancelled atomic.Bool
	gen       uint64
}

var errCancelled = errors.New("load cancelled")

// NewMPV returns a sink; no process is started until it is needed.
func NewMPV() *MPV {
	return &MPV{subs: make(map[int]EventCallback)}
}

// Start launches mpv idle with an IPC socket and waits for the socket.
// It is a no-op while the process is running.
func (m *MPV) Start(ctx context.Context) error {
	m.procMu.Lock()
	defer m.procMu.Unlock()

	if m.runningLocked() {
		return nil
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Aceplay, randomBytes))

	// only the socket and window flags; the user's mpv.conf decides the rest
	m.cmd = exec.Command("mpv",
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server="+m.socketPath,
		"--title="+constant.Aceplay,
		"--force-media-title="+m.currentTitle(),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=no",
	)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.exited = exited
	go func(cmd *exec.Cmd) {
		_ = cmd.Wait()
		close(exited)
	}(m.cmd)

	if err := m.waitForSocket(ctx); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.started = true
	return m.listenLocked()
}

func (m *MPV) listenLocked() error {
	m.listener = NewEventListener(m.socketPath, m.dispatch)
	return m.listener.Start()
}

func (m *MPV) waitForSocket(ctx context.Context) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) runningLocked() bool {
	if !m.started {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Running reports whether the mpv process is alive.
func (m *MPV) Running() bool {
	m.procMu.Lock()
	defer m.procMu.Unlock()
	return m.runningLocked()
}

// Subscribe registers fn for raw mpv events.
func (m *MPV) Subscribe(fn EventCallback) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.next
	m.next++
	m.subs[id] = fn

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *MPV) dispatch(name string, data any) {
	m.subMu.Lock()
	fns := make([]EventCallback, 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(name, data)
	}
}

// background runs fn on its own goroutine unless the sink is closing.
func (m *MPV) background(fn func()) {
	m.bgMu.Lock()
	defer m.bgMu.Unlock()

	if m.closing {
		return
	}
	m.bg.Add(1)
	go func() {
		defer m.bg.Done()
		fn()
	}()
}

// load replaces the current file with target unless t was cancelled, and
// returns its playlist entry id, or 0 when mpv does not report one.
func (m *MPV) load(target string, t *ticket) (int64, error) {
	safe, err := sanitizeMediaTarget(target)
	if err != nil {
		return 0, fmt.Errorf("invalid media target: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if t.cancelled.Load() {
		return 0, errCancelled
	}

	data, err := m.sendLocked("loadfile", safe, "replace")
	if err != nil {
		return 0, err
	}
	m.loads++
	t.gen = m.loads

	if reply, ok := data.(map[string]any); ok {
		if id, ok := reply["playlist_entry_id"].(float64); ok {
			return int64(id), nil
		}
	}
	return 0, nil
}

// release cancels t at once and, in the background, unloads its file if
// nothing was loaded after it. The window stays open.
func (m *MPV) release(t *ticket) {
	t.cancelled.Store(true)

	m.background(func() {
		if !m.Running() {
			return
		}

		m.mu.Lock()
		defer m.mu.Unlock()

		if t.gen == 0 || t.gen != m.loads {
			return
		}
		if _, err := m.sendLocked("stop"); err != nil {
			log.Warnf("stop: %v", err)
		}
	})
}

// Play starts mpv if needed and unpauses it.
func (m *MPV) Play(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}
	return m.Set("pause", false)
}

// SetTitle remembers the media title for the next start and pushes it to a
// running mpv in the background.
func (m *MPV) SetTitle(title string) error {
	m.titleMu.Lock()
	m.title = sanitizeTitle(title)
	m.titleMu.Unlock()

	m.background(m.pushTitle)
	return nil
}

func (m *MPV) currentTitle() string {
	m.titleMu.Lock()
	defer m.titleMu.Unlock()
	return m.title
}

// pushTitle sends whatever title is newest when the IPC lock is acquired,
// so pushes finishing out of order still leave the latest one shown.
func (m *MPV) pushTitle() {
	if !m.Running() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.sendLocked("set_property", "force-media-title", m.currentTitle()); err != nil {
		log.Warnf("set title: %v", err)
	}
}

// ToggleFullscreen flips the fullscreen state of the window.
func (m *MPV) ToggleFullscreen() error {
	if !m.Running() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("cycle", "fullscreen")
	return err
}

// Observe samples the liveness properties.
func (m *MPV) Observe() (Observation, error) {
	if !m.Running() {
		return Observation{}, ErrNotRunning
	}

	var obs Observation
	pos, err := m.getFloatProperty("time-pos")
	if err != nil {
		if isUnavailable(err) {
			return obs, nil
		}
		return obs, err
	}
	obs.Position = pos
	obs.ReadyState = 4

	if obs.Paused, err = m.getBoolProperty("pause"); err != nil && !isUnavailable(err) {
		return obs, err
	}
	if obs.Ended, err = m.getBoolProperty("eof-reached"); err != nil && !isUnavailable(err) {
		return obs, err
	}

	buffering, err := m.getBoolProperty("paused-for-cache")
	if err != nil && !isUnavailable(err) {
		return obs, err
	}
	if buffering {
		obs.ReadyState = 2
	}
	return obs, nil
}

// Close waits for background commands, quits mpv, killing it if it does not
// exit in time, and removes the socket. The sink is not reusable afterwards.
func (m *MPV) Close() error {
	m.bgMu.Lock()
	m.closing = true
	m.bgMu.Unlock()
	m.bg.Wait()

	m.procMu.Lock()
	defer m.procMu.Unlock()

	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}
	if !m.started {
		return nil
	}
	m.started = false

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	m.procMu.Lock()
	defer m.procMu.Unlock()
	return m.socketPath
}

// Set writes an mpv property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}
	return val, nil
}

func (m *MPV) getBoolProperty(name string) (bool, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}
	return val, nil
}

func isUnavailable(err error) bool {
	e, ok := err.(*ipcError)
	return ok && e.msg == errPropertyUnavailable
}

// sanitizeMediaTarget keeps anything that could be read as a flag away from mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l, nil
	default:
		return "", fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
	}
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
