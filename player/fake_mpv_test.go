package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeMPV speaks enough of mpv's JSON-IPC to drive the sink and engine.
type fakeMPV struct {
	path string
	ln   net.Listener

	mu       sync.Mutex
	conns    []net.Conn
	props    map[string]any
	commands [][]any
	entry    int

	// silent records commands without answering, like a hung mpv
	silent atomic.Bool
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "ipc.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{path: path, ln: ln, props: make(map[string]any)}
	go f.accept()
	t.Cleanup(func() {
		_ = ln.Close()
		f.mu.Lock()
		for _, c := range f.conns {
			_ = c.Close()
		}
		f.mu.Unlock()
		_ = os.RemoveAll(dir)
	})
	return f
}

func (f *fakeMPV) accept() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()
		go f.serve(conn)
	}
}

func (f *fakeMPV) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil || len(cmd.Command) == 0 {
			continue
		}

		reply := map[string]any{"request_id": cmd.RequestID, "error": "success"}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		if f.silent.Load() {
			f.mu.Unlock()
			continue
		}
		switch cmd.Command[0] {
		case "get_property":
			name, _ := cmd.Command[1].(string)
			if v, ok := f.props[name]; ok {
				reply["data"] = v
			} else {
				reply["error"] = errPropertyUnavailable
			}
		case "loadfile":
			f.entry++
			reply["data"] = map[string]any{"playlist_entry_id": f.entry}
		}
		line, _ := json.Marshal(reply)
		_, _ = conn.Write(append(line, '\n'))
		f.mu.Unlock()
	}
}

func (f *fakeMPV) set(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[name] = value
}

// broadcast sends an event to every connected client, like mpv does.
func (f *fakeMPV) broadcast(event map[string]any) {
	line, _ := json.Marshal(event)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		_, _ = c.Write(append(line, '\n'))
	}
}

// last returns the arguments of the newest command called name.
func (f *fakeMPV) last(name string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.commands) - 1; i >= 0; i-- {
		if f.commands[i][0] == name {
			return f.commands[i][1:]
		}
	}
	return nil
}

func (f *fakeMPV) sent(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.commands {
		if c[0] == name {
			n++
		}
	}
	return n
}

// attached returns an MPV sink talking to the fake, with its listener running.
func (f *fakeMPV) attached(t *testing.T) *MPV {
	m := NewMPV()
	m.socketPath = f.path
	m.started = true
	m.exited = make(chan struct{})
	if err := m.listenLocked(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.listener.Stop)

	waitFor(t, func() bool { return f.sent("observe_property") == len(observed) })
	return m
}

func waitFor(t *testing.T, cond func() bool) {
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
