package session

import (
	"context"
	"errors"
	"testing"

	"github.com/aceplay/aceplay/player"
	"github.com/aceplay/aceplay/player/playertest"
	"github.com/aceplay/aceplay/status"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

type fragments struct {
	got []string
}

func (f *fragments) SetFragment(id string) {
	f.got = append(f.got, id)
}

type fixture struct {
	session   *Session
	sink      *playertest.Sink
	engines   *playertest.Factory
	navigator *fragments
}

func newFixture() *fixture {
	f := &fixture{
		sink:      &playertest.Sink{},
		engines:   &playertest.Factory{},
		navigator: &fragments{},
	}
	f.session = New(Config{
		Sink:      f.sink,
		Engines:   f.engines.New,
		SourceURL: func(id string) string { return "http://srv/hls/" + id },
		Navigator: f.navigator,
	})
	return f
}

func playing(pos float64) player.Observation {
	return player.Observation{Position: pos, ReadyState: 4}
}

func TestSelect(t *testing.T) {
	Convey("Given a new session", t, func() {
		f := newFixture()
		s := f.session

		Convey("It is idle and ready", func() {
			snap := s.Snapshot()
			So(snap.State, ShouldEqual, Idle)
			So(snap.Health, ShouldResemble, status.Health{State: status.Neutral, Message: MsgReady})
		})

		Convey("Selecting a stream attaches a fresh engine", func() {
			tok := s.Select("abc123", "abc123")
			snap := s.Snapshot()

			So(tok, ShouldEqual, snap.Token)
			So(snap.State, ShouldEqual, Loading)
			So(snap.Selection, ShouldEqual, "abc123")
			So(snap.Source, ShouldEqual, "http://srv/hls/abc123")
			So(snap.Health, ShouldResemble, status.Health{State: status.Neutral, Message: MsgLoaded})
			So(f.navigator.got, ShouldResemble, []string{"abc123"})
			So(f.sink.Title(), ShouldEqual, "abc123")

			engine := f.engines.Last()
			So(engine.Source(), ShouldEqual, "http://srv/hls/abc123")
			So(engine.Attached(), ShouldBeTrue)
			So(engine.Listeners(), ShouldEqual, 1)

			Convey("A second selection destroys the first handle before the next", func() {
				next := s.Select("def456", "Other")
				So(next, ShouldBeGreaterThan, tok)
				So(engine.Destroyed(), ShouldBeTrue)
				So(engine.Listeners(), ShouldEqual, 0)
				So(f.engines.Engines(), ShouldHaveLength, 2)
				So(f.engines.Last().Destroyed(), ShouldBeFalse)
			})
		})

		Convey("An unsupported engine puts the session in Error", func() {
			f.engines.Unsupported = true
			tok := s.Select("abc123", "abc123")

			snap := s.Snapshot()
			So(snap.State, ShouldEqual, Error)
			So(snap.Health, ShouldResemble, status.Health{State: status.Bad, Message: MsgUnsupported})

			So(s.Play(context.Background(), tok), ShouldBeNil)
			So(f.sink.Plays(), ShouldEqual, 0)
		})
	})
}

func TestEngineEvents(t *testing.T) {
	Convey("Given a loading session", t, func() {
		f := newFixture()
		s := f.session
		s.Select("abc123", "abc123")
		engine := f.engines.Last()

		Convey("A fatal network error moves to Error", func() {
			engine.Emit(player.Event{Type: player.NetworkError, Fatal: true})

			snap := s.Snapshot()
			So(snap.State, ShouldEqual, Error)
			So(snap.Failure, ShouldEqual, player.NetworkError)
			So(snap.Health, ShouldResemble, status.Health{State: status.Bad, Message: "Network error: Ace doesn't have the stream segment"})

			Convey("and a new selection recovers to Loading", func() {
				s.Select("def456", "def456")
				snap := s.Snapshot()
				So(snap.State, ShouldEqual, Loading)
				So(snap.Failure, ShouldEqual, player.EventType(0))
				So(snap.Health, ShouldResemble, status.Health{State: status.Neutral, Message: MsgLoaded})
			})
		})

		Convey("Each fatal category has its message", func() {
			for typ, msg := range map[player.EventType]string{
				player.MediaError: "Media error: Stream not ready",
				player.MuxError:   "Stream parsing error",
				player.OtherError: "Stream loading failed",
			} {
				s.Select("abc123", "abc123")
				f.engines.Last().Emit(player.Event{Type: typ, Fatal: true})
				So(s.Snapshot().Health.Message, ShouldEqual, msg)
			}
		})

		Convey("Non-fatal errors and manifest events change nothing", func() {
			before := s.Snapshot()
			engine.Emit(player.Event{Type: player.NetworkError})
			engine.Emit(player.Event{Type: player.ManifestParsed})
			So(s.Snapshot(), ShouldResemble, before)
		})

		Convey("Events for a superseded selection are dropped", func() {
			stale := s.Current()
			s.Select("def456", "def456")
			s.handle(stale, player.Event{Type: player.MediaError, Fatal: true})
			So(s.Snapshot().State, ShouldEqual, Loading)
		})
	})
}

func TestPlay(t *testing.T) {
	Convey("Given a loading session", t, func() {
		f := newFixture()
		s := f.session
		tok := s.Select("abc123", "abc123")

		Convey("Play reaches the sink", func() {
			So(s.Play(context.Background(), tok), ShouldBeNil)
			So(f.sink.Plays(), ShouldEqual, 1)
		})

		Convey("A rejected play is reported bad", func() {
			f.sink.RejectPlay(errors.New("autoplay denied"))
			So(s.Play(context.Background(), tok), ShouldNotBeNil)
			So(s.Snapshot().Health, ShouldResemble, status.Health{State: status.Bad, Message: MsgPlayFailed})
			So(s.Snapshot().State, ShouldEqual, Loading)
		})

		Convey("A play for a superseded selection is skipped", func() {
			s.Select("def456", "def456")
			So(s.Play(context.Background(), tok), ShouldBeNil)
			So(f.sink.Plays(), ShouldEqual, 0)
		})
	})
}

func TestPoll(t *testing.T) {
	Convey("Given a loading session", t, func() {
		f := newFixture()
		s := f.session
		s.Select("abc123", "abc123")

		Convey("An advancing position reports Playing", func() {
			f.sink.SetObservation(playing(1.5), nil)
			s.Poll()

			snap := s.Snapshot()
			So(snap.State, ShouldEqual, Playing)
			So(snap.Health, ShouldResemble, status.Health{State: status.Good, Message: MsgPlaying})
		})

		Convey("Paused, ended, buffering or stalled playback is not Playing", func() {
			for _, obs := range []player.Observation{
				{Position: 1, ReadyState: 4, Paused: true},
				{Position: 2, ReadyState: 4, Ended: true},
				{Position: 3, ReadyState: 2},
				{Position: 0, ReadyState: 4},
			} {
				f.sink.SetObservation(obs, nil)
				s.Poll()
				So(s.Snapshot().State, ShouldEqual, Loading)
			}
		})

		Convey("A position that does not move is not Playing", func() {
			f.sink.SetObservation(playing(5), nil)
			s.Poll()
			s.ReportFor(s.Current(), status.Bad, "API FAILURE 500")
			s.Poll()
			So(s.Snapshot().Health.Message, ShouldEqual, "API FAILURE 500")
		})

		Convey("Observation errors are ignored", func() {
			f.sink.SetObservation(player.Observation{}, player.ErrUnobservable)
			s.Poll()
			So(s.Snapshot().State, ShouldEqual, Loading)
		})

		Convey("Poll never leaves Error", func() {
			f.engines.Last().Emit(player.Event{Type: player.MediaError, Fatal: true})
			f.sink.SetObservation(playing(9), nil)
			s.Poll()
			So(s.Snapshot().State, ShouldEqual, Error)
		})

		Convey("Poll never starts playback", func() {
			s.Poll()
			So(f.sink.Plays(), ShouldEqual, 0)
		})
	})

	Convey("An idle session is not observed", t, func() {
		f := newFixture()
		f.sink.SetObservation(playing(3), nil)
		f.session.Poll()
		So(f.session.Snapshot().State, ShouldEqual, Idle)
	})
}

func TestGuards(t *testing.T) {
	Convey("Given two selections", t, func() {
		f := newFixture()
		s := f.session
		first := s.Select("a", "a")
		second := s.Select("b", "b")

		Convey("Only the current token may set the title", func() {
			So(s.SetTitle(first, "Stale"), ShouldBeFalse)
			So(s.SetTitle(second, "Fresh"), ShouldBeTrue)
			So(s.Snapshot().Title, ShouldEqual, "Fresh")
			So(f.sink.Title(), ShouldEqual, "Fresh")
		})

		Convey("Only the current token may report", func() {
			So(s.ReportFor(first, status.Bad, "late"), ShouldBeFalse)
			So(s.Snapshot().Health.Message, ShouldEqual, MsgLoaded)
		})

		Convey("Report always applies", func() {
			s.Report(status.Bad, "API FAILURE 500")
			So(s.Snapshot().Health.Message, ShouldEqual, "API FAILURE 500")
		})
	})
}

func TestChanges(t *testing.T) {
	Convey("Changes coalesce and close on Close", t, func() {
		f := newFixture()
		s := f.session

		s.Select("a", "a")
		s.Report(status.Bad, "x")
		_, ok := <-s.Changes()
		So(ok, ShouldBeTrue)
		So(len(s.Changes()), ShouldEqual, 0)

		So(s.Close(), ShouldBeNil)
		_, ok = <-s.Changes()
		So(ok, ShouldBeFalse)
	})
}

func TestClose(t *testing.T) {
	Convey("Closing a session tears the engine down and leaks nothing", t, func() {
		defer goleak.VerifyNone(t)

		f := newFixture()
		s := f.session
		tok := s.Select("abc123", "abc123")
		engine := f.engines.Last()

		So(s.Close(), ShouldBeNil)
		So(engine.Destroyed(), ShouldBeTrue)
		So(engine.Listeners(), ShouldEqual, 0)
		So(s.Snapshot().State, ShouldEqual, Idle)
		So(s.SetTitle(tok, "late"), ShouldBeFalse)
		So(s.Close(), ShouldBeNil)

		s.Report(status.Bad, "after close")
		So(s.Snapshot().Health.Message, ShouldEqual, MsgLoaded)
	})
}
