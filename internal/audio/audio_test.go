package audio

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()

	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for i := 0; i < got; i++ {
			for _, v := range buf[i] {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		n += got
		if !ok || got == 0 {
			return n, peak
		}
		if n > 10*int(sampleRate) {
			t.Fatal("cue never ends")
		}
	}
}

func TestSoundLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, c := range []Cue{CueFire, CueHit, CueCaught, CueCleared, CueVictory} {
		s, err := Sound(c, rate, 1)
		if err != nil {
			t.Fatalf("%v: %v", c, err)
		}

		want := 0
		for _, n := range cues[c] {
			want += rate.N(n.dur)
		}
		n, peak := drain(t, s)
		if n != want {
			t.Errorf("%v: streamed %d samples, want %d", c, n, want)
		}
		if peak == 0 || peak > 1.0001 {
			t.Errorf("%v: peak amplitude %f out of range", c, peak)
		}
	}
}

func TestSoundMutedVolume(t *testing.T) {
	s, err := Sound(CueHit, beep.SampleRate(8000), 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(t, s); peak != 0 {
		t.Errorf("muted cue peak = %f, want 0", peak)
	}
}

func TestLength(t *testing.T) {
	if got := Length(CueCaught); got != 500*time.Millisecond {
		t.Errorf("Length(caught) = %v, want 500ms", got)
	}
	if got := Length(Cue(99)); got != 0 {
		t.Errorf("unknown cue length = %v, want 0", got)
	}
}

func TestOpenMuted(t *testing.T) {
	p := Open(true, log.New(io.Discard))
	if _, ok := p.(Nop); !ok {
		t.Errorf("muted Open returned %T, want Nop", p)
	}
	p.Play(CueFire)
	p.Close()
}

func TestUninitializedSpeakerIsSilent(t *testing.T) {
	s := NewSpeaker(log.New(io.Discard))
	s.Play(CueVictory)
	s.Close()
}
