package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// ErrNoDevice is returned when no audio player or recorder is installed.
var ErrNoDevice = errors.New("no audio player or recorder found")

var lookPath = exec.LookPath

// players in order of preference with the arguments placed before the file.
var players = [][]string{
	{"mpv", "--no-video", "--really-quiet"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpg123", "-q"},
	{"afplay"},
}

// Player plays audio files with an external program.
type Player struct {
	argv []string
}

// FindPlayer returns the first player found on PATH.
func FindPlayer() (*Player, error) {
	for _, p := range players {
		if path, err := lookPath(p[0]); err == nil {
			return &Player{argv: append([]string{path}, p[1:]...)}, nil
		}
	}
	return nil, ErrNoDevice
}

// Play blocks until the file has played or ctx is done.
func (p *Player) Play(ctx context.Context, file string) error {
	args := append(append([]string{}, p.argv[1:]...), file)
	if err := exec.CommandContext(ctx, p.argv[0], args...).Run(); err != nil {
		return fmt.Errorf("play %s: %w", file, err)
	}
	return nil
}

// Recorder captures microphone input to a WAV file with an external
// program.
type Recorder struct {
	name string
	path string
}

// FindRecorder returns the first supported recorder found on PATH.
func FindRecorder() (*Recorder, error) {
	for _, name := range []string{"rec", "arecord", "ffmpeg"} {
		if path, err := lookPath(name); err == nil {
			return &Recorder{name: name, path: path}, nil
		}
	}
	return nil, ErrNoDevice
}

// Record captures d of 16 kHz mono audio into file.
func (r *Recorder) Record(ctx context.Context, d time.Duration, file string) error {
	if err := exec.CommandContext(ctx, r.path, r.args(d, file)...).Run(); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}

func (r *Recorder) args(d time.Duration, file string) []string {
	secs := strconv.Itoa(max(int(d.Round(time.Second)/time.Second), 1))
	switch r.name {
	case "rec":
		return []string{"-q", "-r", "16000", "-c", "1", file, "trim", "0", secs}
	case "arecord":
		return []string{"-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-d", secs, file}
	default:
		format, device := "pulse", "default"
		if runtime.GOOS == "darwin" {
			format, device = "avfoundation", ":0"
		}
		return []string{"-loglevel", "quiet", "-y", "-f", format, "-i", device, "-t", secs, "-ar", "16000", "-ac", "1", file}
	}
}
