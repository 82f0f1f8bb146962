package env

import "context"

// Playback keeps one audio clip playing at a time. Starting a clip stops
// the one in flight. It is used from a screen's Update and is not safe for
// concurrent use.
type Playback struct {
	seq    int
	cancel context.CancelFunc
}

// Start stops the clip in flight and returns the context and number of the
// new clip.
func (p *Playback) Start(parent context.Context) (context.Context, int) {
	p.Stop()
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.seq++
	return ctx, p.seq
}

// Latest reports whether seq numbers the most recently started clip.
func (p *Playback) Latest(seq int) bool {
	return seq == p.seq
}

// Stop stops the clip in flight, if any.
func (p *Playback) Stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
