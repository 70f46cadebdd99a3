package feedback

import "sync"

// RecorderSynthesizer records everything it is asked to speak.
type RecorderSynthesizer struct {
	mu     sync.Mutex
	spoken []string
	err    error
}

// SetError makes subsequent Speak calls fail with err.
func (r *RecorderSynthesizer) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *RecorderSynthesizer) Speak(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.spoken = append(r.spoken, text)
	return nil
}

// Spoken returns a copy of everything spoken so far.
func (r *RecorderSynthesizer) Spoken() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.spoken...)
}

// RecorderPlayer records every clip it is asked to play.
type RecorderPlayer struct {
	mu     sync.Mutex
	played []string
	err    error
}

// SetError makes subsequent Play calls fail with err.
func (r *RecorderPlayer) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *RecorderPlayer) Play(ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.played = append(r.played, ref)
	return nil
}

// Played returns a copy of every clip played so far.
func (r *RecorderPlayer) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.played...)
}

// StaticFlags is a fixed settings snapshot for tests.
type StaticFlags struct {
	Sound bool
	Spell bool
}

func (f StaticFlags) SoundEnabled() bool { return f.Sound }
func (f StaticFlags) SpellEnabled() bool { return f.Spell }
