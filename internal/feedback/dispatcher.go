package feedback

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ayusman/lexicam/internal/vocab"
)

const (
	// DefaultStagger separates consecutive announcements from one frame.
	DefaultStagger = time.Second

	// DefaultCooldown suppresses re-announcing a word that was just spoken.
	DefaultCooldown = 8 * time.Second

	// letterPace paces the gap between a word and its spelling, per letter.
	letterPace = 250 * time.Millisecond
)

// Flags exposes the audio-related settings the dispatcher honors.
type Flags interface {
	SoundEnabled() bool
	SpellEnabled() bool
}

// Dispatcher turns recognized vocabulary into staggered audio feedback.
// Recorded clips are preferred; synthesis is the fallback. All playback
// failures are absorbed so detection never stalls on audio trouble.
type Dispatcher struct {
	synth    Synthesizer
	player   Player
	flags    Flags
	stagger  time.Duration
	cooldown time.Duration

	mu       sync.Mutex
	timers   map[*time.Timer]struct{}
	lastSaid map[string]time.Time
}

// NewDispatcher creates a dispatcher with the default stagger and cooldown.
func NewDispatcher(synth Synthesizer, player Player, flags Flags) *Dispatcher {
	return &Dispatcher{
		synth:    synth,
		player:   player,
		flags:    flags,
		stagger:  DefaultStagger,
		cooldown: DefaultCooldown,
		timers:   make(map[*time.Timer]struct{}),
		lastSaid: make(map[string]time.Time),
	}
}

// SetStagger overrides the delay between consecutive announcements.
func (d *Dispatcher) SetStagger(stagger time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stagger = stagger
}

// SetCooldown overrides the per-word re-announcement cooldown.
func (d *Dispatcher) SetCooldown(cooldown time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cooldown = cooldown
}

// Announce schedules audio feedback for the given tokens, one announcement
// per stagger interval. Tokens that resolve to no vocabulary item, and tokens
// spoken within the cooldown window, are skipped silently.
func (d *Dispatcher) Announce(tokens []string, idx *vocab.Index) {
	if d.flags != nil && !d.flags.SoundEnabled() {
		return
	}
	if idx == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	slot := 0
	for _, token := range tokens {
		item, ok := idx.Lookup(token, "")
		if !ok {
			continue
		}
		key := strings.ToLower(token)
		if last, ok := d.lastSaid[key]; ok && now.Sub(last) < d.cooldown {
			continue
		}
		d.lastSaid[key] = now

		var timer *time.Timer
		timer = time.AfterFunc(time.Duration(slot)*d.stagger, func() {
			d.announce(item)
			// Fired timers drop out of the pending set so long sessions
			// stay bounded.
			d.mu.Lock()
			delete(d.timers, timer)
			d.mu.Unlock()
		})
		d.timers[timer] = struct{}{}
		slot++
	}
}

// ResetCooldown forgets recently spoken words so they may be announced
// again. Called when the camera view changes to a new scene.
func (d *Dispatcher) ResetCooldown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastSaid = make(map[string]time.Time)
}

// CancelPending stops all scheduled announcements.
func (d *Dispatcher) CancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for timer := range d.timers {
		timer.Stop()
	}
	d.timers = make(map[*time.Timer]struct{})
	d.lastSaid = make(map[string]time.Time)
}

func (d *Dispatcher) announce(item vocab.Item) {
	d.speakItem(item)

	if d.flags != nil && d.flags.SpellEnabled() && len(item.Spelling) > 0 {
		time.Sleep(time.Duration(len(item.Spelling)) * letterPace)
		if err := d.synth.Speak(strings.Join(item.Spelling, ", ")); err != nil {
			log.Printf("spelling playback failed for %q: %v", item.Name, err)
		}
	}
}

// speakItem plays the item's recorded clip, falling back to synthesis.
func (d *Dispatcher) speakItem(item vocab.Item) {
	if item.AudioRef != "" && d.player != nil {
		err := d.player.Play(item.AudioRef)
		if err == nil {
			return
		}
		log.Printf("clip playback failed for %q, falling back to synthesis: %v", item.Name, err)
	}

	text := item.Pronunciation
	if text == "" {
		text = item.Name
	}
	if err := d.synth.Speak(text); err != nil {
		log.Printf("speech synthesis failed for %q: %v", item.Name, err)
	}
}
