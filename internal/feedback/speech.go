package feedback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrNoSpeechBackend is returned when no speech synthesis command is
// available on the host.
var ErrNoSpeechBackend = errors.New("no speech backend available")

// Synthesizer speaks a word or phrase out loud.
type Synthesizer interface {
	Speak(text string) error
}

// Player plays a pre-recorded audio clip by its reference.
type Player interface {
	Play(ref string) error
}

const speechTimeout = 10 * time.Second

// speechCommands lists text-to-speech commands in preference order.
// The text is passed as the final argument.
var speechCommands = [][]string{
	{"espeak"},
	{"say"},
	{"flite", "-t"},
}

// playerCommands lists audio playback commands in preference order.
// The file path is passed as the final argument.
var playerCommands = [][]string{
	{"aplay"},
	{"afplay"},
	{"paplay"},
}

func findCommand(candidates [][]string) []string {
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return c
		}
	}
	return nil
}

// runCommand executes argv with arg appended, bounded by speechTimeout.
func runCommand(argv []string, arg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
	defer cancel()

	args := append(append([]string(nil), argv[1:]...), arg)
	cmd := exec.CommandContext(ctx, argv[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %s", argv[0], speechTimeout)
	}
	if err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%s failed: %w, stderr: %s", argv[0], err, stderr.String())
		}
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}

// CommandSynthesizer speaks text through the first text-to-speech command
// found on the host.
type CommandSynthesizer struct {
	argv []string
}

// NewCommandSynthesizer probes the host for a usable text-to-speech command.
func NewCommandSynthesizer() (*CommandSynthesizer, error) {
	argv := findCommand(speechCommands)
	if argv == nil {
		return nil, ErrNoSpeechBackend
	}
	return &CommandSynthesizer{argv: argv}, nil
}

// Speak pronounces the given text.
func (s *CommandSynthesizer) Speak(text string) error {
	return runCommand(s.argv, text)
}

// CommandPlayer plays audio files through the first playback command found
// on the host.
type CommandPlayer struct {
	argv []string
}

// NewCommandPlayer probes the host for a usable audio playback command.
func NewCommandPlayer() (*CommandPlayer, error) {
	argv := findCommand(playerCommands)
	if argv == nil {
		return nil, ErrNoSpeechBackend
	}
	return &CommandPlayer{argv: argv}, nil
}

// Play plays the audio clip at the given path.
func (p *CommandPlayer) Play(ref string) error {
	return runCommand(p.argv, ref)
}

// NullSynthesizer silently discards speech requests.
type NullSynthesizer struct{}

func (NullSynthesizer) Speak(string) error { return nil }

// NullPlayer silently discards playback requests.
type NullPlayer struct{}

func (NullPlayer) Play(string) error { return nil }
