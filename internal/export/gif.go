package export

import (
	"errors"
	"image"
	"image/gif"
	"io"
	"os"
	"sync"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

// DefaultMaxFrames bounds the memory a recording may hold.
const DefaultMaxFrames = 600

var ErrNoFrames = errors.New("export: no frames recorded")

// Recorder captures every Every-th committed field as a GIF frame. It is a
// dynamo.Observer, so attach it to a simulator and it runs after each step.
type Recorder struct {
	Every     int
	Scale     int
	Delay     int // hundredths of a second between frames
	MaxFrames int

	mu     sync.Mutex
	frames []*image.Paletted
	active bool
}

func NewRecorder(every, scale int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{
		Every:     every,
		Scale:     scale,
		Delay:     2,
		MaxFrames: DefaultMaxFrames,
		active:    true,
	}
}

func (r *Recorder) OnStep(f *dynamo.Field, t int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || t%r.Every != 0 {
		return
	}
	if r.MaxFrames > 0 && len(r.frames) >= r.MaxFrames {
		return
	}
	r.frames = append(r.frames, Paletted(f, r.Scale))
}

// SetActive pauses or resumes capture without dropping frames.
func (r *Recorder) SetActive(on bool) {
	r.mu.Lock()
	r.active = on
	r.mu.Unlock()
}

func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.frames = nil
	r.mu.Unlock()
}

func (r *Recorder) Encode(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

var _ dynamo.Observer = (*Recorder)(nil)
