// Package sfx synthesises the interface sounds and the ambient drone as
// interleaved stereo float32 PCM. It has no playback dependency.
package sfx

import (
	"io"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 8 // two float32 channels
)

// Kind identifies a sound effect.
type Kind int

const (
	Enter Kind = iota
	Exit
	Reject
	Jump
	Land
	RevealInfo
	RevealCuriosity
	CameraSwitch
	kindCount
)

var kindNames = [kindCount]string{
	Enter:           "enter",
	Exit:            "exit",
	Reject:          "reject",
	Jump:            "jump",
	Land:            "land",
	RevealInfo:      "reveal-info",
	RevealCuriosity: "reveal-curiosity",
	CameraSwitch:    "camera",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Generate renders one sound effect. Unknown kinds yield nil.
func Generate(k Kind) []byte {
	switch k {
	case Enter:
		return arpeggio([]float64{392.0, 523.25, 659.25}, 0.06, 0.16, 2.0)
	case Exit:
		return arpeggio([]float64{659.25, 523.25, 392.0}, 0.06, 0.16, 2.0)
	case Reject:
		return genReject()
	case Jump:
		return sweep(0.12, 260, 620, 0.4)
	case Land:
		return genLand()
	case RevealInfo:
		return bell(880, 0.35, 3.5)
	case RevealCuriosity:
		return arpeggio([]float64{1046.5, 1318.5, 1568.0}, 0.045, 0.3, 3.5)
	case CameraSwitch:
		return sweep(0.05, 1400, 900, 0.3)
	}
	return nil
}

// Reader streams a pre-rendered buffer once.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader { return &Reader{data: data} }

func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*frameBytes + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

func render(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// arpeggio plays notes step seconds apart, each ringing into the tail.
func arpeggio(notes []float64, step, tail, modRatio float64) []byte {
	noteLen := int(step * SampleRate)
	total := len(notes)*noteLen + int(tail*SampleRate)
	mix := make([]float64, total)
	for ni, freq := range notes {
		start := ni * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.005, 0.5, 0.05, 0.35)
			mix[start+j] += fm(t, freq, modRatio, 3.0*env) * env * 0.3
		}
	}
	return render(mix)
}

// sweep glides linearly from f0 to f1.
func sweep(dur, f0, f1, gain float64) []byte {
	n := int(dur * SampleRate)
	mix := make([]float64, n)
	phase := 0.0
	for i := range mix {
		p := float64(i) / float64(n)
		freq := f0 + (f1-f0)*p
		phase += 2 * math.Pi * freq / SampleRate
		env := adsr(p, 0.02, 0.5, 0.2, 0.3)
		mix[i] = math.Sin(phase) * env * gain
	}
	return render(mix)
}

func bell(freq, dur, modRatio float64) []byte {
	n := int(dur * SampleRate)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		env := adsr(float64(i)/float64(n), 0.003, 0.6, 0.05, 0.3)
		mix[i] = fm(t, freq, modRatio, 4.0*env)*env*0.28 + math.Sin(2*math.Pi*freq*2*t)*env*0.06
	}
	return render(mix)
}

// genReject: low two-pulse buzz.
func genReject() []byte {
	n := int(0.22 * SampleRate)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		gate := 1.0
		if p > 0.42 && p < 0.55 {
			gate = 0
		}
		env := adsr(p, 0.02, 0.3, 0.6, 0.2) * gate
		mix[i] = fm(t, 140, 1.01, 2.5) * env * 0.4
	}
	return render(mix)
}

// genLand: filtered noise thump.
func genLand() []byte {
	n := int(0.14 * SampleRate)
	mix := make([]float64, n)
	seed := uint64(0x1a9d)
	lp := 0.0
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.9 + lcg(&seed)*0.1
		env := math.Exp(-p * 6)
		mix[i] = (lp*1.6 + math.Sin(2*math.Pi*70*t)*0.5) * env * 0.6
	}
	return render(mix)
}

// Drone is an endless ambient pad: slowly shifting detuned fifths over a
// sub bass. It implements io.Reader for a streaming player.
type Drone struct {
	t     float64
	chord int
}

var droneChords = [][]float64{
	{55.0, 82.41, 110.0, 164.81},  // A
	{49.0, 73.42, 98.0, 146.83},   // G
	{43.65, 65.41, 87.31, 130.81}, // F
	{49.0, 73.42, 98.0, 146.83},   // G
}

const droneBar = 8.0 // seconds per chord

func (d *Drone) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	for i := 0; i < frames; i++ {
		bar := int(d.t / droneBar)
		chord := droneChords[bar%len(droneChords)]
		d.chord = bar % len(droneChords)
		pos := math.Mod(d.t, droneBar) / droneBar
		// crossfade at bar edges
		env := math.Min(1, math.Min(pos*6, (1-pos)*6))
		s := 0.0
		for _, f := range chord {
			vib := 1 + 0.002*math.Sin(2*math.Pi*0.17*d.t+f)
			s += math.Sin(2*math.Pi*f*vib*d.t) * 0.12
			s += math.Sin(2*math.Pi*f*1.003*d.t) * 0.06
		}
		putStereoF32(p, i, softSat(s*env*(0.85+0.15*math.Sin(2*math.Pi*0.05*d.t))))
		d.t += 1.0 / SampleRate
	}
	return frames * frameBytes, nil
}

// Chord returns the index of the chord last rendered.
func (d *Drone) Chord() int { return d.chord }
