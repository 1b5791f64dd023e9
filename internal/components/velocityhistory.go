package components

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// VelocitySample is one tracked motion reading.
type VelocitySample struct {
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3
	Time            float64 // seconds
}

// VelocityHistory is a time-windowed, time-ordered buffer of motion samples.
// There is no capacity cap; the window alone bounds it to roughly
// window/frameTime entries.
type VelocityHistory struct {
	Window  float64
	samples []VelocitySample
}

func NewVelocityHistory(window float64) *VelocityHistory {
	return &VelocityHistory{Window: window}
}

// Add appends a sample taken at now and evicts everything older than the window.
// A sample older than the newest retained one is dropped to keep the order monotonic.
func (h *VelocityHistory) Add(v, w rl.Vector3, now float64) {
	if n := len(h.samples); n > 0 && now < h.samples[n-1].Time {
		return
	}
	h.samples = append(h.samples, VelocitySample{Velocity: v, AngularVelocity: w, Time: now})
	h.Evict(now)
}

// Evict drops samples whose age relative to now exceeds the window.
func (h *VelocityHistory) Evict(now float64) {
	drop := 0
	for drop < len(h.samples) && now-h.samples[drop].Time > h.Window {
		drop++
	}
	if drop == 0 {
		return
	}
	// Shift down so the backing array doesn't grow without bound
	n := copy(h.samples, h.samples[drop:])
	h.samples = h.samples[:n]
}

func (h *VelocityHistory) Len() int {
	return len(h.samples)
}

// Samples returns a copy of the retained samples, oldest first.
func (h *VelocityHistory) Samples() []VelocitySample {
	out := make([]VelocitySample, len(h.samples))
	copy(out, h.samples)
	return out
}

func (h *VelocityHistory) Clear() {
	h.samples = h.samples[:0]
}

func linear(s VelocitySample) rl.Vector3  { return s.Velocity }
func angular(s VelocitySample) rl.Vector3 { return s.AngularVelocity }

// Average is the mean linear velocity, zero when empty.
func (h *VelocityHistory) Average() rl.Vector3 {
	return mean(h.samples, linear)
}

// AverageAngular is the mean angular velocity, zero when empty.
func (h *VelocityHistory) AverageAngular() rl.Vector3 {
	return mean(h.samples, angular)
}

// PeakAverage averages the k fastest linear samples. k is clamped to the
// buffer length; an empty buffer or k <= 0 yields zero.
func (h *VelocityHistory) PeakAverage(k int) rl.Vector3 {
	return peakMean(h.samples, k, linear)
}

// PeakAverageAngular ranks samples by angular speed independently of linear speed.
func (h *VelocityHistory) PeakAverageAngular(k int) rl.Vector3 {
	return peakMean(h.samples, k, angular)
}

func mean(samples []VelocitySample, pick func(VelocitySample) rl.Vector3) rl.Vector3 {
	if len(samples) == 0 {
		return rl.Vector3{}
	}
	var sum rl.Vector3
	for _, s := range samples {
		sum = rl.Vector3Add(sum, pick(s))
	}
	return rl.Vector3Scale(sum, 1/float32(len(samples)))
}

func peakMean(samples []VelocitySample, k int, pick func(VelocitySample) rl.Vector3) rl.Vector3 {
	if len(samples) == 0 || k <= 0 {
		return rl.Vector3{}
	}
	vs := make([]rl.Vector3, len(samples))
	for i, s := range samples {
		vs[i] = pick(s)
	}
	sort.SliceStable(vs, func(i, j int) bool {
		return rl.Vector3Length(vs[i]) > rl.Vector3Length(vs[j])
	})
	if k > len(vs) {
		k = len(vs)
	}
	var sum rl.Vector3
	for _, v := range vs[:k] {
		sum = rl.Vector3Add(sum, v)
	}
	return rl.Vector3Scale(sum, 1/float32(k))
}
