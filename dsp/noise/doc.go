// Package noise generates the raw colored-noise buffers that comedic effects
// are shaped from.
//
// Each sample blends a leaky-integrated ("brown") value with the white draw
// that fed it:
//
//	brown[i] = (brown[i-1] + k*white[i]) / (1 + k),  brown[-1] = 0, k = 0.02
//	out[i]   = (1-wetness)*brown[i] + wetness*white[i]
//
// The recurrence is an explicit sequential fold. Samples depend on the whole
// history, so a buffer cannot be produced out of order without replaying the
// draws that precede it.
package noise
