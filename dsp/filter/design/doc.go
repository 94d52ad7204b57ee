// Package design provides RBJ-style biquad coefficient designers for the
// filters of the effect chain: a band-pass with 0 dB peak gain and a
// peaking EQ.
//
// Frequencies at or above Nyquist follow WebAudio: the band-pass goes
// silent and the peaking filter passes the signal unchanged.
package design
