// Package spectrum provides spectrum-domain helpers for analysing rendered
// effects: power extraction from complex FFT bins, the spectral centroid,
// and single-bin Goertzel tracking.
//
// The package does not implement an FFT; callers pass bins from an FFT
// backend such as algo-fft.
package spectrum
