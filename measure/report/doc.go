// Package report summarizes a rendered effect: level statistics in the time
// domain, BS.1770 integrated loudness and the spectral centroid of a
// Welch-averaged power spectrum.
//
// It backs the CLI's -analyze flag.
package report
