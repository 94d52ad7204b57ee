// Package random provides the uniform random draws used by noise generation
// and envelope scheduling.
//
// Consumers depend on the single-method [Source] interface instead of a
// global generator so that tests can replay a fixed sequence of draws with
// [NewSequence] and production code can seed reproducible streams with [New].
package random
