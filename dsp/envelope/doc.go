// Package envelope computes and evaluates the automation curves that shape a
// noise buffer into an effect.
//
// [Schedule] produces two parallel [Curve]s: a gain curve (attack ramp,
// randomized "bubble" dips with recovery, release to silence) and a filter
// center-frequency curve that wobbles with each bubble. Points are kept in
// emission order, the same order a host would issue linear-ramp automation
// calls in.
//
// [Curve.Resolve] sorts an emission-ordered curve by time, the way a host
// inserts automation events into its timeline. The sort is stable, so among
// points sharing one time the ramp into that time targets the first and the
// last one wins from that instant on. Bubble recoveries that land after a
// later dip are kept. Points that jittered bubbles push past the release lie
// beyond the rendered buffer.
package envelope
