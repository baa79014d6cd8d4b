// Package analytics derives every aggregate the tracker displays from a
// snapshot of an owner's transactions. Functions here are pure: they never
// mutate their input, never return errors and keep no state between calls.
// Calendar arithmetic happens in the location passed in (or the location of
// now), never in the process default.
package analytics
