// Package navstate owns the navigation range: where the user currently is in
// the accessibility tree.
//
// A State is constructed explicitly and passed to the components that need
// it. All range changes go through SetCurrentRange so the side effects of a
// change (thawing braille, observer notification, accessibility focus and
// focus-position persistence) run exactly once and in a fixed order.
//
// Ranges are revalidated on every read; an invalidated range is reported as
// nil but kept, so RestoreLastValidRangeIfNeeded can fall back to the
// previous range.
package navstate
