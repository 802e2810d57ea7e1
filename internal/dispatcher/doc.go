// Package dispatcher routes screen reader commands to handlers and tree
// navigation.
//
// Dispatch is a total function over command.Command. It returns whether the
// host should also apply its own default handling of the input.
//
// # Dispatch Order
//
// When a command is dispatched:
//
//  1. Pre-dispatch hooks run. A denial (for example the RestrictionHook in
//     kiosk mode) returns true without side effects.
//  2. The focus-loss check resynchronizes an invalid range to the host focus,
//     or clears it when nothing has focus.
//  3. State-only commands run their registered handler and never read the
//     current range.
//  4. Without a valid current range, "no current focus" is announced (unless
//     TalkBack is active) and the input is propagated.
//  5. Inside a focused text field, character, word, line and edge moves are
//     sent to the field as native key presses.
//  6. Range actions run their registered handler.
//  7. Navigation commands are planned from their command.Descriptor and
//     executed.
//  8. The "ignore range changes" suppression is released, post-dispatch hooks
//     run and metrics are recorded.
//
// # Navigation
//
// Navigation is two-phase. Plan resolves the target without touching state;
// Execute makes it current and describes it. When the Scroller reports that
// the target needs scrolling first, Dispatch keeps the plan pending and
// returns false. The caller waits on the settle channel from Pending and then
// calls ExecutePending. Dispatch is never re-entered.
//
// A search that finds nothing plays the wrap-edge earcon. Commands that do
// not wrap then announce their error message. Commands that wrap restart
// from the first or last match within the nearest root or editable root, and
// the wrap earcon plays again when the wrapped target is applied.
//
// # Handlers
//
// Handlers implement handler.Handler and are registered per command in the
// Registry. The settings and actions handler sets are registered by New.
package dispatcher
