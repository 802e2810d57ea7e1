// Package gate implements guided-action flows: scripted sequences of
// expected user inputs that must be performed in order before normal command
// processing resumes.
//
// A Queue is the state machine for one flow. It holds an ordered list of
// ExpectedAction values and an index into it. Each observed key sequence,
// gesture or braille input is compared with the action at the index; a match
// runs the action's after effect and advances, a mismatch changes nothing.
// When the last action matches the completion hook fires once and the queue
// is terminal. The held Ctrl+Alt+Z combination closes a flow in any state.
//
// A Monitor owns the single active queue slot and turns queue outcomes into
// pass-through decisions for the host's input handlers:
//
//	mon := gate.NewMonitor(logger)
//	q, err := mon.Create(actions, gate.Hooks{Announce: say})
//	...
//	if mon.OnGesture("swipeUp1") {
//		// forward to normal handling
//	}
//
// Flows are usually described in YAML scripts and loaded with LoadScript or
// LoadDir.
package gate
