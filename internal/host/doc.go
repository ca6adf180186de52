// Package host drives an Application over a line protocol.
//
// A host process (a Stream Deck plugin, a shell script, a test) writes one
// command per line and reads one response per line:
//
//	dir UP mod      -> partial Reinforce,SOSBeacon
//	dir DOWN        -> exact Resupply
//	                -> fired Resupply
//	mod down LEFTCTRL
//	hero            -> hero on
//	fire Reinforce  -> fired Reinforce | busy Reinforce | error ...
//	set key_delay=0.05 hold_modifier=false
//	save            -> ok (writes the settings file)
//	get             -> setting key_delay=0.05 ... ok
//	list            -> stratagem Reinforce UP,DOWN,RIGHT,LEFT,UP Reinforce ... ok
//	quit
//
// Fires run in their own goroutine, so triggers that arrive during a replay
// are answered with busy instead of queueing.
package host
