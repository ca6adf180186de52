// Package lua loads custom stratagems declared in Lua scripts.
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries. A script declares stratagems by calling stratagem:
//
//	stratagem("OrbitalNapalm", {"RIGHT", "RIGHT", "DOWN", "LEFT", "RIGHT", "UP"})
//	stratagem("Strafe", {RIGHT, DOWN, RIGHT}, "Eagle Strafing Run")
//	stratagem{key = "Flag", sequence = {DOWN, UP, DOWN, UP}}
//
// The globals UP, DOWN, LEFT and RIGHT hold the direction tokens.
package lua
