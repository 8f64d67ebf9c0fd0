// Package assembunny implements the Easter Bunny headquarters interpreter.
//
// Programs run over four registers (a-d). The 'tgl' instruction rewrites
// another instruction of the running program in place, so a Machine owns
// a private copy of its program. The 'out' instruction transmits a clock
// signal that must alternate 0, 1, 0, 1 ...; a Machine reports when the
// signal breaks, or when it has provably settled into a repeating cycle.
package assembunny
