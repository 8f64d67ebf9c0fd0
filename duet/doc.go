// Package duet implements the tablet duet interpreter.
//
// Two copies of the same program run side by side. Each has its own
// twenty-six registers (a-z, with 'p' preset to the program id), its own
// instruction pointer and an unbounded input queue. A program is advanced
// one instruction at a time with Step, which reports whether it is still
// running, produced a value, is waiting for input or has terminated.
//
// Pair drives two programs round-robin in a single goroutine, delivering
// every sent value to the peer's queue before the peer is stepped, and
// stops once both programs are blocked in the same round.
package duet
