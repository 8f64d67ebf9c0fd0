// Package device implements the six register wrist device.
//
// The device has sixteen opcodes over six unsigned registers (r0-r5). One
// register may be bound to the instruction pointer with an '#ip N'
// declaration: before each instruction the pointer is written into the
// bound register, and after it the register is read back (plus one) as the
// next pointer, so programs can compute their own jumps.
//
// Besides running a program to completion, the package can sample a
// register every time a given instruction is reached (to find the values
// that make a program halt), and can work out which opcode number is which
// from before/after register samples.
package device
