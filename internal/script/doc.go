// Package script decodes a JSON operation script into the block and
// operation calls the Typer's external interface accepts (EnterBlock,
// Analyze, LeaveBlock), standing in for a real IR builder the way a test
// harness or a minimized fuzzer reproducer would. This is deliberately not
// a parser for any JS surface syntax — just a flat, explicit wire format
// for the handful of fields each transfer function family reads.
package script
