// Package sign computes the sign of an arbitrary host value.
//
// A value does not have to be numeric. It only has to answer three
// comparisons against a zero produced by its host: greater-than, less-than
// and equal-to. Each comparison may itself fail. The evaluator reduces the
// three outcomes to one of:
//
//   - a determinate sign (-1, 0, +1) when exactly one comparison holds,
//   - NaN when all three are false and the value is unequal to itself,
//   - an *ArgumentError otherwise (a failed comparison, a contradiction such
//     as "x > 0 and x < 0", or a value that equals itself but is not ordered
//     against zero).
//
// Callers may attach a preprocess hook (which can replace the input or
// override the result outright) and a fallback value that is returned in
// place of any ArgumentError.
//
// The package knows nothing about concrete runtimes. Hosts (plain Go values,
// Lua, Mangle constants) implement the Host interface.
package sign
