// Package calc implements a calculator for the notation people type into
// calculator apps.
//
// Input such as "2(3+4)", "5!", "√9", "50%" or "2^3^2" is first normalized
// into a canonical form, e.g. "2*(3+4)" or "fact(5)", then tokenized, parsed
// into a tree, and evaluated with float64 arithmetic against a fixed table of
// functions and constants. Nothing outside that table can be called.
//
// A Context carries the angle mode used by trigonometric functions and the
// previous answer, which expressions can refer to as "Ans". A Calculator
// combines a Context with a History of formatted results.
package calc
