// Package arith implements a small expression language with variables and
// assignment, evaluated in IEEE double precision.
//
// A line like "y = 1 + 2 * x" parses into a syntax tree and evaluates
// against an Env, a persistent mapping from variable names to values.
// Assignment stores into the Env and yields the stored value; the compound
// forms +=, -=, *=, and /= combine with the variable's current value first.
// Every other expression is a pure read, and names that were never assigned
// read as 0.
//
// Operators at one precedence level group from the right: "10 - 3 - 2" is
// "10 - (3 - 2)". Multiplication, division, exponentiation, and the logical
// operators && and || share a single level binding tighter than + and -.
//
// Evaluation never fails. Division by zero and friends produce IEEE
// infinities and NaN rather than errors.
package arith
