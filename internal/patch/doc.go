// Package patch holds the text transforms behind katzefix.
//
// File contents are treated as opaque text. Nothing here parses TypeScript:
// import detection is a line-prefix check and URL rewriting is a literal
// scanner that only understands quote characters and backslash escapes.
// All functions are pure; reading and writing files is the caller's job.
package patch
