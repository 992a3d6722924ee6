// Package debug provides debug logging for layoutgen.
//
// When enabled via the -debug flag, it writes structured records about
// generation, rendering and exports to a file to help diagnose issues.
package debug
