// Package preflight validates filesystem prerequisites before a run mutates
// anything.
package preflight
