// Package render prints catalog views to a terminal: result headers with the
// active filter labels, poem tables, poem text with word coordinates and
// morphological analyses.
package render
