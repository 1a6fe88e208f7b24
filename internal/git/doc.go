// Package git reads commit history of the repository holding the exported
// notes. It is used as a fallback source for page modification dates.
package git
