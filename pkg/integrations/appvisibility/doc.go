// Package appvisibility queries the Windows AppVisibility COM service for
// the state of the start screen.
package appvisibility
