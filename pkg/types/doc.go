// Package types defines the Store and Backend interfaces, the closed set of
// native value kinds a store accepts, configuration, and the standard errors
// for the shelf storage layer.
package types
