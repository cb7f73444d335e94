/*
Package schema defines the data model shared by the client: messages,
conversations, models, usage statistics, tool definitions and the
snapshot type delivered to streaming callbacks.
*/
package schema

import "encoding/json"

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Stringify returns the indented JSON representation of v, for debugging.
func Stringify[T any](v T) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
