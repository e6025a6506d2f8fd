// Package anchor derives the in-page fragment ids used for documented functions.
package anchor

import "strconv"

// For returns the anchor for a function with the given name and arity.
//
// Functions without parameters keep their bare name; any other arity is
// appended after a dash so overloads ("add/1", "add/2") get distinct ids.
func For(name string, params int) string {
	if params == 0 {
		return name
	}
	return name + "-" + strconv.Itoa(params)
}
