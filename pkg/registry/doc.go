// Package registry provides a generic, type-safe registry for values looked
// up by name, such as the operation kinds a configuration may declare.
// Registration usually happens in init() functions.
package registry
