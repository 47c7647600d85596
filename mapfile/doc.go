// Package mapfile loads shapemap field declarations from versioned YAML
// mapping documents and exposes them as a shapemap.Provider. Transform
// locators are referenced by name and resolved against a caller-supplied
// function table at provider construction time.
package mapfile
