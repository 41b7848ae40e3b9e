// Package file provides a TOML file-backed configuration store and the
// typed settings resolution used at startup.
package file
