// Package watcher keeps the document library in sync with a watched
// directory using filesystem notifications.
package watcher
