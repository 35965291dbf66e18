//go:build !linux

package watcher

// Without statfs magic numbers we assume a local filesystem; fsnotify's own
// failure paths still push the watcher into polling when events misbehave.
func statfsType(string) FilesystemType {
	return FSTypeLocal
}
