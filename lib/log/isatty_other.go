//go:build !linux

package log

func isatty(fd uintptr) bool {
	return false
}
