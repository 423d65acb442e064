//go:build !unix && !windows

package filesystem

var symlinkUnsupportedErrnos []error
