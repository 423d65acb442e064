//go:build windows

package filesystem

import "syscall"

const errorPrivilegeNotHeld syscall.Errno = 1314

var symlinkUnsupportedErrnos = []error{errorPrivilegeNotHeld, syscall.EWINDOWS}
