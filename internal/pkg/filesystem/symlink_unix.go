//go:build unix

package filesystem

import "syscall"

var symlinkUnsupportedErrnos = []error{syscall.EPERM, syscall.ENOTSUP, syscall.EOPNOTSUPP, syscall.ENOSYS}
