//go:build linux

package cli

import "golang.org/x/sys/unix"

// Linux spells the termios ioctl requests TCGETS/TCSETS.
const (
	termiosReadRequest  = unix.TCGETS
	termiosWriteRequest = unix.TCSETS
)
