//go:build linux

package term

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios      = unix.TCGETS
	ioctlSetTermios      = unix.TCSETS  // apply immediately
	ioctlSetTermiosFlush = unix.TCSETSF // apply after draining, discard pending input
)
