package key

import (
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// FD is a ByteSource backed by a file descriptor, normally the terminal.
// Reads are one byte at a time, which is what raw mode with VMIN=1 delivers
// anyway and keeps escape-sequence consumption exact.
type FD struct {
	fd int
}

// NewFD returns a byte source reading from the given descriptor.
func NewFD(fd int) *FD {
	return &FD{fd: fd}
}

// ReadByte reads one byte, blocking until input arrives. A zero-length read
// means the peer closed the stream and is reported as io.EOF. EINTR is
// returned to the caller, which decides whether to retry.
func (f *FD) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(f.fd, buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return buf[0], nil
}

// Poll waits up to timeout for the descriptor to become readable. Hangup
// counts as readable so a closed pipe surfaces as EOF on the next read
// instead of blocking forever.
func (f *FD) Poll(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(f.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0, nil
}
