//go:build linux

package reactor

import (
	"errors"
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock wraps EAGAIN/EWOULDBLOCK from a non-blocking read or
// write, distinguishing "no data right now" from a real I/O error.
var ErrWouldBlock = errors.New("reactor: operation would block")

// Stream is a non-blocking, fd-backed reader/writer shared by File, Pipe
// and Socket. Reads and writes never block the calling goroutine; a
// would-block condition is reported as ErrWouldBlock rather than
// retried internally, so callers can register the fd with a Poller and
// retry once it reports readiness.
type Stream struct {
	fd int
}

func newStream(fd int) Stream { return Stream{fd: fd} }

// FD returns the underlying file descriptor.
func (s Stream) FD() int { return s.fd }

// Read reads into p. A return of (0, nil) on a stream that previously
// returned data means EOF, matching io.Reader's convention.
func (s Stream) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, ErrWouldBlock
		}
		return 0, err
	}
	return n, nil
}

// Write writes p, possibly partially.
func (s Stream) Write(p []byte) (int, error) {
	n, err := unix.Write(s.fd, p)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, ErrWouldBlock
		}
		return 0, err
	}
	return n, nil
}

// Close closes the underlying file descriptor.
func (s Stream) Close() error {
	return unix.Close(s.fd)
}

// File is a non-blocking wrapper over a regular file or device fd.
type File struct {
	Stream
}

// OpenFile opens path with the given flags/perm, forcing O_NONBLOCK.
func OpenFile(path string, flags int, perm uint32) (*File, error) {
	fd, err := unix.Open(path, flags|unix.O_NONBLOCK, perm)
	if err != nil {
		return nil, err
	}
	return &File{Stream: newStream(fd)}, nil
}

// ReadAt reads into p starting at offset off without moving the file's
// read/write position, for seekable files (pread).
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	n, err := unix.Pread(f.fd, p, off)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, ErrWouldBlock
		}
		return 0, err
	}
	return n, nil
}

// WriteAt writes p starting at offset off without moving the file's
// read/write position, for seekable files (pwrite).
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	n, err := unix.Pwrite(f.fd, p, off)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, ErrWouldBlock
		}
		return 0, err
	}
	return n, nil
}

// Pipe is a connected pair of non-blocking stream ends.
type Pipe struct {
	Read  *File
	Write *File
}

// OpenPipe creates a non-blocking pipe via pipe2.
func OpenPipe() (*Pipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	return &Pipe{
		Read:  &File{Stream: newStream(fds[0])},
		Write: &File{Stream: newStream(fds[1])},
	}, nil
}

// Socket is a non-blocking wrapper over a socket fd.
type Socket struct {
	Stream
}

// NewStreamSocket creates a non-blocking TCP-style socket (domain/typ as
// the unix.AF_*/unix.SOCK_* constants, e.g. unix.AF_INET, unix.SOCK_STREAM).
func NewStreamSocket(domain, typ, proto int) (*Socket, error) {
	fd, err := unix.Socket(domain, typ|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, proto)
	if err != nil {
		return nil, err
	}
	return &Socket{Stream: newStream(fd)}, nil
}

// Bind binds the socket to sa.
func (s *Socket) Bind(sa unix.Sockaddr) error { return unix.Bind(s.fd, sa) }

// Listen marks the socket as accepting connections.
func (s *Socket) Listen(backlog int) error { return unix.Listen(s.fd, backlog) }

// Accept accepts a pending connection, returning a non-blocking Socket
// for it. Returns ErrWouldBlock if none is pending.
func (s *Socket) Accept() (*Socket, unix.Sockaddr, error) {
	fd, sa, err := unix.Accept4(s.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return nil, nil, ErrWouldBlock
		}
		return nil, nil, err
	}
	return &Socket{Stream: newStream(fd)}, sa, nil
}

// Connect initiates a connection to sa. A non-blocking connect in
// progress is reported as ErrWouldBlock; the caller should wait for the
// socket to become writable and then check SO_ERROR.
func (s *Socket) Connect(sa unix.Sockaddr) error {
	err := unix.Connect(s.fd, sa)
	if err != nil {
		if errors.Is(err, unix.EINPROGRESS) {
			return ErrWouldBlock
		}
		return err
	}
	return nil
}

// Shutdown shuts down part or all of a full-duplex connection (how is
// one of unix.SHUT_RD/SHUT_WR/SHUT_RDWR).
func (s *Socket) Shutdown(how int) error { return unix.Shutdown(s.fd, how) }

// SetLinger sets SO_LINGER.
func (s *Socket) SetLinger(onoff, linger int) error {
	return unix.SetsockoptLinger(s.fd, unix.SOL_SOCKET, unix.SO_LINGER, &unix.Linger{
		Onoff:  int32(onoff),
		Linger: int32(linger),
	})
}

// SetReadTimeout sets SO_RCVTIMEO: a subsequent blocking-style read gives
// up after d, reported as a timeout error rather than blocking forever.
// d == 0 clears the timeout. Since this package's sockets are always
// non-blocking, the timeout only bounds how long the kernel waits for
// data on operations that would otherwise be retried by the caller via a
// Poller; it does not change a Read's non-blocking contract.
func (s *Socket) SetReadTimeout(d time.Duration) error {
	return unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, durationToTimeval(d))
}

// SetWriteTimeout sets SO_SNDTIMEO, the write-side analogue of
// SetReadTimeout.
func (s *Socket) SetWriteTimeout(d time.Duration) error {
	return unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, unix.SO_SNDTIMEO, durationToTimeval(d))
}

func durationToTimeval(d time.Duration) *unix.Timeval {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return &tv
}

// LocalAddr returns the address the socket is bound to.
func (s *Socket) LocalAddr() (unix.Sockaddr, error) {
	return unix.Getsockname(s.fd)
}

// RemoteAddr returns the address of the socket's peer.
func (s *Socket) RemoteAddr() (unix.Sockaddr, error) {
	return unix.Getpeername(s.fd)
}

var _ io.ReadWriteCloser = Stream{}
