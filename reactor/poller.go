//go:build linux

// Package reactor implements the readiness-based I/O layer: an epoll
// multiplexer, a timerfd-backed timer, non-blocking stream wrappers, and
// a composable copy helper driven by size policies.
package reactor

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/coredrift/taskrt/metrics"
)

var (
	ErrAlreadyRegistered = errors.New("reactor: fd already registered")
	ErrNotRegistered     = errors.New("reactor: fd not registered")
	ErrPollerClosed      = errors.New("reactor: poller closed")
)

// Poller is an epoll-backed readiness multiplexer.
type Poller struct {
	epfd int

	mu   sync.RWMutex
	tags map[int32]Tag

	closed bool

	polls metrics.Histogram
}

// Open creates the underlying epoll instance, reporting no poll metrics.
func Open() (*Poller, error) {
	return OpenWithMetrics(metrics.NewNoopProvider())
}

// OpenWithMetrics creates the underlying epoll instance and records each
// Poll wake as a sample on provider's NameReactorPolls histogram (the
// number of readiness events the wake produced), so a caller reporting
// through the same Provider as a pool.Pool sees reactor activity
// alongside worker activity.
func OpenWithMetrics(provider metrics.Provider) (*Poller, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &Poller{
		epfd:  fd,
		tags:  make(map[int32]Tag),
		polls: provider.Histogram(metrics.NameReactorPolls),
	}, nil
}

// Add registers fd for the readiness conditions in mask, associating tag
// with its reported events.
func (p *Poller) Add(fd int, mask EventMask, tag Tag) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPollerClosed
	}
	if _, ok := p.tags[int32(fd)]; ok {
		return ErrAlreadyRegistered
	}
	ev := &unix.EpollEvent{Events: toEpoll(mask), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		return err
	}
	p.tags[int32(fd)] = tag
	return nil
}

// Modify changes the readiness conditions monitored for fd.
func (p *Poller) Modify(fd int, mask EventMask, tag Tag) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPollerClosed
	}
	if _, ok := p.tags[int32(fd)]; !ok {
		return ErrNotRegistered
	}
	ev := &unix.EpollEvent{Events: toEpoll(mask), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, ev); err != nil {
		return err
	}
	p.tags[int32(fd)] = tag
	return nil
}

// Remove stops monitoring fd.
func (p *Poller) Remove(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPollerClosed
	}
	if _, ok := p.tags[int32(fd)]; !ok {
		return ErrNotRegistered
	}
	delete(p.tags, int32(fd))
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// Poll blocks up to timeout for readiness events, appending each to buf
// (reusing its backing array), and returns the events observed. A
// negative timeout blocks indefinitely; zero returns immediately.
func (p *Poller) Poll(buf []Event, timeout time.Duration) ([]Event, error) {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return nil, ErrPollerClosed
	}

	raw := make([]unix.EpollEvent, cap(buf))
	if len(raw) == 0 {
		raw = make([]unix.EpollEvent, 64)
	}

	n, err := unix.EpollWait(p.epfd, raw, timeoutMs(timeout))
	if err != nil {
		if err == unix.EINTR {
			return buf[:0], nil
		}
		return nil, err
	}

	out := buf[:0]
	p.mu.RLock()
	for i := 0; i < n; i++ {
		fd := raw[i].Fd
		tag, ok := p.tags[fd]
		if !ok {
			continue
		}
		out = append(out, Event{FD: fd, Mask: fromEpoll(raw[i].Events), Tag: tag})
	}
	p.mu.RUnlock()

	p.polls.Record(float64(len(out)))

	return out, nil
}

// Close releases the epoll file descriptor.
func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return unix.Close(p.epfd)
}

func timeoutMs(d time.Duration) int {
	if d < 0 {
		return -1
	}
	ms := d.Milliseconds()
	if ms > int64(^uint32(0)>>1) {
		ms = int64(^uint32(0) >> 1)
	}
	return int(ms)
}

func toEpoll(mask EventMask) uint32 {
	var e uint32
	if mask&Readable != 0 {
		e |= unix.EPOLLIN
	}
	if mask&Writable != 0 {
		e |= unix.EPOLLOUT
	}
	if mask&ReadHangup != 0 {
		e |= unix.EPOLLRDHUP
	}
	if mask&Priority != 0 {
		e |= unix.EPOLLPRI
	}
	if mask&Errored != 0 {
		e |= unix.EPOLLERR
	}
	if mask&Hangup != 0 {
		e |= unix.EPOLLHUP
	}
	if mask&EdgeTriggered != 0 {
		e |= unix.EPOLLET
	}
	if mask&OneShot != 0 {
		e |= unix.EPOLLONESHOT
	}
	return e
}

func fromEpoll(e uint32) EventMask {
	var mask EventMask
	if e&unix.EPOLLIN != 0 {
		mask |= Readable
	}
	if e&unix.EPOLLOUT != 0 {
		mask |= Writable
	}
	if e&unix.EPOLLRDHUP != 0 {
		mask |= ReadHangup
	}
	if e&unix.EPOLLPRI != 0 {
		mask |= Priority
	}
	if e&unix.EPOLLERR != 0 {
		mask |= Errored
	}
	if e&unix.EPOLLHUP != 0 {
		mask |= Hangup
	}
	return mask
}
