//go:build linux

package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// Clock selects which clock a Timer is driven from.
type Clock int

const (
	// SystemClock tracks wall-clock time (CLOCK_REALTIME) and jumps if
	// the system clock is stepped.
	SystemClock Clock = iota
	// SteadyClock is monotonic and unaffected by wall-clock adjustments
	// (CLOCK_MONOTONIC).
	SteadyClock
)

// Timer is a timerfd-backed timer: a readable file descriptor that a
// Poller can watch, rather than a goroutine-based time.Timer.
type Timer struct {
	fd      int
	clockid int
}

// OpenTimer creates a timer driven by clock.
func OpenTimer(clock Clock) (*Timer, error) {
	var clockid int
	switch clock {
	case SystemClock:
		clockid = unix.CLOCK_REALTIME
	default:
		clockid = unix.CLOCK_MONOTONIC
	}
	fd, err := unix.TimerfdCreate(clockid, unix.TFD_CLOEXEC|unix.TFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	return &Timer{fd: fd, clockid: clockid}, nil
}

// FD returns the timer's file descriptor, for registration with a
// Poller via FDTag(int32(t.FD())).
func (t *Timer) FD() int { return t.fd }

// SetTime arms the timer to first fire 'after' the current reading of
// the timer's own clock, then every 'period' thereafter. A zero period
// arms a one-shot timer. The first expiration is computed as an
// absolute deadline on the timer's clock (via clock_gettime) rather
// than from time.Now(), since CLOCK_MONOTONIC's epoch is not wall-clock
// time and time.Time cannot express it directly.
func (t *Timer) SetTime(after time.Duration, period time.Duration) error {
	var now unix.Timespec
	if err := unix.ClockGettime(t.clockid, &now); err != nil {
		return err
	}
	deadline := now.Nano() + after.Nanoseconds()

	spec := unix.ItimerSpec{
		Value:    unix.NsecToTimespec(deadline),
		Interval: unix.NsecToTimespec(period.Nanoseconds()),
	}
	return unix.TimerfdSettime(t.fd, unix.TFD_TIMER_ABSTIME, &spec, nil)
}

// Drain reads and discards the expiration count, clearing the timer's
// readability until it next fires. Call this after a Poller reports the
// timer fd readable.
func (t *Timer) Drain() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(t.fd, buf[:])
	if err != nil {
		return 0, err
	}
	if n != 8 {
		return 0, nil
	}
	count := uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
		uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
	return count, nil
}

// Close releases the timer's file descriptor.
func (t *Timer) Close() error {
	return unix.Close(t.fd)
}
