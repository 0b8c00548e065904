package flock

import (
	"syscall"
)

type acquireFailedError string

// ErrLocked indicates TryAcquire failed because the lock was already held.
var ErrLocked error = acquireFailedError("already locked")

func (t acquireFailedError) Error() string {
	return string(t)
}

// Lock implements flock syscall based cross-process locking. It guards
// writes to files shared between build invocations, such as the snapshot
// artifact when multiple entry documents target one output directory.
type Lock interface {
	Acquire() error
	TryAcquire() error
	Release() error
}

type defaultLock struct {
	filename string
	fd       int
}

// New returns a new lock around the given file.
func New(filename string) Lock {
	return &defaultLock{filename: filename}
}

// Acquire attempts acquiring the lock. Will block until the lock becomes available.
func (l *defaultLock) Acquire() error {
	if err := l.open(); err != nil {
		return err
	}
	return syscall.Flock(l.fd, syscall.LOCK_EX)
}

// TryAcquire attempts to acquire the lock. Returns ErrLocked immediately
// if the lock cannot be acquired.
func (l *defaultLock) TryAcquire() error {
	if err := l.open(); err != nil {
		return err
	}
	err := syscall.Flock(l.fd, syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		syscall.Close(l.fd)
	}
	if err == syscall.EWOULDBLOCK {
		return ErrLocked
	}
	return err
}

// Release releases the flock.
func (l *defaultLock) Release() error {
	return syscall.Close(l.fd)
}

func (l *defaultLock) open() error {
	fd, err := syscall.Open(l.filename, syscall.O_CREAT|syscall.O_RDONLY, 0600)
	if err != nil {
		return err
	}
	l.fd = fd
	return nil
}
