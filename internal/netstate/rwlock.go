// Package netstate provides the shared-state holders used by the
// controller and target processes: a fair reader/writer lock, the
// node admission registry built on it, a single-writer target
// position cell, and a single-writer distance cell.
package netstate

import "sync"

// semaphore is a counting semaphore built on a buffered channel:
// release sends a token, acquire blocks until one is available. It
// starts at count zero, so the first acquire blocks until a release.
type semaphore chan struct{}

func newSemaphore() semaphore {
	return make(semaphore, 1<<20)
}

func (s semaphore) acquire() { <-s }
func (s semaphore) release() { s <- struct{}{} }

// FairRWLock is a mutual-exclusion primitive for many-reader/few-writer
// workloads where neither readers nor writers are starved: a writer
// arriving while readers or a writer are active is queued behind them,
// and a reader arriving while a writer is active or queued is queued
// behind it. When a writer finishes, all queued readers are released
// as a batch; otherwise one queued writer is released. When the last
// active reader finishes, one queued writer is released if any is
// waiting.
type FairRWLock struct {
	mu sync.Mutex

	synchR semaphore
	synchW semaphore

	blockedR, blockedW int
	runningR, runningW int
}

// NewFairRWLock constructs a FairRWLock ready for use.
func NewFairRWLock() *FairRWLock {
	return &FairRWLock{
		synchR: newSemaphore(),
		synchW: newSemaphore(),
	}
}

// RLock blocks until the calling goroutine may proceed as a reader.
func (l *FairRWLock) RLock() {
	l.mu.Lock()
	if l.runningW > 0 || l.blockedW > 0 {
		l.blockedR++
	} else {
		l.runningR++
		l.synchR.release()
	}
	l.mu.Unlock()

	l.synchR.acquire()
}

// RUnlock releases a reader previously acquired with RLock.
func (l *FairRWLock) RUnlock() {
	l.mu.Lock()
	l.runningR--
	if l.blockedW > 0 && l.runningR == 0 {
		l.blockedW--
		l.runningW++
		l.synchW.release()
	}
	l.mu.Unlock()
}

// Lock blocks until the calling goroutine may proceed as the sole writer.
func (l *FairRWLock) Lock() {
	l.mu.Lock()
	if l.runningR > 0 || l.runningW > 0 {
		l.blockedW++
	} else {
		l.runningW++
		l.synchW.release()
	}
	l.mu.Unlock()

	l.synchW.acquire()
}

// Unlock releases the writer previously acquired with Lock.
func (l *FairRWLock) Unlock() {
	l.mu.Lock()
	l.runningW--
	if l.blockedR > 0 {
		for l.blockedR > 0 {
			l.blockedR--
			l.runningR++
			l.synchR.release()
		}
	} else if l.blockedW > 0 {
		l.blockedW--
		l.runningW++
		l.synchW.release()
	}
	l.mu.Unlock()
}
