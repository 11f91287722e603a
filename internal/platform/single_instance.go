package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minInstancePort = 20000
	maxInstancePort = 39999
	dialTimeout     = time.Second
)

// InstanceGuard holds the single-instance lock. A second launch dials the
// guard's address, which the first instance reports on Activations.
type InstanceGuard struct {
	listener    net.Listener
	address     string
	activations chan struct{}
	closeOnce   sync.Once
	done        chan struct{}
}

// AcquireInstance binds a localhost port derived from appName.
func AcquireInstance(appName string) (*InstanceGuard, error) {
	address := InstanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, address)
	}

	guard := &InstanceGuard{
		listener:    listener,
		address:     address,
		activations: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	go guard.accept()
	return guard, nil
}

// NotifyRunning asks the instance holding the lock to show itself.
func NotifyRunning(appName string) error {
	conn, err := net.DialTimeout("tcp", InstanceAddress(appName), dialTimeout)
	if err != nil {
		return fmt.Errorf("notify running instance: %w", err)
	}
	return conn.Close()
}

// InstanceAddress returns the loopback address used for appName.
func InstanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", instancePort(appName))
}

// Activations delivers one value per second launch. Bursts collapse.
func (guard *InstanceGuard) Activations() <-chan struct{} {
	return guard.activations
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// Release frees the lock. It is safe to call more than once.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.closeOnce.Do(func() {
		close(guard.done)
		err = guard.listener.Close()
	})
	return err
}

func (guard *InstanceGuard) accept() {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			select {
			case <-guard.done:
				return
			default:
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return
		}
		_ = conn.Close()
		select {
		case guard.activations <- struct{}{}:
		default:
		}
	}
}

func instancePort(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxInstancePort - minInstancePort + 1
	return minInstancePort + int(hash.Sum32()%uint32(rangeSize))
}
