package layout

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// ManagerOption is a functional option for configuring a Manager.
type ManagerOption func(*Manager) error

// WithCycleLimit sets how many measure+arrange cycles one pass runs before
// deferring remaining work. Default is 3. Must be at least 1.
func WithCycleLimit(n int) ManagerOption {
	return func(m *Manager) error {
		if n < 1 {
			return fmt.Errorf("cycle limit must be at least 1, got %d", n)
		}
		m.cycleLimit = n
		return nil
	}
}

// WithNodeCap sets how many nodes a single drain processes before
// deferring. Default is 100. Must be at least 1.
func WithNodeCap(n int) ManagerOption {
	return func(m *Manager) error {
		if n < 1 {
			return fmt.Errorf("node cap must be at least 1, got %d", n)
		}
		m.nodeCap = n
		return nil
	}
}

// WithRevisitCap sets how many times one node may be remeasured or
// rearranged within a single pass before its invalidations are dropped as
// a cycle. Default is 10. Must be at least 1.
func WithRevisitCap(n int) ManagerOption {
	return func(m *Manager) error {
		if n < 1 {
			return fmt.Errorf("revisit cap must be at least 1, got %d", n)
		}
		m.revisitCap = n
		return nil
	}
}

// WithLogger sets the diagnostics logger for the manager.
// Default is log.Default().
func WithLogger(logger *log.Logger) ManagerOption {
	return func(m *Manager) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		m.logger = logger
		return nil
	}
}

// WithCycleHandler sets a callback invoked whenever the cycle breaker drops
// an invalidation. Use this to surface layout feedback loops to the host
// instead of relying on the warning log.
func WithCycleHandler(fn func(CycleEvent)) ManagerOption {
	return func(m *Manager) error {
		m.onCycle = fn
		return nil
	}
}

// DispatcherOption is a functional option for configuring a Dispatcher.
type DispatcherOption func(*Dispatcher) error

// WithFaultHandler sets the sink for faults recovered from dispatched
// jobs. By default faults are logged at error level.
func WithFaultHandler(fn func(error)) DispatcherOption {
	return func(d *Dispatcher) error {
		if fn == nil {
			return fmt.Errorf("fault handler must not be nil")
		}
		d.onFault = fn
		return nil
	}
}

// WithDispatcherLogger sets the diagnostics logger for the dispatcher.
// Default is log.Default().
func WithDispatcherLogger(logger *log.Logger) DispatcherOption {
	return func(d *Dispatcher) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		d.logger = logger
		return nil
	}
}
