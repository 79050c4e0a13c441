package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/code-payments/code-token-manager/pkg/config"
)

var errDeveloperInduced = errors.New("in memory config: developer induced error")

// Config is an in memory config used for testing and for values fixed in
// code. A nil value means no value is set.
type Config struct {
	mu       sync.RWMutex
	value    interface{}
	induced  bool
	shutdown bool
}

func NewConfig(value interface{}) *Config {
	return &Config{value: value}
}

// Get implements Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.induced:
		return nil, errDeveloperInduced
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements Config.Shutdown
func (c *Config) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	c.mu.Unlock()
}

func (c *Config) SetValue(value interface{}) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
}

// ClearValue results in config.ErrNoValue on subsequent Get calls
func (c *Config) ClearValue() {
	c.SetValue(nil)
}

// InduceErrors makes Get fail until StopInducingErrors is called
func (c *Config) InduceErrors() {
	c.setInduced(true)
}

func (c *Config) StopInducingErrors() {
	c.setInduced(false)
}

func (c *Config) setInduced(induced bool) {
	c.mu.Lock()
	c.induced = induced
	c.mu.Unlock()
}
