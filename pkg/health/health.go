package health

import (
	"sync"
	"time"

	"chat-powered-ecommerce/backend/pkg/logger"
)

// Status represents the health status of a component
type Status string

const (
	// StatusUp indicates a component is working correctly
	StatusUp Status = "up"
	// StatusDown indicates a component is not working
	StatusDown Status = "down"
	// StatusDegraded indicates a component is working with reduced functionality
	StatusDegraded Status = "degraded"
)

// Component represents a system component that can be health-checked
type Component struct {
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	Description string    `json:"description,omitempty"`
	Error       string    `json:"error,omitempty"`
	LastChecked time.Time `json:"last_checked"`
}

// Check represents a health check function
type Check func() (Status, string, error)

// Checker manages health checks for the system
type Checker struct {
	checks     map[string]Check
	components map[string]*Component
	mu         sync.RWMutex
	log        *logger.Logger
}

// NewChecker creates a new health checker
func NewChecker(log *logger.Logger) *Checker {
	c := &Checker{
		checks:     make(map[string]Check),
		components: make(map[string]*Component),
		log:        log,
	}
	c.RegisterCheck("self", func() (Status, string, error) {
		return StatusUp, "health checker is running", nil
	})
	return c
}

// RegisterCheck adds a named check
func (c *Checker) RegisterCheck(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
	c.components[name] = &Component{Name: name, Status: StatusDown}
}

// RunChecks executes all registered checks and returns the component states
func (c *Checker) RunChecks() []Component {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]Component, 0, len(c.checks))
	for name, check := range c.checks {
		status, desc, err := check()
		component := c.components[name]
		component.Status = status
		component.Description = desc
		component.LastChecked = time.Now()
		if err != nil {
			component.Error = err.Error()
			c.log.Warn("health check failed", "component", name, "error", err.Error())
		} else {
			component.Error = ""
		}
		results = append(results, *component)
	}
	return results
}

// Overall collapses the component states into a single status
func (c *Checker) Overall(components []Component) Status {
	overall := StatusUp
	for _, component := range components {
		switch component.Status {
		case StatusDown:
			return StatusDown
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}
