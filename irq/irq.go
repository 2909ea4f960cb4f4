// Package irq defines the basic interfaces for working with 6502
// family interrupts. Devices that can raise IRQ or NMI implement
// Source and register with a Controller; the CPU polls the Controller
// at instruction boundaries without coupling to individual devices.
// NOTE: Real chips distinguish level and edge type interrupts. The
// interfaces here don't; implementors account for that in their own
// clock management.
package irq

// Source defines the interface for an interrupt generating device.
type Source interface {
	// HasIRQ indicates whether the device currently holds the IRQ line.
	HasIRQ() bool
	// HasNMI indicates whether the device currently holds the NMI line.
	HasNMI() bool
	// ClearIRQ drops the device's IRQ line. Called on acknowledge.
	ClearIRQ()
	// ClearNMI drops the device's NMI line. Called on acknowledge.
	ClearNMI()
}

// Controller aggregates any number of Sources. The pending state of a
// line is the OR across all registered sources.
type Controller struct {
	sources []Source
}

// NewController returns an empty Controller.
func NewController() *Controller {
	return &Controller{}
}

// RegisterSource adds a source. A source registered twice is polled
// twice; callers own deduplication.
func (c *Controller) RegisterSource(s Source) {
	c.sources = append(c.sources, s)
}

// UnregisterSource removes the first registration of s.
func (c *Controller) UnregisterSource(s Source) {
	for i, have := range c.sources {
		if have == s {
			c.sources = append(c.sources[:i], c.sources[i+1:]...)
			return
		}
	}
}

// SourceCount returns the number of registered sources.
func (c *Controller) SourceCount() int {
	return len(c.sources)
}

// HasIRQ reports whether any source holds the IRQ line.
func (c *Controller) HasIRQ() bool {
	for _, s := range c.sources {
		if s.HasIRQ() {
			return true
		}
	}
	return false
}

// HasNMI reports whether any source holds the NMI line.
func (c *Controller) HasNMI() bool {
	for _, s := range c.sources {
		if s.HasNMI() {
			return true
		}
	}
	return false
}

// AcknowledgeIRQ clears every source currently reporting an IRQ.
// A no-op when nothing is pending.
func (c *Controller) AcknowledgeIRQ() {
	for _, s := range c.sources {
		if s.HasIRQ() {
			s.ClearIRQ()
		}
	}
}

// AcknowledgeNMI clears every source currently reporting an NMI.
func (c *Controller) AcknowledgeNMI() {
	for _, s := range c.sources {
		if s.HasNMI() {
			s.ClearNMI()
		}
	}
}

// ClearAll drops both lines on every source.
func (c *Controller) ClearAll() {
	for _, s := range c.sources {
		s.ClearIRQ()
		s.ClearNMI()
	}
}
