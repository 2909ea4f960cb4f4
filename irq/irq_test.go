package irq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type source struct {
	irq bool
	nmi bool
}

func (s *source) HasIRQ() bool { return s.irq }
func (s *source) HasNMI() bool { return s.nmi }
func (s *source) ClearIRQ()    { s.irq = false }
func (s *source) ClearNMI()    { s.nmi = false }

func TestAggregation(t *testing.T) {
	c := NewController()
	assert.False(t, c.HasIRQ())
	assert.False(t, c.HasNMI())

	a := &source{}
	b := &source{}
	c.RegisterSource(a)
	c.RegisterSource(b)
	assert.Equal(t, 2, c.SourceCount())
	assert.False(t, c.HasIRQ())

	b.irq = true
	assert.True(t, c.HasIRQ())
	assert.False(t, c.HasNMI())

	a.nmi = true
	assert.True(t, c.HasNMI())
}

func TestAcknowledgeClearsOnlyRaisedSources(t *testing.T) {
	c := NewController()
	raised := &source{irq: true}
	quiet := &source{}
	c.RegisterSource(raised)
	c.RegisterSource(quiet)

	c.AcknowledgeIRQ()
	assert.False(t, raised.irq)
	assert.False(t, c.HasIRQ())
}

func TestAcknowledgeWhenNonePendingIsNoop(t *testing.T) {
	c := NewController()
	s := &source{}
	c.RegisterSource(s)
	c.AcknowledgeIRQ()
	c.AcknowledgeIRQ()
	c.AcknowledgeNMI()
	assert.False(t, s.irq)
	assert.False(t, s.nmi)
}

func TestAcknowledgeIRQLeavesNMI(t *testing.T) {
	c := NewController()
	s := &source{irq: true, nmi: true}
	c.RegisterSource(s)

	c.AcknowledgeIRQ()
	assert.False(t, s.irq)
	assert.True(t, s.nmi, "IRQ acknowledge must not clear the NMI line")

	c.AcknowledgeNMI()
	assert.False(t, s.nmi)
}

func TestUnregister(t *testing.T) {
	c := NewController()
	s := &source{irq: true}
	c.RegisterSource(s)
	assert.True(t, c.HasIRQ())

	c.UnregisterSource(s)
	assert.Equal(t, 0, c.SourceCount())
	assert.False(t, c.HasIRQ())

	// Unknown source is a no-op.
	c.UnregisterSource(&source{})
	assert.Equal(t, 0, c.SourceCount())
}

func TestClearAll(t *testing.T) {
	c := NewController()
	s1 := &source{irq: true, nmi: true}
	s2 := &source{irq: true}
	c.RegisterSource(s1)
	c.RegisterSource(s2)
	c.ClearAll()
	assert.False(t, c.HasIRQ())
	assert.False(t, c.HasNMI())
}
