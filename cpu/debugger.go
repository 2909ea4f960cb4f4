package cpu

import (
	"github.com/emu65/emu65/bus"
)

// MemoryEvent records one byte level access made by the chip.
type MemoryEvent struct {
	Addr    uint16
	Value   uint8
	IsWrite bool
}

// TraceEvent records one retired instruction fetch.
type TraceEvent struct {
	PC     uint16
	Opcode uint8
}

// CpuState is a snapshot of the registers and flags for inspection
// without moving the PC.
type CpuState struct {
	PC uint16
	SP uint8
	A  uint8
	X  uint8
	Y  uint8
	C  bool
	Z  bool
	I  bool
	D  bool
	B  bool
	V  bool
	N  bool
}

// Debugger is the optional attachment the execution loop consults for
// breakpoints and feeds with trace data. Attach exactly one per chip.
type Debugger struct {
	cpu *Chip
	bus *bus.Bus

	breakpoints map[uint16]struct{}
	watchpoints map[uint16]struct{}

	memoryEvents []MemoryEvent
	traceEvents  []TraceEvent

	lastBreak uint16
	hit       bool
}

// NewDebugger returns a Debugger with empty breakpoint and watchpoint
// sets.
func NewDebugger() *Debugger {
	return &Debugger{
		breakpoints: make(map[uint16]struct{}),
		watchpoints: make(map[uint16]struct{}),
	}
}

// Attach wires the debugger to a chip and its bus. The chip starts
// consulting ShouldBreak and delivering trace notifications.
func (d *Debugger) Attach(c *Chip, b *bus.Bus) {
	d.cpu = c
	d.bus = b
	c.SetDebugger(d)
}

// AddBreakpoint arms a breakpoint at addr. Idempotent.
func (d *Debugger) AddBreakpoint(addr uint16) {
	d.breakpoints[addr] = struct{}{}
}

// RemoveBreakpoint disarms addr. A no-op when not armed.
func (d *Debugger) RemoveBreakpoint(addr uint16) {
	delete(d.breakpoints, addr)
}

// HasBreakpoint reports whether addr is armed.
func (d *Debugger) HasBreakpoint(addr uint16) bool {
	_, ok := d.breakpoints[addr]
	return ok
}

// ClearBreakpoints disarms everything.
func (d *Debugger) ClearBreakpoints() {
	d.breakpoints = make(map[uint16]struct{})
}

// AddWatchpoint arms a watchpoint at addr.
func (d *Debugger) AddWatchpoint(addr uint16) {
	d.watchpoints[addr] = struct{}{}
}

// RemoveWatchpoint disarms addr.
func (d *Debugger) RemoveWatchpoint(addr uint16) {
	delete(d.watchpoints, addr)
}

// HasWatchpoint reports whether addr is armed.
func (d *Debugger) HasWatchpoint(addr uint16) bool {
	_, ok := d.watchpoints[addr]
	return ok
}

// ClearWatchpoints disarms everything.
func (d *Debugger) ClearWatchpoints() {
	d.watchpoints = make(map[uint16]struct{})
}

// ShouldBreak is the pure query the execution loop consults before
// each fetch.
func (d *Debugger) ShouldBreak(pc uint16) bool {
	_, ok := d.breakpoints[pc]
	return ok
}

// NotifyBreakpoint records a breakpoint hit. Sticky until ClearHit.
func (d *Debugger) NotifyBreakpoint(pc uint16) {
	d.lastBreak = pc
	d.hit = true
}

// TraceInstruction appends to the instruction trace.
func (d *Debugger) TraceInstruction(pc uint16, opcode uint8) {
	d.traceEvents = append(d.traceEvents, TraceEvent{PC: pc, Opcode: opcode})
}

// NotifyMemoryAccess appends to the memory trace. A hit on an armed
// watchpoint also sets the sticky hit flag so tests can assert post
// hoc.
func (d *Debugger) NotifyMemoryAccess(addr uint16, value uint8, isWrite bool) {
	d.memoryEvents = append(d.memoryEvents, MemoryEvent{Addr: addr, Value: value, IsWrite: isWrite})
	if _, ok := d.watchpoints[addr]; ok {
		d.lastBreak = addr
		d.hit = true
	}
}

// MemoryEvents returns the append only memory trace.
func (d *Debugger) MemoryEvents() []MemoryEvent {
	return d.memoryEvents
}

// TraceEvents returns the append only instruction trace.
func (d *Debugger) TraceEvents() []TraceEvent {
	return d.traceEvents
}

// ClearEvents drops both traces.
func (d *Debugger) ClearEvents() {
	d.memoryEvents = nil
	d.traceEvents = nil
}

// LastBreak returns the address of the most recent breakpoint or
// watchpoint hit.
func (d *Debugger) LastBreak() uint16 {
	return d.lastBreak
}

// Hit reports whether any breakpoint or watchpoint fired since the
// last ClearHit.
func (d *Debugger) Hit() bool {
	return d.hit
}

// ClearHit resets the sticky hit flag.
func (d *Debugger) ClearHit() {
	d.hit = false
}

// InspectCPU snapshots the attached chip's registers and flags.
func (d *Debugger) InspectCPU() CpuState {
	c := d.cpu
	return CpuState{
		PC: c.PC, SP: c.SP, A: c.A, X: c.X, Y: c.Y,
		C: c.C, Z: c.Z, I: c.I, D: c.D, B: c.B, V: c.V, N: c.N,
	}
}

// ReadMemory observes a byte without side effects: it bypasses the
// device registry and reads backing memory directly.
func (d *Debugger) ReadMemory(addr uint16) uint8 {
	return d.bus.Memory().Read(addr)
}

// WriteMemory pokes backing memory directly, bypassing devices.
func (d *Debugger) WriteMemory(addr uint16, value uint8) {
	d.bus.Memory().Write(addr, value)
}
