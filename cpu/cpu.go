// Package cpu implements the NMOS MOS 6502 core used by the NES (the
// Ricoh 2A03 variant, which drops BCD arithmetic but is otherwise
// identical). It models the processor at tick granularity: each call to
// Tick either executes a whole instruction and schedules the remaining
// cycles as idle ticks, or consumes one previously scheduled idle tick.
package cpu

import (
	"fmt"

	"github.com/jchacon-student/nes6502/irq"
	"github.com/jchacon-student/nes6502/memory"
)

// Status register bit masks. Naming and values follow the standard 6502
// flag layout: N V U B D I Z C (bit 7 .. bit 0).
const (
	PNegative  = uint8(0x80)
	POverflow  = uint8(0x40)
	PS1        = uint8(0x20) // Unused bit, always reads as 1.
	PBreak     = uint8(0x10) // Only meaningful in a byte pushed to the stack.
	PDecimal   = uint8(0x08)
	PInterrupt = uint8(0x04)
	PZero      = uint8(0x02)
	PCarry     = uint8(0x01)
)

// Vector addresses for the three hardware entry points.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// stackBase is the fixed high byte of the stack page (0x0100-0x01FF).
const stackBase = uint16(0x0100)

// InvalidCPUState represents an internal precondition violation, e.g. an
// opcode scheduling zero total cycles. The instruction set and cycle
// accounting in this package are closed, so this should be unreachable
// in practice; it exists as a defensive boundary, matching the teacher's
// error type of the same shape.
type InvalidCPUState struct {
	Reason string
}

// Error implements error.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// HaltOpcode represents one of the documented NMOS jam/kill opcodes
// (0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2,
// 0xF2). Real silicon locks up permanently; this core reports it once
// and keeps returning the same error on every subsequent Tick.
type HaltOpcode struct {
	Opcode uint8
}

// Error implements error.
func (e HaltOpcode) Error() string {
	return fmt.Sprintf("HLT(0x%.2X) executed", e.Opcode)
}

// ChipDef configures a new Chip. Ram is required; Irq, Nmi and Rdy are
// optional line sources an external host can wire in to drive the
// optional interrupt entry points each Tick.
type ChipDef struct {
	Ram memory.Ram
	Irq irq.Sender
	Nmi irq.Sender
	Rdy irq.Sender
}

// Chip is one instance of the 6502 core: its architectural register
// file plus the bookkeeping needed to spread one instruction's cost
// across multiple Tick calls.
type Chip struct {
	A  uint8  // Accumulator.
	X  uint8  // X index register.
	Y  uint8  // Y index register.
	SP uint8  // Stack pointer (stack page is 0x0100 | SP).
	P  uint8  // Status register.
	PC uint16 // Program counter.

	ram memory.Ram
	irq irq.Sender
	nmi irq.Sender
	rdy irq.Sender

	cyclesRemaining uint8 // Idle ticks still owed by the last decoded instruction.
	halted          bool
	haltOpcode      uint8
}

// Init constructs a Chip in power-on state: RAM is powered on
// (randomized) and Reset is run so PC is loaded from the reset vector
// and SP/flags reach their documented power-up values.
func Init(def *ChipDef) (*Chip, error) {
	if def.Ram == nil {
		return nil, InvalidCPUState{"ChipDef.Ram must not be nil"}
	}
	c := &Chip{
		P:   PS1,
		ram: def.Ram,
		irq: def.Irq,
		nmi: def.Nmi,
		rdy: def.Rdy,
	}
	def.Ram.PowerOn()
	c.Reset()
	return c, nil
}

// Ram returns the memory backing this CPU, letting a harness poke bytes
// directly (e.g. to install a trace-corpus case's initial RAM state).
func (c *Chip) Ram() memory.Ram {
	return c.ram
}

// CyclesRemaining reports the idle ticks still owed by the instruction
// currently in flight. It is zero exactly at an instruction boundary.
func (c *Chip) CyclesRemaining() uint8 {
	return c.cyclesRemaining
}

// AtInstructionBoundary reports whether the next Tick will fetch a new
// opcode rather than simply burn an idle cycle.
func (c *Chip) AtInstructionBoundary() bool {
	return c.cyclesRemaining == 0
}

// GetFlag returns whether the given status bit is set.
func (c *Chip) GetFlag(mask uint8) bool {
	return c.P&mask != 0
}

// SetFlag sets or clears the given status bit.
func (c *Chip) SetFlag(mask uint8, v bool) {
	if v {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

// Reset sets up the processor as real hardware does when the reset line
// is pulled low: interrupts are disabled, the stack pointer goes to its
// documented 0xFD, and PC is loaded from the reset vector. A/X/Y and the
// rest of P are left untouched. Takes effect immediately; any
// instruction in flight is abandoned.
func (c *Chip) Reset() {
	c.halted = false
	c.haltOpcode = 0
	c.cyclesRemaining = 0
	c.SP = 0xFD
	c.P |= PInterrupt
	lo := c.ram.Read(ResetVector)
	hi := c.ram.Read(ResetVector + 1)
	c.PC = (uint16(hi) << 8) | uint16(lo)
}

// NMI requests an edge-triggered non-maskable interrupt. It only has an
// effect when called at an instruction boundary.
func (c *Chip) NMI() error {
	return c.enterInterrupt(NMIVector, false)
}

// IRQ requests a maskable interrupt. It is a no-op if the I flag is set.
// Like NMI it only fires at an instruction boundary.
func (c *Chip) IRQ() error {
	if c.GetFlag(PInterrupt) {
		return nil
	}
	return c.enterInterrupt(IRQVector, false)
}

// enterInterrupt runs the full interrupt entry sequence to completion in
// one call: push PC high, PC low, then P (with B=0, U=1), set I, and
// load PC from the given vector. 7 cycles elapse total.
func (c *Chip) enterInterrupt(vector uint16, brk bool) error {
	if !c.AtInstructionBoundary() {
		return InvalidCPUState{"enterInterrupt called mid-instruction"}
	}
	c.pushStack(uint8(c.PC >> 8))
	c.pushStack(uint8(c.PC & 0xFF))
	push := c.P | PS1
	if brk {
		push |= PBreak
	} else {
		push &^= PBreak
	}
	c.pushStack(push)
	c.SetFlag(PInterrupt, true)
	lo := c.ram.Read(vector)
	hi := c.ram.Read(vector + 1)
	c.PC = (uint16(hi) << 8) | uint16(lo)
	c.cyclesRemaining = 7 - 1
	return nil
}

// Tick advances the CPU by one processor clock. If the instruction
// in-flight still owes idle cycles, this just decrements the counter.
// Otherwise it is a fresh instruction boundary: fetch the opcode,
// advance PC past it, run the addressing mode and the handler to
// completion, and schedule cyclesRemaining for the cycles the handler
// didn't account for in this very tick (base + extras - 1, since the
// current tick is the first cycle of the new instruction).
func (c *Chip) Tick() error {
	if c.rdy != nil && c.rdy.Raised() {
		return nil
	}
	if c.halted {
		return HaltOpcode{c.haltOpcode}
	}
	if c.cyclesRemaining > 0 {
		c.cyclesRemaining--
		return nil
	}

	if c.nmi != nil && c.nmi.Raised() {
		return c.enterInterrupt(NMIVector, false)
	}
	if c.irq != nil && c.irq.Raised() && !c.GetFlag(PInterrupt) {
		return c.enterInterrupt(IRQVector, false)
	}

	op := c.ram.Read(c.PC)
	c.PC++
	entry := &dispatchTable[op]

	if entry.halt {
		c.halted = true
		c.haltOpcode = op
		return HaltOpcode{op}
	}

	addr, pageCrossed := entry.mode(c)
	extra, err := entry.exec(c, addr)
	if err != nil {
		c.halted = true
		c.haltOpcode = op
		return err
	}
	c.P |= PS1 // U reads as 1 after every instruction.

	total := entry.cycles
	if pageCrossed && entry.extraOnCross {
		total++
	}
	if extra {
		total++
	}
	if total == 0 {
		return InvalidCPUState{fmt.Sprintf("opcode 0x%.2X scheduled zero cycles", op)}
	}
	// += rather than =: a taken branch may have already added its own
	// page-cross bonus directly to cyclesRemaining inside exec, since
	// that bonus can't be expressed through the single-bit extra return.
	c.cyclesRemaining += total - 1
	return nil
}

// pushStack writes val to the stack page at the current SP and then
// decrements SP (wrapping within the stack page).
func (c *Chip) pushStack(val uint8) {
	c.ram.Write(stackBase|uint16(c.SP), val)
	c.SP--
}

// popStack increments SP (wrapping within the stack page) and returns
// the byte now pointed to.
func (c *Chip) popStack() uint8 {
	c.SP++
	return c.ram.Read(stackBase | uint16(c.SP))
}
