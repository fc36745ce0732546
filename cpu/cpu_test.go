package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"github.com/jchacon-student/nes6502/memory"
)

func newTestChip(t *testing.T) *Chip {
	t.Helper()
	c, err := Init(&ChipDef{Ram: memory.NewFlat()})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c
}

// runToBoundary ticks c until it lands back on an instruction boundary,
// failing the test if that takes an implausible number of ticks (which
// would indicate Tick is stuck).
func runToBoundary(t *testing.T, c *Chip) {
	t.Helper()
	for i := 0; i < 64; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if c.AtInstructionBoundary() {
			return
		}
	}
	t.Fatalf("instruction did not reach a boundary within 64 ticks; state: %s", spew.Sdump(c))
}

func TestResetVector(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x34)
	c.ram.Write(ResetVector+1, 0x12)
	c.Reset()
	if c.PC != 0x1234 {
		t.Errorf("PC after Reset = 0x%.4X, want 0x1234", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after Reset = 0x%.2X, want 0xFD", c.SP)
	}
	if !c.GetFlag(PInterrupt) {
		t.Error("I flag not set after Reset")
	}
}

func TestLoadSetsZeroAndNegative(t *testing.T) {
	tests := []struct {
		name     string
		val      uint8
		wantZero bool
		wantNeg  bool
	}{
		{"zero", 0x00, true, false},
		{"positive", 0x42, false, false},
		{"negative", 0x80, false, true},
		{"negative-nonzero-high-bit", 0xFF, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestChip(t)
			c.ram.Write(ResetVector, 0x00)
			c.ram.Write(ResetVector+1, 0x80)
			c.Reset()
			c.ram.Write(0x8000, 0xA9) // LDA #imm
			c.ram.Write(0x8001, tc.val)
			runToBoundary(t, c)
			if c.A != tc.val {
				t.Errorf("A = 0x%.2X, want 0x%.2X", c.A, tc.val)
			}
			if got := c.GetFlag(PZero); got != tc.wantZero {
				t.Errorf("Z = %v, want %v", got, tc.wantZero)
			}
			if got := c.GetFlag(PNegative); got != tc.wantNeg {
				t.Errorf("N = %v, want %v", got, tc.wantNeg)
			}
		})
	}
}

func TestJSRPushesReturnAddressMinusOne(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.ram.Write(0x8000, 0x20) // JSR $1234
	c.ram.Write(0x8001, 0x34)
	c.ram.Write(0x8002, 0x12)
	runToBoundary(t, c)
	if c.PC != 0x1234 {
		t.Fatalf("PC after JSR = 0x%.4X, want 0x1234", c.PC)
	}
	hi := c.ram.Read(0x01FD)
	lo := c.ram.Read(0x01FC)
	ret := (uint16(hi) << 8) | uint16(lo)
	if ret != 0x8002 {
		t.Errorf("pushed return address = 0x%.4X, want 0x8002 (last byte of JSR)", ret)
	}
}

func TestJSRThenRTSRoundTrips(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.ram.Write(0x8000, 0x20) // JSR $9000
	c.ram.Write(0x8001, 0x00)
	c.ram.Write(0x8002, 0x90)
	c.ram.Write(0x9000, 0x60) // RTS
	runToBoundary(t, c)
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = 0x%.4X, want 0x9000", c.PC)
	}
	runToBoundary(t, c)
	if c.PC != 0x8003 {
		t.Errorf("PC after RTS = 0x%.4X, want 0x8003", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after JSR/RTS round trip = 0x%.2X, want 0xFD (restored)", c.SP)
	}
}

// TestIndirectJMPPageWrapBug exercises the documented 6502 erratum: JMP
// ($xxFF) reads its high byte from $xx00, not from the next page.
func TestIndirectJMPPageWrapBug(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.ram.Write(0x8000, 0x6C) // JMP ($30FF)
	c.ram.Write(0x8001, 0xFF)
	c.ram.Write(0x8002, 0x30)
	c.ram.Write(0x30FF, 0x80)
	c.ram.Write(0x3000, 0x12) // what the real bug incorrectly wraps back to
	c.ram.Write(0x3100, 0x99) // what a correct (non-buggy) read would use
	runToBoundary(t, c)
	if c.PC != 0x1280 {
		t.Errorf("PC after buggy indirect JMP = 0x%.4X, want 0x1280 (wrapped within page)", c.PC)
	}
}

func TestADCOverflow(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.A = 0x7F
	c.SetFlag(PCarry, false)
	c.ram.Write(0x8000, 0x69) // ADC #$01
	c.ram.Write(0x8001, 0x01)
	runToBoundary(t, c)
	if c.A != 0x80 {
		t.Errorf("A = 0x%.2X, want 0x80", c.A)
	}
	if !c.GetFlag(POverflow) {
		t.Error("V not set on signed overflow (0x7F + 0x01)")
	}
	if !c.GetFlag(PNegative) {
		t.Error("N not set (result has high bit set)")
	}
	if c.GetFlag(PCarry) {
		t.Error("C incorrectly set; no unsigned carry out of 0x7F+0x01")
	}
}

func TestSBCBorrow(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.A = 0x00
	c.SetFlag(PCarry, true) // no borrow going in
	c.ram.Write(0x8000, 0xE9) // SBC #$01
	c.ram.Write(0x8001, 0x01)
	runToBoundary(t, c)
	if c.A != 0xFF {
		t.Errorf("A = 0x%.2X, want 0xFF", c.A)
	}
	if c.GetFlag(PCarry) {
		t.Error("C incorrectly set; 0x00-0x01 borrows")
	}
	if !c.GetFlag(PNegative) {
		t.Error("N not set")
	}
}

func TestLDYZeroPage(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.ram.Write(0x0042, 0x7B)
	c.ram.Write(0x8000, 0xA4) // LDY $42
	c.ram.Write(0x8001, 0x42)
	runToBoundary(t, c)
	if c.Y != 0x7B {
		t.Errorf("Y = 0x%.2X, want 0x7B", c.Y)
	}
}

func TestBRKVectorsThroughIRQAndSetsBreak(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.ram.Write(IRQVector, 0x00)
	c.ram.Write(IRQVector+1, 0x90)
	c.Reset()
	c.ram.Write(0x8000, 0x00) // BRK
	c.ram.Write(0x8001, 0x00) // padding byte BRK skips over
	runToBoundary(t, c)
	if c.PC != 0x9000 {
		t.Fatalf("PC after BRK = 0x%.4X, want 0x9000", c.PC)
	}
	pushedP := c.ram.Read(0x01FB)
	if pushedP&PBreak == 0 {
		t.Error("B bit not set in pushed status byte for software BRK")
	}
	if !c.GetFlag(PInterrupt) {
		t.Error("I flag not set after BRK entry")
	}
}

func TestRTIRestoresStateWithoutBreakBit(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	// Hand-build a stack frame as if an interrupt had already fired:
	// push PC=0x7000, then P with N and C set.
	c.SP = 0xFD
	c.pushStack(0x70)
	c.pushStack(0x00)
	c.pushStack(PNegative | PCarry | PS1)
	c.ram.Write(0x8000, 0x40) // RTI
	runToBoundary(t, c)
	if c.PC != 0x7000 {
		t.Errorf("PC after RTI = 0x%.4X, want 0x7000", c.PC)
	}
	if c.GetFlag(PBreak) {
		t.Error("B flag should never read as set in the live register")
	}
	if !c.GetFlag(PNegative) || !c.GetFlag(PCarry) {
		t.Error("RTI did not restore N/C from the stacked status byte")
	}
}

func TestBranchNotTakenNeverAddsExtraCycle(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.SetFlag(PZero, false)
	c.ram.Write(0x8000, 0xF0) // BEQ, not taken (Z clear)
	c.ram.Write(0x8001, 0x10)
	for i := 0; i < 2; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if !c.AtInstructionBoundary() {
		t.Errorf("not-taken BEQ took more than 2 cycles; cyclesRemaining = %d", c.CyclesRemaining())
	}
}

func TestBranchTakenCrossingPageCostsFourCycles(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.ram.Write(0x80F0, 0xF0) // BEQ +$20, target crosses into next page
	c.ram.Write(0x80F1, 0x20)
	c.PC = 0x80F0
	c.SetFlag(PZero, true)
	count := 0
	for !c.AtInstructionBoundary() || count == 0 {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
		count++
		if count > 8 {
			t.Fatalf("branch did not settle within 8 ticks")
		}
	}
	if count != 4 {
		t.Errorf("taken+page-crossing branch took %d cycles, want 4", count)
	}
	if c.PC != 0x8112 {
		t.Errorf("PC after branch = 0x%.4X, want 0x8112", c.PC)
	}
}

func TestHaltOpcodeLatches(t *testing.T) {
	c := newTestChip(t)
	c.ram.Write(ResetVector, 0x00)
	c.ram.Write(ResetVector+1, 0x80)
	c.Reset()
	c.ram.Write(0x8000, 0x02) // JAM
	err := c.Tick()
	if _, ok := err.(HaltOpcode); !ok {
		t.Fatalf("Tick error = %v (%T), want HaltOpcode", err, err)
	}
	err2 := c.Tick()
	if diff := deep.Equal(err, err2); diff != nil {
		t.Errorf("halted chip returned a different error on the next Tick: %v", diff)
	}
}

func TestStackWrapsWithinPage(t *testing.T) {
	c := newTestChip(t)
	c.SP = 0x00
	c.pushStack(0xAB)
	if c.SP != 0xFF {
		t.Errorf("SP after push from 0x00 = 0x%.2X, want 0xFF (wrapped)", c.SP)
	}
	if got := c.ram.Read(0x0100); got != 0xAB {
		t.Errorf("pushed byte at 0x0100 = 0x%.2X, want 0xAB", got)
	}
}

func TestInvalidCPUStateErrorMessage(t *testing.T) {
	err := InvalidCPUState{Reason: "example"}
	if err.Error() == "" {
		t.Error("InvalidCPUState.Error() returned empty string")
	}
}
