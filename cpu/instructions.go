package cpu

// execFunc runs one instruction's operation given the effective address
// already computed by its addrModeFunc (ignored by implied/accumulator
// opcodes). It returns whether an extra cycle is owed beyond the
// opcode's base count (only branches use this) and an error only for
// internal invariant violations.
type execFunc func(c *Chip, addr uint16) (extraCycle bool, err error)

// --- Loads ---

func execLDA(c *Chip, addr uint16) (bool, error) {
	c.loadRegister(&c.A, c.ram.Read(addr))
	return false, nil
}

func execLDX(c *Chip, addr uint16) (bool, error) {
	c.loadRegister(&c.X, c.ram.Read(addr))
	return false, nil
}

func execLDY(c *Chip, addr uint16) (bool, error) {
	c.loadRegister(&c.Y, c.ram.Read(addr))
	return false, nil
}

// --- Stores ---

func execSTA(c *Chip, addr uint16) (bool, error) {
	c.ram.Write(addr, c.A)
	return false, nil
}

func execSTX(c *Chip, addr uint16) (bool, error) {
	c.ram.Write(addr, c.X)
	return false, nil
}

func execSTY(c *Chip, addr uint16) (bool, error) {
	c.ram.Write(addr, c.Y)
	return false, nil
}

// --- Transfers ---

func execTAX(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.X, c.A); return false, nil }
func execTAY(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.Y, c.A); return false, nil }
func execTXA(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.A, c.X); return false, nil }
func execTYA(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.A, c.Y); return false, nil }
func execTSX(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.X, c.SP); return false, nil }

// execTXS copies X into SP without touching any flags.
func execTXS(c *Chip, addr uint16) (bool, error) {
	c.SP = c.X
	return false, nil
}

// --- Stack ---

func execPHA(c *Chip, addr uint16) (bool, error) {
	c.pushStack(c.A)
	return false, nil
}

func execPLA(c *Chip, addr uint16) (bool, error) {
	c.loadRegister(&c.A, c.popStack())
	return false, nil
}

// execPHP pushes P with bits B and U forced to 1, per spec; the live
// register is never mutated by a push.
func execPHP(c *Chip, addr uint16) (bool, error) {
	c.pushStack(c.P | PS1 | PBreak)
	return false, nil
}

// execPLP pulls P, forcing U to 1 and B to 0 in the live register.
func execPLP(c *Chip, addr uint16) (bool, error) {
	c.P = c.popStack()
	c.P |= PS1
	c.P &^= PBreak
	return false, nil
}

// --- Logical ---

func execAND(c *Chip, addr uint16) (bool, error) {
	c.loadRegister(&c.A, c.A&c.ram.Read(addr))
	return false, nil
}

func execORA(c *Chip, addr uint16) (bool, error) {
	c.loadRegister(&c.A, c.A|c.ram.Read(addr))
	return false, nil
}

func execEOR(c *Chip, addr uint16) (bool, error) {
	c.loadRegister(&c.A, c.A^c.ram.Read(addr))
	return false, nil
}

// execBIT computes A&M for the zero flag only, and sets N/V directly
// from bits 7/6 of M without disturbing A or M.
func execBIT(c *Chip, addr uint16) (bool, error) {
	m := c.ram.Read(addr)
	c.zeroCheck(c.A & m)
	c.negativeCheck(m)
	c.SetFlag(POverflow, m&POverflow != 0)
	return false, nil
}

// --- Arithmetic ---

func execADC(c *Chip, addr uint16) (bool, error) {
	c.adc(c.ram.Read(addr))
	return false, nil
}

func execSBC(c *Chip, addr uint16) (bool, error) {
	c.sbc(c.ram.Read(addr))
	return false, nil
}

func execCMP(c *Chip, addr uint16) (bool, error) {
	c.compare(c.A, c.ram.Read(addr))
	return false, nil
}

func execCPX(c *Chip, addr uint16) (bool, error) {
	c.compare(c.X, c.ram.Read(addr))
	return false, nil
}

func execCPY(c *Chip, addr uint16) (bool, error) {
	c.compare(c.Y, c.ram.Read(addr))
	return false, nil
}

// --- Increments/decrements ---

func execINC(c *Chip, addr uint16) (bool, error) {
	v := c.ram.Read(addr) + 1
	c.ram.Write(addr, v)
	c.zeroCheck(v)
	c.negativeCheck(v)
	return false, nil
}

func execDEC(c *Chip, addr uint16) (bool, error) {
	v := c.ram.Read(addr) - 1
	c.ram.Write(addr, v)
	c.zeroCheck(v)
	c.negativeCheck(v)
	return false, nil
}

func execINX(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.X, c.X+1); return false, nil }
func execINY(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.Y, c.Y+1); return false, nil }
func execDEX(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.X, c.X-1); return false, nil }
func execDEY(c *Chip, addr uint16) (bool, error) { c.loadRegister(&c.Y, c.Y-1); return false, nil }

// --- Shifts/rotates (memory variants: read-modify-write through addr) ---

func execASL(c *Chip, addr uint16) (bool, error) {
	m := c.ram.Read(addr)
	res := m << 1
	c.ram.Write(addr, res)
	c.carryCheck(uint16(m) << 1)
	c.zeroCheck(res)
	c.negativeCheck(res)
	return false, nil
}

func execLSR(c *Chip, addr uint16) (bool, error) {
	m := c.ram.Read(addr)
	res := m >> 1
	c.ram.Write(addr, res)
	c.SetFlag(PCarry, m&0x01 != 0)
	c.zeroCheck(res)
	c.negativeCheck(res)
	return false, nil
}

func execROL(c *Chip, addr uint16) (bool, error) {
	m := c.ram.Read(addr)
	var carryIn uint8
	if c.GetFlag(PCarry) {
		carryIn = 1
	}
	res := (m << 1) | carryIn
	c.ram.Write(addr, res)
	c.carryCheck(uint16(m) << 1)
	c.zeroCheck(res)
	c.negativeCheck(res)
	return false, nil
}

func execROR(c *Chip, addr uint16) (bool, error) {
	m := c.ram.Read(addr)
	var carryIn uint8
	if c.GetFlag(PCarry) {
		carryIn = 0x80
	}
	res := (m >> 1) | carryIn
	c.ram.Write(addr, res)
	c.SetFlag(PCarry, m&0x01 != 0)
	c.zeroCheck(res)
	c.negativeCheck(res)
	return false, nil
}

// --- Shifts/rotates (accumulator variants) ---

func execASLAcc(c *Chip, addr uint16) (bool, error) {
	c.carryCheck(uint16(c.A) << 1)
	c.loadRegister(&c.A, c.A<<1)
	return false, nil
}

func execLSRAcc(c *Chip, addr uint16) (bool, error) {
	c.SetFlag(PCarry, c.A&0x01 != 0)
	c.loadRegister(&c.A, c.A>>1)
	return false, nil
}

func execROLAcc(c *Chip, addr uint16) (bool, error) {
	var carryIn uint8
	if c.GetFlag(PCarry) {
		carryIn = 1
	}
	c.carryCheck(uint16(c.A) << 1)
	c.loadRegister(&c.A, (c.A<<1)|carryIn)
	return false, nil
}

func execRORAcc(c *Chip, addr uint16) (bool, error) {
	var carryIn uint8
	if c.GetFlag(PCarry) {
		carryIn = 0x80
	}
	c.SetFlag(PCarry, c.A&0x01 != 0)
	c.loadRegister(&c.A, (c.A>>1)|carryIn)
	return false, nil
}

// --- Flags ---

func execCLC(c *Chip, addr uint16) (bool, error) { c.SetFlag(PCarry, false); return false, nil }
func execSEC(c *Chip, addr uint16) (bool, error) { c.SetFlag(PCarry, true); return false, nil }
func execCLI(c *Chip, addr uint16) (bool, error) { c.SetFlag(PInterrupt, false); return false, nil }
func execSEI(c *Chip, addr uint16) (bool, error) { c.SetFlag(PInterrupt, true); return false, nil }
func execCLV(c *Chip, addr uint16) (bool, error) { c.SetFlag(POverflow, false); return false, nil }
func execCLD(c *Chip, addr uint16) (bool, error) { c.SetFlag(PDecimal, false); return false, nil }
func execSED(c *Chip, addr uint16) (bool, error) { c.SetFlag(PDecimal, true); return false, nil }

// --- Jumps/subroutines ---

// execJMP sets PC directly to the address already computed by the
// opcode's addressing mode (absolute, or indirect with its page-wrap
// bug already folded in by addrIndirect).
func execJMP(c *Chip, addr uint16) (bool, error) {
	c.PC = addr
	return false, nil
}

// execJSR pushes the address of the last byte of the JSR instruction
// (not the following instruction) and jumps to addr. By the time this
// runs, the ABS addressing mode has already consumed both operand
// bytes, so PC-1 is exactly that return address.
func execJSR(c *Chip, addr uint16) (bool, error) {
	ret := c.PC - 1
	c.pushStack(uint8(ret >> 8))
	c.pushStack(uint8(ret & 0xFF))
	c.PC = addr
	return false, nil
}

// execRTS pulls the return address and adds one, undoing JSR's off-by-
// one push.
func execRTS(c *Chip, addr uint16) (bool, error) {
	lo := c.popStack()
	hi := c.popStack()
	c.PC = ((uint16(hi) << 8) | uint16(lo)) + 1
	return false, nil
}

// execRTI pulls P (forcing U=1, B=0) then PC, with no +1 adjustment.
func execRTI(c *Chip, addr uint16) (bool, error) {
	c.P = c.popStack()
	c.P |= PS1
	c.P &^= PBreak
	lo := c.popStack()
	hi := c.popStack()
	c.PC = (uint16(hi) << 8) | uint16(lo)
	return false, nil
}

// execBRK implements the software interrupt: skip the padding byte,
// push PC then P (with B and U set), disable further interrupts, and
// vector through IRQVector.
func execBRK(c *Chip, addr uint16) (bool, error) {
	c.PC++
	c.pushStack(uint8(c.PC >> 8))
	c.pushStack(uint8(c.PC & 0xFF))
	c.pushStack(c.P | PS1 | PBreak)
	c.SetFlag(PInterrupt, true)
	lo := c.ram.Read(IRQVector)
	hi := c.ram.Read(IRQVector + 1)
	c.PC = (uint16(hi) << 8) | uint16(lo)
	return false, nil
}

// --- Branches ---
//
// All eight share branchResult: the signed operand byte is always
// consumed (PC advances past it whether or not the branch is taken),
// and a taken branch reports its +1 through the extraCycle return,
// while the further +1 for a page cross goes straight into
// cyclesRemaining (the extraCycle return only carries one bit, not two).

func execBCC(c *Chip, addr uint16) (bool, error) {
	taken := !c.GetFlag(PCarry)
	return branchResult(c, taken)
}

func execBCS(c *Chip, addr uint16) (bool, error) {
	taken := c.GetFlag(PCarry)
	return branchResult(c, taken)
}

func execBEQ(c *Chip, addr uint16) (bool, error) {
	taken := c.GetFlag(PZero)
	return branchResult(c, taken)
}

func execBNE(c *Chip, addr uint16) (bool, error) {
	taken := !c.GetFlag(PZero)
	return branchResult(c, taken)
}

func execBMI(c *Chip, addr uint16) (bool, error) {
	taken := c.GetFlag(PNegative)
	return branchResult(c, taken)
}

func execBPL(c *Chip, addr uint16) (bool, error) {
	taken := !c.GetFlag(PNegative)
	return branchResult(c, taken)
}

func execBVS(c *Chip, addr uint16) (bool, error) {
	taken := c.GetFlag(POverflow)
	return branchResult(c, taken)
}

func execBVC(c *Chip, addr uint16) (bool, error) {
	taken := !c.GetFlag(POverflow)
	return branchResult(c, taken)
}

func branchResult(c *Chip, taken bool) (bool, error) {
	offset := int8(c.ram.Read(c.PC))
	c.PC++
	if !taken {
		return false, nil
	}
	base := c.PC
	target := uint16(int32(base) + int32(offset))
	c.PC = target
	if (base & 0xFF00) != (target & 0xFF00) {
		// The "taken" bonus travels through the extra return below;
		// stash the second, page-cross bonus directly since extra is a
		// single bit and can't carry both.
		c.cyclesRemaining++
	}
	return true, nil
}

// --- NOP ---

// execNOP is shared by the documented NOP (0xEA) and by the illegal
// opcodes the dispatch table treats as no-ops with a defined cycle
// cost (spec's Non-goals: illegal opcodes never need their undocumented
// side effects, only a plausible byte length and cycle count).
func execNOP(c *Chip, addr uint16) (bool, error) {
	return false, nil
}
