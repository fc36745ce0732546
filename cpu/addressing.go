package cpu

// addrModeFunc computes the effective address for one instruction,
// advancing PC past whatever operand bytes the mode consumes, and
// reports whether indexed arithmetic crossed a page boundary. For
// implied/accumulator-style opcodes the address is unused by the
// handler and the returned value is meaningless.
//
// This mirrors spec's eleven addressing modes as pure functions of CPU
// state (teacher's per-tick addrZP/addrAbsolute/etc family, collapsed
// to a single call per instruction per the "eliminate scratch state"
// design note instead of the teacher's multi-tick state machine).
type addrModeFunc func(c *Chip) (addr uint16, pageCrossed bool)

// addrImplied is used by opcodes with no operand: register transfers,
// stack ops, flag ops, branches (which read their own operand byte
// directly in the handler) and BRK/RTS/RTI.
func addrImplied(c *Chip) (uint16, bool) {
	return 0, false
}

// addrImmediate returns the address of the operand byte itself (#i).
func addrImmediate(c *Chip) (uint16, bool) {
	addr := c.PC
	c.PC++
	return addr, false
}

// addrZP implements zero-page mode - d.
func addrZP(c *Chip) (uint16, bool) {
	addr := uint16(c.ram.Read(c.PC))
	c.PC++
	return addr, false
}

// addrZPX implements zero-page,X mode - d,x. The add wraps within the
// zero page.
func addrZPX(c *Chip) (uint16, bool) {
	return addrZPIndexed(c, c.X)
}

// addrZPY implements zero-page,Y mode - d,y. The add wraps within the
// zero page.
func addrZPY(c *Chip) (uint16, bool) {
	return addrZPIndexed(c, c.Y)
}

func addrZPIndexed(c *Chip, reg uint8) (uint16, bool) {
	base := c.ram.Read(c.PC)
	c.PC++
	return uint16(base + reg), false
}

// addrAbsolute implements absolute mode - a.
func addrAbsolute(c *Chip) (uint16, bool) {
	lo := c.ram.Read(c.PC)
	c.PC++
	hi := c.ram.Read(c.PC)
	c.PC++
	return (uint16(hi) << 8) | uint16(lo), false
}

// addrAbsoluteX implements absolute,X mode - a,x.
func addrAbsoluteX(c *Chip) (uint16, bool) {
	return addrAbsoluteIndexed(c, c.X)
}

// addrAbsoluteY implements absolute,Y mode - a,y.
func addrAbsoluteY(c *Chip) (uint16, bool) {
	return addrAbsoluteIndexed(c, c.Y)
}

func addrAbsoluteIndexed(c *Chip, reg uint8) (uint16, bool) {
	base, _ := addrAbsolute(c)
	eff := base + uint16(reg)
	crossed := (base & 0xFF00) != (eff & 0xFF00)
	return eff, crossed
}

// addrIndirect implements the indirect mode used only by JMP (a). It
// faithfully reproduces the documented page-wrap erratum: if the
// pointer's low byte is 0xFF, the high byte of the target is read from
// pointer&0xFF00 instead of pointer+1, so the read wraps within the
// same page rather than crossing into the next one.
func addrIndirect(c *Chip) (uint16, bool) {
	ptr, _ := addrAbsolute(c)
	lo := c.ram.Read(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := c.ram.Read(hiAddr)
	return (uint16(hi) << 8) | uint16(lo), false
}

// addrIndirectX implements indexed indirect mode - (d,x). Both reads
// used to build the pointer wrap within the zero page.
func addrIndirectX(c *Chip) (uint16, bool) {
	zp := c.ram.Read(c.PC) + c.X
	c.PC++
	lo := c.ram.Read(uint16(zp))
	hi := c.ram.Read(uint16(zp + 1))
	return (uint16(hi) << 8) | uint16(lo), false
}

// addrIndirectY implements indirect indexed mode - (d),y. The pointer
// fetch wraps within the zero page; the Y addition can then cross a
// page boundary, which is reported back for the cycle-penalty rule.
func addrIndirectY(c *Chip) (uint16, bool) {
	zp := c.ram.Read(c.PC)
	c.PC++
	lo := c.ram.Read(uint16(zp))
	hi := c.ram.Read(uint16(zp + 1))
	base := (uint16(hi) << 8) | uint16(lo)
	eff := base + uint16(c.Y)
	crossed := (base & 0xFF00) != (eff & 0xFF00)
	return eff, crossed
}
