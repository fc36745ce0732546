package cpu

// zeroCheck sets Z from whether reg is zero.
func (c *Chip) zeroCheck(reg uint8) {
	c.SetFlag(PZero, reg == 0)
}

// negativeCheck sets N from bit 7 of reg.
func (c *Chip) negativeCheck(reg uint8) {
	c.SetFlag(PNegative, reg&PNegative != 0)
}

// carryCheck sets C from whether an 8-bit ALU result (carried as a
// 16-bit value) produced a carry out, i.e. is >= 0x100.
func (c *Chip) carryCheck(res uint16) {
	c.SetFlag(PCarry, res >= 0x100)
}

// overflowCheck sets V from whether the ALU operation produced a
// signed (two's complement) overflow: the two operands share a sign
// that differs from the result's sign.
// See http://www.righto.com/2012/12/the-6502-overflow-flag-explained.html
func (c *Chip) overflowCheck(reg, arg, res uint8) {
	c.SetFlag(POverflow, (reg^res)&(arg^res)&0x80 != 0)
}

// loadRegister stores val in *reg and derives Z/N from it. Used by the
// load, transfer, logical, pull and register increment/decrement
// handlers.
func (c *Chip) loadRegister(reg *uint8, val uint8) {
	*reg = val
	c.zeroCheck(val)
	c.negativeCheck(val)
}

// adc implements ADC: sum = A + M + C, with C/Z/N/V all derived from
// the 8-bit (and, for carry, 9-bit) result. The NES's Ricoh 2A03 never
// honors the D flag for arithmetic, so decimal mode is intentionally
// not special-cased here: D remains observable/settable via SetFlag but
// never alters this computation.
func (c *Chip) adc(m uint8) {
	carry := uint8(0)
	if c.GetFlag(PCarry) {
		carry = 1
	}
	sum := c.A + m + carry
	c.overflowCheck(c.A, m, sum)
	c.carryCheck(uint16(c.A) + uint16(m) + uint16(carry))
	c.loadRegister(&c.A, sum)
}

// sbc implements SBC as ADC against the one's complement of the
// operand, which is the standard identity for binary (non-BCD)
// subtract-with-borrow and keeps carry/overflow semantics identical to
// ADC.
func (c *Chip) sbc(m uint8) {
	c.adc(^m)
}

// compare implements the shared CMP/CPX/CPY flag logic: R-M computed as
// an 8-bit subtraction (no borrow-in), with C set when R >= M.
func (c *Chip) compare(reg, m uint8) {
	result := reg - m
	c.zeroCheck(result)
	c.negativeCheck(result)
	c.carryCheck(uint16(reg) + uint16(^m) + 1)
}
