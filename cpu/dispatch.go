package cpu

// opcodeEntry describes one of the 256 possible opcode bytes: which
// addressing mode resolves its operand, which handler runs against the
// resolved address, the base cycle count, whether a page-crossing
// indexed address earns an extra cycle, and whether the opcode is one
// of the documented jam/kill instructions that halts the chip.
type opcodeEntry struct {
	mnemonic     string
	mode         addrModeFunc
	exec         execFunc
	cycles       uint8
	extraOnCross bool
	halt         bool
}

func op(mnemonic string, mode addrModeFunc, exec execFunc, cycles uint8) opcodeEntry {
	return opcodeEntry{mnemonic: mnemonic, mode: mode, exec: exec, cycles: cycles}
}

func opPage(mnemonic string, mode addrModeFunc, exec execFunc, cycles uint8) opcodeEntry {
	return opcodeEntry{mnemonic: mnemonic, mode: mode, exec: exec, cycles: cycles, extraOnCross: true}
}

// hlt marks one of the twelve NMOS jam opcodes: the chip locks up and
// every subsequent Tick returns HaltOpcode.
func hlt(mnemonic string) opcodeEntry {
	return opcodeEntry{mnemonic: mnemonic, mode: addrImplied, exec: execNOP, cycles: 2, halt: true}
}

// nop builds one of the many undocumented opcodes that this core
// treats as a plain no-op: it still consumes the right number of
// operand bytes and cycles for its addressing mode (so the program
// counter and timing stay plausible against real silicon) but performs
// none of the undocumented opcode's real side effects, per spec's
// explicit non-goal of not modeling illegal-opcode semantics.
func nop(mode addrModeFunc, cycles uint8, pageSensitive bool) opcodeEntry {
	e := opcodeEntry{mnemonic: "*NOP", mode: mode, exec: execNOP, cycles: cycles}
	e.extraOnCross = pageSensitive
	return e
}

// dispatchTable is indexed directly by opcode byte. It is built once at
// package init as a data table rather than the teacher's 256-case
// switch, per SPEC_FULL's Component Design choice to keep decode
// declarative.
var dispatchTable = [256]opcodeEntry{
	// 0x00-0x0F
	0x00: op("BRK", addrImplied, execBRK, 7),
	0x01: op("ORA", addrIndirectX, execORA, 6),
	0x02: hlt("JAM"),
	0x03: nop(addrIndirectX, 8, false),
	0x04: nop(addrZP, 3, false),
	0x05: op("ORA", addrZP, execORA, 3),
	0x06: op("ASL", addrZP, execASL, 5),
	0x07: nop(addrZP, 5, false),
	0x08: op("PHP", addrImplied, execPHP, 3),
	0x09: op("ORA", addrImmediate, execORA, 2),
	0x0A: op("ASL", addrImplied, execASLAcc, 2),
	0x0B: op("ANC", addrImmediate, execNOP, 2),
	0x0C: nop(addrAbsolute, 4, false),
	0x0D: op("ORA", addrAbsolute, execORA, 4),
	0x0E: op("ASL", addrAbsolute, execASL, 6),
	0x0F: nop(addrAbsolute, 6, false),

	// 0x10-0x1F
	0x10: op("BPL", addrImplied, execBPL, 2),
	0x11: opPage("ORA", addrIndirectY, execORA, 5),
	0x12: hlt("JAM"),
	0x13: nop(addrIndirectY, 8, false),
	0x14: nop(addrZPX, 4, false),
	0x15: op("ORA", addrZPX, execORA, 4),
	0x16: op("ASL", addrZPX, execASL, 6),
	0x17: nop(addrZPX, 6, false),
	0x18: op("CLC", addrImplied, execCLC, 2),
	0x19: opPage("ORA", addrAbsoluteY, execORA, 4),
	0x1A: nop(addrImplied, 2, false),
	0x1B: nop(addrAbsoluteY, 7, false),
	0x1C: opPage("*NOP", addrAbsoluteX, execNOP, 4),
	0x1D: opPage("ORA", addrAbsoluteX, execORA, 4),
	0x1E: op("ASL", addrAbsoluteX, execASL, 7),
	0x1F: nop(addrAbsoluteX, 7, false),

	// 0x20-0x2F
	0x20: op("JSR", addrAbsolute, execJSR, 6),
	0x21: op("AND", addrIndirectX, execAND, 6),
	0x22: hlt("JAM"),
	0x23: nop(addrIndirectX, 8, false),
	0x24: op("BIT", addrZP, execBIT, 3),
	0x25: op("AND", addrZP, execAND, 3),
	0x26: op("ROL", addrZP, execROL, 5),
	0x27: nop(addrZP, 5, false),
	0x28: op("PLP", addrImplied, execPLP, 4),
	0x29: op("AND", addrImmediate, execAND, 2),
	0x2A: op("ROL", addrImplied, execROLAcc, 2),
	0x2B: op("ANC", addrImmediate, execNOP, 2),
	0x2C: op("BIT", addrAbsolute, execBIT, 4),
	0x2D: op("AND", addrAbsolute, execAND, 4),
	0x2E: op("ROL", addrAbsolute, execROL, 6),
	0x2F: nop(addrAbsolute, 6, false),

	// 0x30-0x3F
	0x30: op("BMI", addrImplied, execBMI, 2),
	0x31: opPage("AND", addrIndirectY, execAND, 5),
	0x32: hlt("JAM"),
	0x33: nop(addrIndirectY, 8, false),
	0x34: nop(addrZPX, 4, false),
	0x35: op("AND", addrZPX, execAND, 4),
	0x36: op("ROL", addrZPX, execROL, 6),
	0x37: nop(addrZPX, 6, false),
	0x38: op("SEC", addrImplied, execSEC, 2),
	0x39: opPage("AND", addrAbsoluteY, execAND, 4),
	0x3A: nop(addrImplied, 2, false),
	0x3B: nop(addrAbsoluteY, 7, false),
	0x3C: opPage("*NOP", addrAbsoluteX, execNOP, 4),
	0x3D: opPage("AND", addrAbsoluteX, execAND, 4),
	0x3E: op("ROL", addrAbsoluteX, execROL, 7),
	0x3F: nop(addrAbsoluteX, 7, false),

	// 0x40-0x4F
	0x40: op("RTI", addrImplied, execRTI, 6),
	0x41: op("EOR", addrIndirectX, execEOR, 6),
	0x42: hlt("JAM"),
	0x43: nop(addrIndirectX, 8, false),
	0x44: nop(addrZP, 3, false),
	0x45: op("EOR", addrZP, execEOR, 3),
	0x46: op("LSR", addrZP, execLSR, 5),
	0x47: nop(addrZP, 5, false),
	0x48: op("PHA", addrImplied, execPHA, 3),
	0x49: op("EOR", addrImmediate, execEOR, 2),
	0x4A: op("LSR", addrImplied, execLSRAcc, 2),
	0x4B: op("ALR", addrImmediate, execNOP, 2),
	0x4C: op("JMP", addrAbsolute, execJMP, 3),
	0x4D: op("EOR", addrAbsolute, execEOR, 4),
	0x4E: op("LSR", addrAbsolute, execLSR, 6),
	0x4F: nop(addrAbsolute, 6, false),

	// 0x50-0x5F
	0x50: op("BVC", addrImplied, execBVC, 2),
	0x51: opPage("EOR", addrIndirectY, execEOR, 5),
	0x52: hlt("JAM"),
	0x53: nop(addrIndirectY, 8, false),
	0x54: nop(addrZPX, 4, false),
	0x55: op("EOR", addrZPX, execEOR, 4),
	0x56: op("LSR", addrZPX, execLSR, 6),
	0x57: nop(addrZPX, 6, false),
	0x58: op("CLI", addrImplied, execCLI, 2),
	0x59: opPage("EOR", addrAbsoluteY, execEOR, 4),
	0x5A: nop(addrImplied, 2, false),
	0x5B: nop(addrAbsoluteY, 7, false),
	0x5C: opPage("*NOP", addrAbsoluteX, execNOP, 4),
	0x5D: opPage("EOR", addrAbsoluteX, execEOR, 4),
	0x5E: op("LSR", addrAbsoluteX, execLSR, 7),
	0x5F: nop(addrAbsoluteX, 7, false),

	// 0x60-0x6F
	0x60: op("RTS", addrImplied, execRTS, 6),
	0x61: op("ADC", addrIndirectX, execADC, 6),
	0x62: hlt("JAM"),
	0x63: nop(addrIndirectX, 8, false),
	0x64: nop(addrZP, 3, false),
	0x65: op("ADC", addrZP, execADC, 3),
	0x66: op("ROR", addrZP, execROR, 5),
	0x67: nop(addrZP, 5, false),
	0x68: op("PLA", addrImplied, execPLA, 4),
	0x69: op("ADC", addrImmediate, execADC, 2),
	0x6A: op("ROR", addrImplied, execRORAcc, 2),
	0x6B: op("ARR", addrImmediate, execNOP, 2),
	0x6C: op("JMP", addrIndirect, execJMP, 5),
	0x6D: op("ADC", addrAbsolute, execADC, 4),
	0x6E: op("ROR", addrAbsolute, execROR, 6),
	0x6F: nop(addrAbsolute, 6, false),

	// 0x70-0x7F
	0x70: op("BVS", addrImplied, execBVS, 2),
	0x71: opPage("ADC", addrIndirectY, execADC, 5),
	0x72: hlt("JAM"),
	0x73: nop(addrIndirectY, 8, false),
	0x74: nop(addrZPX, 4, false),
	0x75: op("ADC", addrZPX, execADC, 4),
	0x76: op("ROR", addrZPX, execROR, 6),
	0x77: nop(addrZPX, 6, false),
	0x78: op("SEI", addrImplied, execSEI, 2),
	0x79: opPage("ADC", addrAbsoluteY, execADC, 4),
	0x7A: nop(addrImplied, 2, false),
	0x7B: nop(addrAbsoluteY, 7, false),
	0x7C: opPage("*NOP", addrAbsoluteX, execNOP, 4),
	0x7D: opPage("ADC", addrAbsoluteX, execADC, 4),
	0x7E: op("ROR", addrAbsoluteX, execROR, 7),
	0x7F: nop(addrAbsoluteX, 7, false),

	// 0x80-0x8F
	0x80: nop(addrImmediate, 2, false),
	0x81: op("STA", addrIndirectX, execSTA, 6),
	0x82: nop(addrImmediate, 2, false),
	0x83: nop(addrIndirectX, 6, false),
	0x84: op("STY", addrZP, execSTY, 3),
	0x85: op("STA", addrZP, execSTA, 3),
	0x86: op("STX", addrZP, execSTX, 3),
	0x87: nop(addrZP, 3, false),
	0x88: op("DEY", addrImplied, execDEY, 2),
	0x89: nop(addrImmediate, 2, false),
	0x8A: op("TXA", addrImplied, execTXA, 2),
	0x8B: op("XAA", addrImmediate, execNOP, 2),
	0x8C: op("STY", addrAbsolute, execSTY, 4),
	0x8D: op("STA", addrAbsolute, execSTA, 4),
	0x8E: op("STX", addrAbsolute, execSTX, 4),
	0x8F: nop(addrAbsolute, 4, false),

	// 0x90-0x9F
	0x90: op("BCC", addrImplied, execBCC, 2),
	0x91: op("STA", addrIndirectY, execSTA, 6),
	0x92: hlt("JAM"),
	0x93: nop(addrIndirectY, 6, false),
	0x94: op("STY", addrZPX, execSTY, 4),
	0x95: op("STA", addrZPX, execSTA, 4),
	0x96: op("STX", addrZPY, execSTX, 4),
	0x97: nop(addrZPY, 4, false),
	0x98: op("TYA", addrImplied, execTYA, 2),
	0x99: op("STA", addrAbsoluteY, execSTA, 5),
	0x9A: op("TXS", addrImplied, execTXS, 2),
	0x9B: nop(addrAbsoluteY, 5, false),
	0x9C: nop(addrAbsoluteX, 5, false),
	0x9D: op("STA", addrAbsoluteX, execSTA, 5),
	0x9E: nop(addrAbsoluteY, 5, false),
	0x9F: nop(addrAbsoluteY, 5, false),

	// 0xA0-0xAF
	0xA0: op("LDY", addrImmediate, execLDY, 2),
	0xA1: op("LDA", addrIndirectX, execLDA, 6),
	0xA2: op("LDX", addrImmediate, execLDX, 2),
	0xA3: nop(addrIndirectX, 6, false),
	0xA4: op("LDY", addrZP, execLDY, 3),
	0xA5: op("LDA", addrZP, execLDA, 3),
	0xA6: op("LDX", addrZP, execLDX, 3),
	0xA7: nop(addrZP, 3, false),
	0xA8: op("TAY", addrImplied, execTAY, 2),
	0xA9: op("LDA", addrImmediate, execLDA, 2),
	0xAA: op("TAX", addrImplied, execTAX, 2),
	0xAB: op("LAX", addrImmediate, execNOP, 2),
	0xAC: op("LDY", addrAbsolute, execLDY, 4),
	0xAD: op("LDA", addrAbsolute, execLDA, 4),
	0xAE: op("LDX", addrAbsolute, execLDX, 4),
	0xAF: nop(addrAbsolute, 4, false),

	// 0xB0-0xBF
	0xB0: op("BCS", addrImplied, execBCS, 2),
	0xB1: opPage("LDA", addrIndirectY, execLDA, 5),
	0xB2: hlt("JAM"),
	0xB3: nop(addrIndirectY, 5, false),
	0xB4: op("LDY", addrZPX, execLDY, 4),
	0xB5: op("LDA", addrZPX, execLDA, 4),
	0xB6: op("LDX", addrZPY, execLDX, 4),
	0xB7: nop(addrZPY, 4, false),
	0xB8: op("CLV", addrImplied, execCLV, 2),
	0xB9: opPage("LDA", addrAbsoluteY, execLDA, 4),
	0xBA: op("TSX", addrImplied, execTSX, 2),
	0xBB: nop(addrAbsoluteY, 4, false),
	0xBC: opPage("LDY", addrAbsoluteX, execLDY, 4),
	0xBD: opPage("LDA", addrAbsoluteX, execLDA, 4),
	0xBE: opPage("LDX", addrAbsoluteY, execLDX, 4),
	0xBF: nop(addrAbsoluteY, 4, false),

	// 0xC0-0xCF
	0xC0: op("CPY", addrImmediate, execCPY, 2),
	0xC1: op("CMP", addrIndirectX, execCMP, 6),
	0xC2: nop(addrImmediate, 2, false),
	0xC3: nop(addrIndirectX, 8, false),
	0xC4: op("CPY", addrZP, execCPY, 3),
	0xC5: op("CMP", addrZP, execCMP, 3),
	0xC6: op("DEC", addrZP, execDEC, 5),
	0xC7: nop(addrZP, 5, false),
	0xC8: op("INY", addrImplied, execINY, 2),
	0xC9: op("CMP", addrImmediate, execCMP, 2),
	0xCA: op("DEX", addrImplied, execDEX, 2),
	0xCB: op("AXS", addrImmediate, execNOP, 2),
	0xCC: op("CPY", addrAbsolute, execCPY, 4),
	0xCD: op("CMP", addrAbsolute, execCMP, 4),
	0xCE: op("DEC", addrAbsolute, execDEC, 6),
	0xCF: nop(addrAbsolute, 6, false),

	// 0xD0-0xDF
	0xD0: op("BNE", addrImplied, execBNE, 2),
	0xD1: opPage("CMP", addrIndirectY, execCMP, 5),
	0xD2: hlt("JAM"),
	0xD3: nop(addrIndirectY, 8, false),
	0xD4: nop(addrZPX, 4, false),
	0xD5: op("CMP", addrZPX, execCMP, 4),
	0xD6: op("DEC", addrZPX, execDEC, 6),
	0xD7: nop(addrZPX, 6, false),
	0xD8: op("CLD", addrImplied, execCLD, 2),
	0xD9: opPage("CMP", addrAbsoluteY, execCMP, 4),
	0xDA: nop(addrImplied, 2, false),
	0xDB: nop(addrAbsoluteY, 7, false),
	0xDC: opPage("*NOP", addrAbsoluteX, execNOP, 4),
	0xDD: opPage("CMP", addrAbsoluteX, execCMP, 4),
	0xDE: op("DEC", addrAbsoluteX, execDEC, 7),
	0xDF: nop(addrAbsoluteX, 7, false),

	// 0xE0-0xEF
	0xE0: op("CPX", addrImmediate, execCPX, 2),
	0xE1: op("SBC", addrIndirectX, execSBC, 6),
	0xE2: nop(addrImmediate, 2, false),
	0xE3: nop(addrIndirectX, 8, false),
	0xE4: op("CPX", addrZP, execCPX, 3),
	0xE5: op("SBC", addrZP, execSBC, 3),
	0xE6: op("INC", addrZP, execINC, 5),
	0xE7: nop(addrZP, 5, false),
	0xE8: op("INX", addrImplied, execINX, 2),
	0xE9: op("SBC", addrImmediate, execSBC, 2),
	0xEA: op("NOP", addrImplied, execNOP, 2),
	0xEB: op("SBC", addrImmediate, execNOP, 2),
	0xEC: op("CPX", addrAbsolute, execCPX, 4),
	0xED: op("SBC", addrAbsolute, execSBC, 4),
	0xEE: op("INC", addrAbsolute, execINC, 6),
	0xEF: nop(addrAbsolute, 6, false),

	// 0xF0-0xFF
	0xF0: op("BEQ", addrImplied, execBEQ, 2),
	0xF1: opPage("SBC", addrIndirectY, execSBC, 5),
	0xF2: hlt("JAM"),
	0xF3: nop(addrIndirectY, 8, false),
	0xF4: nop(addrZPX, 4, false),
	0xF5: op("SBC", addrZPX, execSBC, 4),
	0xF6: op("INC", addrZPX, execINC, 6),
	0xF7: nop(addrZPX, 6, false),
	0xF8: op("SED", addrImplied, execSED, 2),
	0xF9: opPage("SBC", addrAbsoluteY, execSBC, 4),
	0xFA: nop(addrImplied, 2, false),
	0xFB: nop(addrAbsoluteY, 7, false),
	0xFC: opPage("*NOP", addrAbsoluteX, execNOP, 4),
	0xFD: opPage("SBC", addrAbsoluteX, execSBC, 4),
	0xFE: op("INC", addrAbsoluteX, execINC, 7),
	0xFF: nop(addrAbsoluteX, 7, false),
}
