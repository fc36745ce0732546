// Package trace loads the single-instruction JSON test corpus (each
// case gives a register/RAM snapshot before an opcode runs and the
// snapshot it must produce after) and runs it against a cpu.Chip. The
// loader's tolerance for the corpus's on-disk shape and its ADC/SBC
// decimal-mode skip rule are both carried over from the harness this
// format originated from.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jchacon-student/nes6502/cpu"
	"github.com/jchacon-student/nes6502/memory"
)

// State is one register/RAM snapshot, named and shaped to match the
// corpus's JSON exactly.
type State struct {
	PC  uint16      `json:"pc"`
	S   uint8       `json:"s"`
	A   uint8       `json:"a"`
	X   uint8       `json:"x"`
	Y   uint8       `json:"y"`
	P   uint8       `json:"p"`
	Ram [][2]uint32 `json:"ram"`
}

// Case is one test case: a name (conventionally "XX YY ZZ", the hex
// opcode byte and its operand bytes), an initial state to install, and
// the final state to assert against after the instruction completes.
type Case struct {
	Name  string `json:"name"`
	Initial State `json:"initial"`
	Final   State `json:"final"`
}

// knownBadCase is excluded the same way the original harness excluded
// it: by name, with no further explanation available for why its
// expected state doesn't match real hardware.
const knownBadCase = "20 55 13"

// decimalModeOpcodes lists every ADC/SBC opcode byte (lowercase hex, as
// it appears in a case name's first two characters). Cases for these
// opcodes are skipped when the initial P byte has the D flag set: this
// corpus's decimal-mode ADC/SBC expectations assume BCD correction,
// which the NES's Ricoh 2A03 core never performs.
var decimalModeOpcodes = map[string]bool{
	"61": true, "65": true, "69": true, "6d": true,
	"71": true, "75": true, "79": true, "7d": true,
	"e1": true, "e5": true, "e9": true, "ed": true,
	"f1": true, "f5": true, "f9": true, "fd": true,
}

const decimalFlag = uint8(0x08)

// shouldSkip reports whether a case should be skipped rather than run:
// either it's the one documented bad case, or it's an ADC/SBC case
// whose initial state is in decimal mode.
func shouldSkip(tc Case) bool {
	if tc.Name == knownBadCase {
		return true
	}
	if len(tc.Name) < 2 {
		return false
	}
	prefix := strings.ToLower(tc.Name[:2])
	return decimalModeOpcodes[prefix] && tc.Initial.P&decimalFlag != 0
}

// LoadFile parses one corpus file's cases. The corpus ships files as
// either a proper JSON array, or (in some generators) a bare sequence
// of comma-separated objects with no enclosing brackets; both shapes
// are accepted by wrapping the latter in "[" and "]" before parsing.
func LoadFile(path string) ([]Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		trimmed = "[" + strings.TrimRight(trimmed, ",") + "]"
	}
	var cases []Case
	if err := json.Unmarshal([]byte(trimmed), &cases); err != nil {
		return nil, fmt.Errorf("%s: JSON parse error: %w", filepath.Base(path), err)
	}
	return cases, nil
}

// LoadDir parses every *.json file directly under dir and concatenates
// their cases, in directory-listing order.
func LoadDir(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var all []Case
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		cases, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

// Mismatch describes one field that didn't match the expected final
// state after running a Case.
type Mismatch struct {
	Field string
	Got   uint32
	Want  uint32
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got 0x%X, want 0x%X", m.Field, m.Got, m.Want)
}

// Run installs tc's initial state into a fresh Chip, runs Ticks until
// the Chip returns to an instruction boundary, and compares every
// register and every listed RAM cell against tc's final state. It
// returns one Mismatch per field that disagrees, in a fixed order
// (registers first, then RAM cells in the order the case lists them).
// A case that shouldSkip excludes is not run: Run returns no
// mismatches and no error for it.
func Run(tc Case) ([]Mismatch, error) {
	if shouldSkip(tc) {
		return nil, nil
	}
	ram := memory.NewFlat()
	c, err := cpu.Init(&cpu.ChipDef{Ram: ram})
	if err != nil {
		return nil, err
	}

	for _, kv := range tc.Initial.Ram {
		ram.Write(uint16(kv[0]), uint8(kv[1]))
	}
	c.PC = tc.Initial.PC
	c.SP = tc.Initial.S
	c.A = tc.Initial.A
	c.X = tc.Initial.X
	c.Y = tc.Initial.Y
	c.P = tc.Initial.P

	if err := c.Tick(); err != nil {
		return nil, err
	}
	for !c.AtInstructionBoundary() {
		if err := c.Tick(); err != nil {
			return nil, err
		}
	}

	var mismatches []Mismatch
	check := func(field string, got, want uint8) {
		if got != want {
			mismatches = append(mismatches, Mismatch{field, uint32(got), uint32(want)})
		}
	}
	check("A", c.A, tc.Final.A)
	check("X", c.X, tc.Final.X)
	check("Y", c.Y, tc.Final.Y)
	check("SP", c.SP, tc.Final.S)
	check("P", c.P, tc.Final.P)
	if c.PC != tc.Final.PC {
		mismatches = append(mismatches, Mismatch{"PC", uint32(c.PC), uint32(tc.Final.PC)})
	}
	for _, kv := range tc.Final.Ram {
		addr, want := uint16(kv[0]), uint8(kv[1])
		if got := ram.Read(addr); got != want {
			mismatches = append(mismatches, Mismatch{
				Field: fmt.Sprintf("ram[0x%04X]", addr),
				Got:   uint32(got),
				Want:  uint32(want),
			})
		}
	}
	return mismatches, nil
}
