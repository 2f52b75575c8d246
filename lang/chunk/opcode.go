// Package chunk implements the bytecode model of spec.md §4.2: function
// prototypes holding an append-only byte buffer, a program-wide constants
// table, and back-patchable jumps.
package chunk

import "fmt"

// Opcode is one instruction in a function prototype's bytecode buffer.
// Naming/format follows the teacher's lang/compiler/opcode.go ( Opcode
// uint8, String() via a name table), but the concrete set and the
// fixed-width operand encoding (1-byte opcode, 2-byte unsigned or signed
// operands) follow spec.md §4.2, not the teacher's own varint scheme.
type Opcode uint8

const (
	NOP Opcode = iota

	// Stack.
	CONSTANT // CONSTANT k: pushes constants[k]
	POP      // POP n: discards n values
	IGNORE   // IGNORE: discards the top value

	// Locals/upvalues.
	LOCAL     // LOCAL i: pushes slot i (i<0 => upvalue)
	SET_LOCAL // SET_LOCAL i: stores top into slot i
	LET       // LET: records the top as the next local
	GLOBAL    // GLOBAL k: pushes the global named by constants[k]

	// Arithmetic & logic.
	UNI_MINUS
	NOT
	BIN_PLUS
	BIN_MINUS
	MULTIPLY
	DIVIDE
	MODULO
	POWER
	AND
	OR
	EQUALS
	LESS
	LESS_OR_EQ
	INDEX

	// Control flow.
	JUMP         // JUMP d
	JUMP_IF_NOT  // JUMP_IF_NOT d: pops a boolean
	RETURN       // RETURN: pops one value

	// Aggregates and calls.
	MAKE_LIST   // MAKE_LIST n
	CALL        // CALL n
	MAKE_FUNC   // MAKE_FUNC proto n_args n_upvalues [upvalues...]
	MAKE_METHOD // MAKE_METHOD k_ns k_name
)

var opcodeNames = [...]string{
	NOP:         "nop",
	CONSTANT:    "constant",
	POP:         "pop",
	IGNORE:      "ignore",
	LOCAL:       "local",
	SET_LOCAL:   "set_local",
	LET:         "let",
	GLOBAL:      "global",
	UNI_MINUS:   "uni_minus",
	NOT:         "not",
	BIN_PLUS:    "bin_plus",
	BIN_MINUS:   "bin_minus",
	MULTIPLY:    "multiply",
	DIVIDE:      "divide",
	MODULO:      "modulo",
	POWER:       "power",
	AND:         "and",
	OR:          "or",
	EQUALS:      "equals",
	LESS:        "less",
	LESS_OR_EQ:  "less_or_eq",
	INDEX:       "index",
	JUMP:        "jump",
	JUMP_IF_NOT: "jump_if_not",
	RETURN:      "return",
	MAKE_LIST:   "make_list",
	CALL:        "call",
	MAKE_FUNC:   "make_func",
	MAKE_METHOD: "make_method",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal op (%d)", op)
}

// maxU16 is the largest value a 2-byte unsigned operand can hold, and the
// static limit spec.md §7 imposes on constants, prototypes, arguments,
// upvalues, and list elements.
const maxU16 = 0xffff

// maxJump is the largest magnitude a 2-byte signed jump displacement can
// hold, spec.md §4.2/§7's static limit on jump distance.
const (
	maxJump = 1<<15 - 1
	minJump = -(1 << 15)
)
