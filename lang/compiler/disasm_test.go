package compiler

import (
	"encoding/binary"
	"fmt"

	"github.com/somire-lang/somire/lang/chunk"
)

// decodeOps renders code as a flat list of opcode mnemonics, with operands
// inlined, for readable test assertions against spec.md §8's worked
// examples. It is test-only scaffolding, not a product disassembler (which
// is out of scope per spec.md §1).
func decodeOps(code []byte) []string {
	var out []string
	i := 0
	u16 := func() uint16 {
		v := binary.LittleEndian.Uint16(code[i : i+2])
		i += 2
		return v
	}
	i16 := func() int16 { return int16(u16()) }
	for i < len(code) {
		op := chunk.Opcode(code[i])
		i++
		switch op {
		case chunk.CONSTANT, chunk.POP, chunk.GLOBAL, chunk.MAKE_LIST, chunk.CALL:
			out = append(out, fmt.Sprintf("%s %d", op, u16()))
		case chunk.LOCAL, chunk.SET_LOCAL, chunk.JUMP, chunk.JUMP_IF_NOT:
			out = append(out, fmt.Sprintf("%s %d", op, i16()))
		case chunk.MAKE_FUNC:
			protoIdx := u16()
			nArgs := u16()
			nUp := u16()
			ups := make([]int16, nUp)
			for k := range ups {
				ups[k] = i16()
			}
			out = append(out, fmt.Sprintf("%s %d %d %d %v", op, protoIdx, nArgs, nUp, ups))
		case chunk.MAKE_METHOD:
			ns := u16()
			name := u16()
			out = append(out, fmt.Sprintf("%s %d %d", op, ns, name))
		default:
			out = append(out, op.String())
		}
	}
	return out
}
