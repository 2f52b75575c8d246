package chunk

import (
	"encoding/binary"
	"fmt"

	"github.com/somire-lang/somire/lang/typesys"
)

// FunctionProto is one function's compiled bytecode and metadata (spec.md
// §3's "Function prototype"): a growable byte buffer, a fixed arity, a
// declared result type, and — once emission of a nested function literal
// completes — the list of upvalue source-slot indices captured from the
// immediately enclosing function.
type FunctionProto struct {
	Code       []byte
	Arity      int
	ResultType *typesys.Type
	// Upvalues holds, for each upvalue this prototype's function captures,
	// the source slot index (local or upvalue) in the immediately enclosing
	// function's context. Populated by the emitter once the function
	// literal's body has been fully compiled.
	Upvalues []int16
}

// NewFunctionProto returns an empty prototype for a function of the given
// arity and declared result type.
func NewFunctionProto(arity int, resultType *typesys.Type) *FunctionProto {
	return &FunctionProto{Arity: arity, ResultType: resultType}
}

// Offset returns the current write position, i.e. the byte offset the next
// appended instruction will start at.
func (p *FunctionProto) Offset() int { return len(p.Code) }

func (p *FunctionProto) appendU8(b byte)     { p.Code = append(p.Code, b) }
func (p *FunctionProto) appendOp(op Opcode)  { p.appendU8(byte(op)) }
func (p *FunctionProto) appendU16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	p.Code = append(p.Code, buf[:]...)
}
func (p *FunctionProto) appendI16(v int16) { p.appendU16(uint16(v)) }

// checkU16 enforces the spec.md §7 static limit of 65535 on constant,
// prototype, argument, upvalue and list-element counts/indices.
func checkU16(n int, what string) (uint16, error) {
	if n < 0 || n > maxU16 {
		return 0, fmt.Errorf("compile error: too many %s (%d exceeds the 65535 limit)", what, n)
	}
	return uint16(n), nil
}

// EmitConstant appends `CONSTANT k`.
func (p *FunctionProto) EmitConstant(k int) error {
	kk, err := checkU16(k, "constants")
	if err != nil {
		return err
	}
	p.appendOp(CONSTANT)
	p.appendU16(kk)
	return nil
}

// EmitPop appends `POP n`.
func (p *FunctionProto) EmitPop(n int) error {
	nn, err := checkU16(n, "locals to pop")
	if err != nil {
		return err
	}
	p.appendOp(POP)
	p.appendU16(nn)
	return nil
}

// EmitIgnore appends `IGNORE`.
func (p *FunctionProto) EmitIgnore() { p.appendOp(IGNORE) }

// EmitLocal appends `LOCAL i` (i may be negative, meaning an upvalue).
func (p *FunctionProto) EmitLocal(i int16) {
	p.appendOp(LOCAL)
	p.appendI16(i)
}

// EmitSetLocal appends `SET_LOCAL i`.
func (p *FunctionProto) EmitSetLocal(i int16) {
	p.appendOp(SET_LOCAL)
	p.appendI16(i)
}

// EmitLet appends `LET`.
func (p *FunctionProto) EmitLet() { p.appendOp(LET) }

// EmitGlobal appends `GLOBAL k`.
func (p *FunctionProto) EmitGlobal(k int) error {
	kk, err := checkU16(k, "constants")
	if err != nil {
		return err
	}
	p.appendOp(GLOBAL)
	p.appendU16(kk)
	return nil
}

// EmitSimple appends a zero-operand opcode, for the arithmetic/logic and
// RETURN instructions.
func (p *FunctionProto) EmitSimple(op Opcode) { p.appendOp(op) }

// EmitJumpPlaceholder appends op (JUMP or JUMP_IF_NOT) with a 16-bit
// zero-filled placeholder and returns the offset of the placeholder field,
// to be passed to PatchJump once the jump target is known.
func (p *FunctionProto) EmitJumpPlaceholder(op Opcode) int {
	p.appendOp(op)
	pos := p.Offset()
	p.appendI16(0)
	return pos
}

// PatchJump back-patches the displacement at placeholder (an offset
// previously returned by EmitJumpPlaceholder) so that it lands on the
// current write offset. The displacement is measured from the position
// immediately after the 2-byte operand field, per spec.md §4.2.
func (p *FunctionProto) PatchJump(placeholder int) error {
	disp := p.Offset() - (placeholder + 2)
	if disp > maxJump || disp < minJump {
		return fmt.Errorf("compile error: jump displacement %d does not fit in a signed 16-bit integer", disp)
	}
	binary.LittleEndian.PutUint16(p.Code[placeholder:placeholder+2], uint16(int16(disp)))
	return nil
}

// EmitJumpBack appends an unconditional `JUMP` whose displacement targets
// loopHead, a previously recorded offset (used for while loops, which jump
// backwards to re-test the condition).
func (p *FunctionProto) EmitJumpBack(loopHead int) error {
	p.appendOp(JUMP)
	pos := p.Offset()
	disp := loopHead - (pos + 2)
	if disp > maxJump || disp < minJump {
		return fmt.Errorf("compile error: jump displacement %d does not fit in a signed 16-bit integer", disp)
	}
	p.appendI16(int16(disp))
	return nil
}

// EmitMakeList appends `MAKE_LIST n`.
func (p *FunctionProto) EmitMakeList(n int) error {
	nn, err := checkU16(n, "elements in list literal")
	if err != nil {
		return err
	}
	p.appendOp(MAKE_LIST)
	p.appendU16(nn)
	return nil
}

// EmitCall appends `CALL n`.
func (p *FunctionProto) EmitCall(n int) error {
	nn, err := checkU16(n, "arguments in call")
	if err != nil {
		return err
	}
	p.appendOp(CALL)
	p.appendU16(nn)
	return nil
}

// EmitMakeFunc appends `MAKE_FUNC proto n_args n_upvalues [upvalues...]`.
func (p *FunctionProto) EmitMakeFunc(proto int, nArgs int, upvalues []int16) error {
	pp, err := checkU16(proto, "functions in program")
	if err != nil {
		return err
	}
	na, err := checkU16(nArgs, "arguments in function definition")
	if err != nil {
		return err
	}
	nu, err := checkU16(len(upvalues), "upvalues in function definition")
	if err != nil {
		return err
	}
	p.appendOp(MAKE_FUNC)
	p.appendU16(pp)
	p.appendU16(na)
	p.appendU16(nu)
	for _, uv := range upvalues {
		p.appendI16(uv)
	}
	return nil
}

// EmitMakeMethod appends `MAKE_METHOD k_ns k_name`.
func (p *FunctionProto) EmitMakeMethod(nsConst, nameConst int) error {
	ns, err := checkU16(nsConst, "constants")
	if err != nil {
		return err
	}
	nm, err := checkU16(nameConst, "constants")
	if err != nil {
		return err
	}
	p.appendOp(MAKE_METHOD)
	p.appendU16(ns)
	p.appendU16(nm)
	return nil
}
