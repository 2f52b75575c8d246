package chunk

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/somire-lang/somire/lang/gc"
	"github.com/somire-lang/somire/lang/value"
)

// Serialization is a bespoke little-endian binary layout private to this
// compiler (spec.md §6); no ecosystem encoding library models a
// variable-shaped instruction stream plus a discriminated constants table,
// so this file uses the standard library's encoding/binary (as proto.go
// does for operands), justified in DESIGN.md.

const (
	constNil byte = iota
	constBool
	constInt
	constReal
	constString
)

// Write serializes c to w: the magic header, the constants table, then each
// function prototype in order.
func Write(w io.Writer, c *Chunk) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(Magic[:]); err != nil {
		return err
	}

	n := c.constants.Len()
	if err := writeU16(bw, uint16(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := writeConstant(bw, c.constants.Items[i]); err != nil {
			return err
		}
	}

	if err := writeU16(bw, uint16(len(c.Protos))); err != nil {
		return err
	}
	for _, p := range c.Protos {
		if err := writeProto(bw, p); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeProto(w *bufio.Writer, p *FunctionProto) error {
	if err := writeU16(w, uint16(p.Arity)); err != nil {
		return err
	}
	if err := writeU16(w, uint16(len(p.Code))); err != nil {
		return err
	}
	_, err := w.Write(p.Code)
	return err
}

func writeConstant(w *bufio.Writer, v value.Value) error {
	switch v.Kind() {
	case value.KindNil:
		return w.WriteByte(constNil)
	case value.KindBool:
		if err := w.WriteByte(constBool); err != nil {
			return err
		}
		b := byte(0)
		if v.AsBool() {
			b = 1
		}
		return w.WriteByte(b)
	case value.KindInt:
		if err := w.WriteByte(constInt); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v.AsInt())
	case value.KindReal:
		if err := w.WriteByte(constReal); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v.AsReal())
	case value.KindRef:
		s, ok := v.AsRef().(*value.String)
		if !ok {
			return fmt.Errorf("compile error: only string constants may be serialized, got %T", v.AsRef())
		}
		if err := w.WriteByte(constString); err != nil {
			return err
		}
		raw := []byte(s.S)
		if err := writeU16(w, uint16(len(raw))); err != nil {
			return err
		}
		_, err := w.Write(raw)
		return err
	default:
		return fmt.Errorf("compile error: unserializable constant kind %v", v.Kind())
	}
}

func writeU16(w *bufio.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// Read deserializes a Chunk from r, allocating its constants table on heap.
func Read(r io.Reader, heap *gc.Heap) (*Chunk, error) {
	br := bufio.NewReader(r)

	var magic [8]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic header: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("not a somire chunk: bad magic header %v", magic)
	}

	c := NewChunk(heap)

	nConsts, err := readU16(br)
	if err != nil {
		return nil, fmt.Errorf("reading constant count: %w", err)
	}
	for i := 0; i < int(nConsts); i++ {
		v, err := readConstant(br, heap)
		if err != nil {
			return nil, fmt.Errorf("reading constant %d: %w", i, err)
		}
		c.constants.Append(v)
	}

	nProtos, err := readU16(br)
	if err != nil {
		return nil, fmt.Errorf("reading prototype count: %w", err)
	}
	for i := 0; i < int(nProtos); i++ {
		p, err := readProto(br)
		if err != nil {
			return nil, fmt.Errorf("reading prototype %d: %w", i, err)
		}
		c.Protos = append(c.Protos, p)
	}

	return c, nil
}

func readProto(r *bufio.Reader) (*FunctionProto, error) {
	arity, err := readU16(r)
	if err != nil {
		return nil, err
	}
	codeLen, err := readU16(r)
	if err != nil {
		return nil, err
	}
	code := make([]byte, codeLen)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, err
	}
	return &FunctionProto{Arity: int(arity), Code: code}, nil
}

func readConstant(r *bufio.Reader, heap *gc.Heap) (value.Value, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return value.Nil, err
	}
	switch tag {
	case constNil:
		return value.Nil, nil
	case constBool:
		b, err := r.ReadByte()
		if err != nil {
			return value.Nil, err
		}
		return value.Bool(b != 0), nil
	case constInt:
		var i int32
		if err := binary.Read(r, binary.LittleEndian, &i); err != nil {
			return value.Nil, err
		}
		return value.Int(i), nil
	case constReal:
		var f float64
		if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
			return value.Nil, err
		}
		return value.Real(f), nil
	case constString:
		n, err := readU16(r)
		if err != nil {
			return value.Nil, err
		}
		raw := make([]byte, n)
		if _, err := io.ReadFull(r, raw); err != nil {
			return value.Nil, err
		}
		s := value.NewString(heap, string(raw))
		return value.Ref(s), nil
	default:
		return value.Nil, fmt.Errorf("unknown constant tag %d", tag)
	}
}

func readU16(r *bufio.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}
