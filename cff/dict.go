package cff

import (
	"strconv"
	"strings"
)

// Operator identifies a DICT key: either a single-byte opcode 0..21
// (excluding 12) or the two-byte escape "12 xx".
type Operator struct {
	Escape bool
	Op     byte
}

// Value is a single DICT operand: either an integer or a real number.
type Value struct {
	IsFloat bool
	Int     int32
	Float   float32
}

func intValue(v int32) Value   { return Value{Int: v} }
func floatValue(v float32) Value { return Value{IsFloat: true, Float: v} }

// AsFloat64 returns the value as a float64 regardless of its tag.
func (v Value) AsFloat64() float64 {
	if v.IsFloat {
		return float64(v.Float)
	}
	return float64(v.Int)
}

// AsInt32 truncates a float value to an int32, or returns the integer
// directly.
func (v Value) AsInt32() int32 {
	if v.IsFloat {
		return int32(v.Float)
	}
	return v.Int
}

// Dict is a decoded CFF DICT: an operator-keyed map of operand lists. Most
// operators carry exactly one operand; a handful (FontMatrix, FontBBox,
// Private, ROS) carry several.
type Dict map[Operator][]Value

// Well-known single-byte ("Short") operators.
var (
	opVersion            = Operator{Op: 0}
	opNotice             = Operator{Op: 1}
	opFullName           = Operator{Op: 2}
	opFamilyName         = Operator{Op: 3}
	opWeight             = Operator{Op: 4}
	opFontBBox           = Operator{Op: 5}
	opUniqueID           = Operator{Op: 13}
	opCharStrings        = Operator{Op: 17}
	opPrivate            = Operator{Op: 18}
	opSubrs              = Operator{Op: 19}
	opDefaultWidthX      = Operator{Op: 20}
	opNominalWidthX      = Operator{Op: 21}
)

// Well-known two-byte ("Long", 12 xx) operators.
var (
	opCopyright           = Operator{Escape: true, Op: 0}
	opIsFixedPitch        = Operator{Escape: true, Op: 1}
	opItalicAngle         = Operator{Escape: true, Op: 2}
	opUnderlinePosition   = Operator{Escape: true, Op: 3}
	opUnderlineThickness  = Operator{Escape: true, Op: 4}
	opPaintType           = Operator{Escape: true, Op: 5}
	opCharstringType      = Operator{Escape: true, Op: 6}
	opFontMatrix          = Operator{Escape: true, Op: 7}
	opStrokeWidth         = Operator{Escape: true, Op: 8}
)

// DecodeDict tokenizes a DICT byte stream into operator/operand records.
func DecodeDict(data []byte) (Dict, error) {
	d := make(Dict)
	var operands []Value

	i := 0
	for i < len(data) {
		b0 := data[i]
		switch {
		case b0 <= 21:
			var op Operator
			if b0 == 12 {
				if i+1 >= len(data) {
					return nil, errTruncatedDict
				}
				op = Operator{Escape: true, Op: data[i+1]}
				i += 2
			} else {
				op = Operator{Op: b0}
				i++
			}
			d[op] = operands
			operands = nil

		case b0 == 28:
			if i+2 >= len(data) {
				return nil, errTruncatedDict
			}
			v := int16(uint16(data[i+1])<<8 | uint16(data[i+2]))
			operands = append(operands, intValue(int32(v)))
			i += 3

		case b0 == 29:
			if i+4 >= len(data) {
				return nil, errTruncatedDict
			}
			v := uint32(data[i+1])<<24 | uint32(data[i+2])<<16 | uint32(data[i+3])<<8 | uint32(data[i+4])
			operands = append(operands, intValue(int32(v)))
			i += 5

		case b0 == 30:
			v, n, err := decodeDictFloat(data[i+1:])
			if err != nil {
				return nil, err
			}
			operands = append(operands, floatValue(v))
			i += 1 + n

		case b0 >= 32 && b0 <= 246:
			operands = append(operands, intValue(int32(b0)-139))
			i++

		case b0 >= 247 && b0 <= 250:
			if i+1 >= len(data) {
				return nil, errTruncatedDict
			}
			v := (int32(b0)-247)*256 + int32(data[i+1]) + 108
			operands = append(operands, intValue(v))
			i += 2

		case b0 >= 251 && b0 <= 254:
			if i+1 >= len(data) {
				return nil, errTruncatedDict
			}
			v := -(int32(b0)-251)*256 - int32(data[i+1]) - 108
			operands = append(operands, intValue(v))
			i += 2

		default:
			// Reserved byte (22..27, 31, 255); skip it rather than fail,
			// mirroring the decoder's general tolerance of malformed DICTs.
			i++
		}
	}

	return d, nil
}

var errTruncatedDict = dictError("truncated DICT operand")

type dictError string

func (e dictError) Error() string { return string(e) }

// nibble table for the CFF real-number encoding (operator 30).
var dictFloatNibbles = [16]string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	".", "E", "E-", "", "-", "",
}

// decodeDictFloat parses a variable-length BCD float starting at data,
// terminated by nibble 0xF. It returns the parsed value and the number of
// bytes consumed (including the terminator).
func decodeDictFloat(data []byte) (float32, int, error) {
	var sb strings.Builder
	n := 0
	for {
		if n >= len(data) {
			return 0, n, errTruncatedDict
		}
		b := data[n]
		n++
		hi, lo := b>>4, b&0xF
		done := false
		for _, nib := range [2]byte{hi, lo} {
			if nib == 0xF {
				done = true
				break
			}
			sb.WriteString(dictFloatNibbles[nib])
		}
		if done {
			break
		}
	}
	v, err := strconv.ParseFloat(sb.String(), 32)
	if err != nil {
		return 0, n, nil
	}
	return float32(v), n, nil
}

// getInt returns the sole integer operand for op, or def if op is absent.
func (d Dict) getInt(op Operator, def int32) int32 {
	vs, ok := d[op]
	if !ok || len(vs) == 0 {
		return def
	}
	return vs[0].AsInt32()
}

// getFloat returns the sole float operand for op, or def if op is absent.
func (d Dict) getFloat(op Operator, def float64) float64 {
	vs, ok := d[op]
	if !ok || len(vs) == 0 {
		return def
	}
	return vs[0].AsFloat64()
}

// getFloats returns all operands for op as float64s.
func (d Dict) getFloats(op Operator) []float64 {
	vs, ok := d[op]
	if !ok {
		return nil
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.AsFloat64()
	}
	return out
}

// getSID returns the SID (string index) operand for op, or -1 if absent.
func (d Dict) getSID(op Operator) int32 {
	vs, ok := d[op]
	if !ok || len(vs) == 0 {
		return -1
	}
	return vs[0].AsInt32()
}
