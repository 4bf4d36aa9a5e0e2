// Package binenc implements the binary DAST codec (spec.md §4.7): a
// little-endian, self-delimited tagged format with an interned string
// table. Fixed-width fields throughout — no varints — the same
// "varints would complicate random access" trade-off the teacher's token
// model makes, since the win here comes from interning repeated strings
// rather than from bit-packing individual integers.
package binenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/intern"
	"github.com/bukvar/bukvar/pkg/rangeset"
	"github.com/bukvar/bukvar/pkg/span"
)

const (
	magic   = "DAST"
	version = uint16(1)

	// flagHasSourceMap is bit0 of the stream's Flags field: when set,
	// every Node carries its span_start/span_end; when clear, both
	// fields are omitted from the stream entirely.
	flagHasSourceMap = uint16(1) << 0
)

// Sentinel errors a caller can match with errors.Is; spec.md §7 names
// exactly these four decode failure modes for CodecError.
var (
	ErrBadMagic           = errors.New("binenc: bad magic")
	ErrUnsupportedVersion = errors.New("binenc: unsupported version")
	ErrTruncated          = errors.New("binenc: truncated stream")
	ErrInvalidStringID    = errors.New("binenc: invalid string id")
)

// Options configures Encode.
type Options struct {
	// IncludeSpans controls whether per-node byte spans are written (the
	// "source map"). Omitting them shrinks the stream when the decoder
	// side never needs to map back to source positions.
	IncludeSpans bool
}

// Encode serializes doc into the binary DAST format.
func Encode(doc *dast.Node, opts Options) ([]byte, error) {
	table := intern.NewTable()
	collectStrings(doc, table)

	var body bytes.Buffer
	if err := encodeNode(&body, doc, table, opts.IncludeSpans); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString(magic)
	writeU16(&out, version)
	var flags uint16
	if opts.IncludeSpans {
		flags |= flagHasSourceMap
	}
	writeU16(&out, flags)

	strs := table.Strings()
	writeU32(&out, uint32(len(strs)))
	for _, s := range strs {
		writeU32(&out, uint32(len(s)))
		out.WriteString(s)
	}
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// Decode deserializes a binary DAST stream back into a tree. It is a
// bijective inverse of Encode: decode(encode(t)) == t for any tree an
// Encode call can produce (spec.md §8.2).
func Decode(data []byte) (*dast.Node, error) {
	d := &decoder{data: data}

	m, err := d.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", ErrTruncated)
	}
	if string(m) != magic {
		return nil, fmt.Errorf("%w: got %q", ErrBadMagic, m)
	}

	ver, err := d.u16()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", ErrTruncated)
	}
	if ver != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, ver)
	}

	flags, err := d.u16()
	if err != nil {
		return nil, fmt.Errorf("read flags: %w", ErrTruncated)
	}
	includeSpans := flags&flagHasSourceMap != 0

	count, err := d.u32()
	if err != nil {
		return nil, fmt.Errorf("read string table count: %w", ErrTruncated)
	}
	strs := make([]string, count)
	for i := range strs {
		n, err := d.u32()
		if err != nil {
			return nil, fmt.Errorf("read string %d length: %w", i, ErrTruncated)
		}
		b, err := d.bytes(int(n))
		if err != nil {
			return nil, fmt.Errorf("read string %d: %w", i, ErrTruncated)
		}
		strs[i] = string(b)
	}
	table := intern.FromStrings(strs)

	root, err := d.decodeNode(table, includeSpans)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// collectStrings interns every string a node tree will reference: each
// attribute's key (always a string, regardless of the attribute's own
// kind) and, for string-valued attributes, the value too. Keys are
// visited in sorted order within a node so that two Encode calls over the
// same tree always produce an identical string table.
func collectStrings(n *dast.Node, t *intern.Table) {
	for _, k := range sortedAttrKeys(n) {
		t.Intern(k)
		if a := n.Attrs[k]; a.Kind == dast.AttrString {
			t.Intern(a.Str)
		}
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		collectStrings(c, t)
	}
}

func encodeNode(buf *bytes.Buffer, n *dast.Node, t *intern.Table, includeSpans bool) error {
	buf.WriteByte(byte(n.Kind))
	if includeSpans {
		writeU32(buf, uint32(n.Span.Start))
		writeU32(buf, uint32(n.Span.End))
	}

	keys := sortedAttrKeys(n)
	writeU16(buf, uint16(len(keys)))
	for _, k := range keys {
		writeU32(buf, uint32(t.Intern(k)))
		if err := encodeAttrVal(buf, n.Attrs[k], t); err != nil {
			return err
		}
	}

	children := n.Children()
	writeU32(buf, uint32(len(children)))
	for _, c := range children {
		if err := encodeNode(buf, c, t, includeSpans); err != nil {
			return err
		}
	}
	return nil
}

func encodeAttrVal(buf *bytes.Buffer, a dast.Attr, t *intern.Table) error {
	switch a.Kind {
	case dast.AttrString:
		buf.WriteByte(0)
		writeU32(buf, uint32(t.Intern(a.Str)))
	case dast.AttrInt:
		buf.WriteByte(1)
		writeU64(buf, uint64(a.Int))
	case dast.AttrBool:
		buf.WriteByte(2)
		if a.Bool {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case dast.AttrRangeList:
		buf.WriteByte(3)
		writeU16(buf, uint16(len(a.Ranges)))
		for _, r := range a.Ranges {
			writeU32(buf, uint32(r.Start))
			writeU32(buf, uint32(r.End))
		}
	default:
		return fmt.Errorf("binenc: unknown attr kind %d", a.Kind)
	}
	return nil
}

func (d *decoder) decodeNode(table *intern.Table, includeSpans bool) (*dast.Node, error) {
	kindByte, err := d.u8()
	if err != nil {
		return nil, fmt.Errorf("read node kind: %w", ErrTruncated)
	}
	n := dast.New(dast.NodeKind(kindByte))

	if includeSpans {
		start, err := d.u32()
		if err != nil {
			return nil, fmt.Errorf("read span start: %w", ErrTruncated)
		}
		end, err := d.u32()
		if err != nil {
			return nil, fmt.Errorf("read span end: %w", ErrTruncated)
		}
		n.Span = span.Span{Start: int(start), End: int(end)}
	}

	attrCount, err := d.u16()
	if err != nil {
		return nil, fmt.Errorf("read attr count: %w", ErrTruncated)
	}
	for i := 0; i < int(attrCount); i++ {
		keyID, err := d.u32()
		if err != nil {
			return nil, fmt.Errorf("read attr %d key: %w", i, ErrTruncated)
		}
		key, ok := table.Lookup(intern.ID(keyID))
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrInvalidStringID, keyID)
		}
		val, err := d.decodeAttrVal(table)
		if err != nil {
			return nil, fmt.Errorf("read attr %q value: %w", key, err)
		}
		n.Set(key, val)
	}

	childCount, err := d.u32()
	if err != nil {
		return nil, fmt.Errorf("read child count: %w", ErrTruncated)
	}
	for i := 0; i < int(childCount); i++ {
		c, err := d.decodeNode(table, includeSpans)
		if err != nil {
			return nil, err
		}
		dast.AppendChild(n, c)
	}
	return n, nil
}

func (d *decoder) decodeAttrVal(table *intern.Table) (dast.Attr, error) {
	tag, err := d.u8()
	if err != nil {
		return dast.Attr{}, fmt.Errorf("read attr tag: %w", ErrTruncated)
	}
	switch tag {
	case 0:
		id, err := d.u32()
		if err != nil {
			return dast.Attr{}, fmt.Errorf("read string id: %w", ErrTruncated)
		}
		s, ok := table.Lookup(intern.ID(id))
		if !ok {
			return dast.Attr{}, fmt.Errorf("%w: %d", ErrInvalidStringID, id)
		}
		return dast.StringAttr(s), nil
	case 1:
		v, err := d.u64()
		if err != nil {
			return dast.Attr{}, fmt.Errorf("read int: %w", ErrTruncated)
		}
		return dast.IntAttr(int64(v)), nil
	case 2:
		b, err := d.u8()
		if err != nil {
			return dast.Attr{}, fmt.Errorf("read bool: %w", ErrTruncated)
		}
		return dast.BoolAttr(b != 0), nil
	case 3:
		count, err := d.u16()
		if err != nil {
			return dast.Attr{}, fmt.Errorf("read range count: %w", ErrTruncated)
		}
		ranges := make([]rangeset.Range, count)
		for i := range ranges {
			s, err := d.u32()
			if err != nil {
				return dast.Attr{}, fmt.Errorf("read range %d start: %w", i, ErrTruncated)
			}
			e, err := d.u32()
			if err != nil {
				return dast.Attr{}, fmt.Errorf("read range %d end: %w", i, ErrTruncated)
			}
			ranges[i] = rangeset.Range{Start: int(s), End: int(e)}
		}
		return dast.RangeListAttr(ranges), nil
	default:
		return dast.Attr{}, fmt.Errorf("binenc: unknown attr tag %d", tag)
	}
}

// sortedAttrKeys returns n's attribute keys in a deterministic order;
// map iteration order is randomized per process, and a codec that wants
// reproducible byte output across runs can't rely on it.
func sortedAttrKeys(n *dast.Node) []string {
	if len(n.Attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// decoder reads fixed-width little-endian fields from an in-memory
// buffer, advancing its own cursor and reporting truncation as an error
// rather than panicking on a short read.
type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) bytes(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, ErrTruncated
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) u8() (byte, error) {
	b, err := d.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) u16() (uint16, error) {
	b, err := d.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *decoder) u32() (uint32, error) {
	b, err := d.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) u64() (uint64, error) {
	b, err := d.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
