package dicom

import (
	"fmt"

	"github.com/codeninja55/dcmstream/dicom/charset"
	"github.com/codeninja55/dcmstream/dicom/tsyntax"
	"github.com/codeninja55/dcmstream/dicom/vr"
)

// ValueLength is a tagged union over the two ways a value's length can be
// encoded on the wire: a concrete byte count, or the undefined-length
// sentinel whose payload end is instead determined by a delimiter element.
//
// This is deliberately not a bare uint32 compared against 0xFFFFFFFF at
// call sites: that representation lets the sentinel leak into payload
// sizing arithmetic by accident. Explicit returns false and N unspecified
// when Undefined is true.
type ValueLength struct {
	n         uint32
	undefined bool
}

// undefinedLengthSentinel is the wire value 0xFFFFFFFF denoting "terminated
// by delimiter, not by byte count".
const undefinedLengthSentinel = 0xFFFFFFFF

// ExplicitLength returns a ValueLength carrying a concrete byte count.
func ExplicitLength(n uint32) ValueLength {
	return ValueLength{n: n}
}

// UndefinedLength returns the ValueLength sentinel meaning "read until a
// delimiter element closes this payload".
func UndefinedLength() ValueLength {
	return ValueLength{undefined: true}
}

// valueLengthFromWire classifies a raw 32-bit length field read off the
// wire into its ValueLength variant.
func valueLengthFromWire(raw uint32) ValueLength {
	if raw == undefinedLengthSentinel {
		return UndefinedLength()
	}
	return ExplicitLength(raw)
}

// IsUndefined reports whether this length is the "terminated by delimiter"
// variant.
func (vl ValueLength) IsUndefined() bool {
	return vl.undefined
}

// Explicit returns the concrete byte count and true, or (0, false) if this
// ValueLength is the undefined-length variant.
func (vl ValueLength) Explicit() (uint32, bool) {
	if vl.undefined {
		return 0, false
	}
	return vl.n, true
}

func (vl ValueLength) String() string {
	if vl.undefined {
		return "undefined"
	}
	return fmt.Sprintf("%d", vl.n)
}

// SequenceFrame records one level of nesting inside an open sequence: the
// tag that introduced it, the byte position at which it closes (if it was
// given an explicit length), and the number of ITEM elements seen inside it
// so far.
type SequenceFrame struct {
	SeqTag     uint32
	SeqEndPos  *uint64 // nil when the enclosing sequence has undefined length
	ItemNumber uint32
}

// Element is the value emitted by one parser iteration step: a single
// tag/VR/length/payload record together with snapshots of the transfer
// syntax, character set, and sequence-nesting path in effect at the moment
// it was emitted. TS and CS reflect any update the element itself caused;
// Ancestors is taken before the element's own sequence bookkeeping, so an
// SQ element does not list the frame it opens, and the last element of an
// explicit-length sequence (or a sequence delimiter) still lists the frame
// it closes.
//
// Ancestors is captured by value — a later mutation to the parser's own
// path does not retroactively change an already-emitted Element.
type Element struct {
	Tag   uint32
	VR    vr.VR
	VL    ValueLength
	Bytes []byte

	TS *tsyntax.TransferSyntax
	CS *charset.CharacterSet

	Ancestors []SequenceFrame
}

// Group returns the high 16 bits of Tag.
func (e *Element) Group() uint16 { return uint16(e.Tag >> 16) }

// ElementNumber returns the low 16 bits of Tag (named ElementNumber, not
// Element, to avoid shadowing the type itself).
func (e *Element) ElementNumber() uint16 { return uint16(e.Tag) }

func (e *Element) String() string {
	return fmt.Sprintf("(%04X,%04X) %s len=%s", e.Group(), e.ElementNumber(), e.VR.String(), e.VL.String())
}

// cloneAncestors returns an independent copy of path so a frame pushed or
// popped later cannot be observed through a previously captured snapshot.
func cloneAncestors(path []SequenceFrame) []SequenceFrame {
	if len(path) == 0 {
		return nil
	}
	out := make([]SequenceFrame, len(path))
	copy(out, path)
	return out
}
