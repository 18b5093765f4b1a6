package dicom

import (
	"encoding/binary"
	"io"

	"github.com/codeninja55/dcmstream/dicom/tag"
	"github.com/codeninja55/dcmstream/dicom/tsyntax"
	"github.com/codeninja55/dcmstream/dicom/vr"
)

// byteOrderOf returns the binary.ByteOrder implied by a transfer syntax
// descriptor's BigEndian flag.
func byteOrderOf(ts *tsyntax.TransferSyntax) binary.ByteOrder {
	if ts.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// readTag reads two 16-bit unsigned integers in ts's endianness and
// combines them into a 32-bit tag: (group << 16) | element.
func readTag(r *Reader, ts *tsyntax.TransferSyntax) (uint32, error) {
	r.SetByteOrder(byteOrderOf(ts))

	group, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	elem, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	return (uint32(group) << 16) | uint32(elem), nil
}

// readVR resolves the Value Representation for tag t under transfer syntax
// ts, consulting tagDict for the implicit-VR case.
//
// An unrecognised explicit VR code, or an implicit-VR tag absent from
// tagDict (or present without a declared VR), both resolve to vr.Unknown
// rather than failing: the parser never errors on a dictionary-incomplete
// input, only on a structurally invalid one.
func readVR(r *Reader, t uint32, ts *tsyntax.TransferSyntax, tagDict map[tag.Tag]tag.Info) (vr.VR, error) {
	if ts.ExplicitVR {
		codeBytes, err := r.ReadBytes(2)
		if err != nil {
			return 0, err
		}
		code := string(codeBytes)
		v, parseErr := vr.Parse(code)
		if parseErr != nil {
			v = vr.Unknown
		}
		if v.HasExplicit2BytePad() {
			if _, err := r.ReadBytes(2); err != nil {
				return 0, err
			}
		}
		return v, nil
	}

	info, ok := tagDict[tagFromUint32(t)]
	if !ok || len(info.VRs) == 0 {
		return vr.Unknown, nil
	}
	return info.VRs[0], nil
}

// readValueLength reads the value-length field for a VR under transfer
// syntax ts, returning the classified ValueLength sum type.
func readValueLength(r *Reader, v vr.VR, ts *tsyntax.TransferSyntax) (ValueLength, error) {
	r.SetByteOrder(byteOrderOf(ts))

	if ts.ExplicitVR && !v.HasExplicit2BytePad() {
		n, err := r.ReadUint16()
		if err != nil {
			return ValueLength{}, err
		}
		return valueLengthFromWire(uint32(n)), nil
	}

	n, err := r.ReadUint32()
	if err != nil {
		return ValueLength{}, err
	}
	return valueLengthFromWire(n), nil
}

// readValueField reads the payload described by vl. An explicit length
// reads exactly that many bytes; an undefined length returns an empty
// buffer, since its contents are recovered by parsing nested elements
// until a delimiter is reached, not by a byte-counted read here.
func readValueField(r *Reader, vl ValueLength) ([]byte, error) {
	n, ok := vl.Explicit()
	if !ok {
		return []byte{}, nil
	}
	if n == 0 {
		return []byte{}, nil
	}
	return r.ReadBytes(int(n))
}

func tagFromUint32(t uint32) tag.Tag {
	return tag.New(uint16(t>>16), uint16(t))
}

// isEOF reports whether err represents a clean end of stream (as opposed
// to a truncated read, which is io.ErrUnexpectedEOF or a wrapped I/O
// failure).
func isEOF(err error) bool {
	return err == io.EOF
}
