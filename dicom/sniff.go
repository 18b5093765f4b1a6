package dicom

import "github.com/codeninja55/dcmstream/dicom/vr"

// SniffFileHeader reports whether buf begins with a well-formed DICOM Part
// 10 file header: 128 zero bytes followed by the literal "DICM". Used when
// a stream's origin (file vs. network) is ambiguous and a caller wants to
// pick the Parser's starting state without committing to a read.
//
// Returns false if buf is shorter than 132 bytes.
func SniffFileHeader(buf []byte) bool {
	if len(buf) < 132 {
		return false
	}
	for i := 0; i < 128; i++ {
		if buf[i] != 0x00 {
			return false
		}
	}
	return string(buf[128:132]) == "DICM"
}

// SniffTransferSyntax inspects the first six bytes of a buffer —
// interpreted as {group_hi, group_lo, elem_hi, elem_lo, vr0, vr1} — and
// guesses the endianness and explicit/implicit VR encoding of the stream
// that follows, without consulting any dictionary beyond the VR table.
//
// The heuristic: real DICOM group numbers for the first element of a
// dataset are almost never below 3 or above 10 once byte-swapped the
// wrong way, so whichever endianness puts the group value in (2, 10]
// is taken as the answer; a recognised two-letter VR code at [4:6)
// then indicates explicit VR, otherwise implicit.
//
// ok is false if buf is shorter than 6 bytes or neither endianness
// produces a plausible group value.
func SniffTransferSyntax(buf []byte) (explicitVR bool, bigEndian bool, ok bool) {
	if len(buf) < 6 {
		return false, false, false
	}

	groupLE := uint16(buf[0]) | uint16(buf[1])<<8
	groupBE := uint16(buf[0])<<8 | uint16(buf[1])

	isVR := vr.IsValid(string(buf[4:6]))

	switch {
	case groupLE > 2 && groupLE <= 10:
		return isVR, false, true
	case groupBE > 2 && groupBE <= 10:
		return isVR, true, true
	default:
		return false, false, false
	}
}
