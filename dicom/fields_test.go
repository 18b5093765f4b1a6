package dicom

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/codeninja55/dcmstream/dicom/tag"
	"github.com/codeninja55/dcmstream/dicom/tsyntax"
	"github.com/codeninja55/dcmstream/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTag_RespectsEndianness(t *testing.T) {
	var le bytes.Buffer
	binary.Write(&le, binary.LittleEndian, uint16(0x0010))
	binary.Write(&le, binary.LittleEndian, uint16(0x0020))
	r := NewReader(&le, binary.LittleEndian)

	got, err := readTag(r, tsyntax.ExplicitVRLittleEndian)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00100020), got)

	var be bytes.Buffer
	binary.Write(&be, binary.BigEndian, uint16(0x0010))
	binary.Write(&be, binary.BigEndian, uint16(0x0020))
	r2 := NewReader(&be, binary.BigEndian)

	got2, err := readTag(r2, tsyntax.ExplicitVRBigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00100020), got2)
}

func TestReadVR_ExplicitKnownCode(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("CS")
	r := NewReader(&buf, binary.LittleEndian)

	got, err := readVR(r, 0x00080060, tsyntax.ExplicitVRLittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, vr.CodeString, got)
	assert.Equal(t, int64(2), r.Position())
}

func TestReadVR_ExplicitUnknownCodeFallsBackToUN(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ZZ")
	r := NewReader(&buf, binary.LittleEndian)

	got, err := readVR(r, 0x00080060, tsyntax.ExplicitVRLittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, vr.Unknown, got)
}

func TestReadVR_ExplicitLongFormConsumesReservedBytes(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("OB")
	buf.Write([]byte{0x00, 0x00})
	r := NewReader(&buf, binary.LittleEndian)

	got, err := readVR(r, 0x7FE00010, tsyntax.ExplicitVRLittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, vr.OtherByte, got)
	assert.Equal(t, int64(4), r.Position(), "VR code plus 2 reserved bytes")
}

func TestReadVR_ImplicitConsultsTagDict(t *testing.T) {
	r := NewReader(&bytes.Buffer{}, binary.LittleEndian)
	dict := map[tag.Tag]tag.Info{
		tag.New(0x0008, 0x0060): {VRs: []vr.VR{vr.CodeString}},
	}

	got, err := readVR(r, 0x00080060, tsyntax.ImplicitVRLittleEndian, dict)
	require.NoError(t, err)
	assert.Equal(t, vr.CodeString, got)

	got, err = readVR(r, 0x00090099, tsyntax.ImplicitVRLittleEndian, dict)
	require.NoError(t, err)
	assert.Equal(t, vr.Unknown, got, "dictionary miss falls back to UN, not an error")
}

func TestReadValueLength_ShortAndLongForms(t *testing.T) {
	var shortBuf bytes.Buffer
	binary.Write(&shortBuf, binary.LittleEndian, uint16(8))
	r := NewReader(&shortBuf, binary.LittleEndian)
	vl, err := readValueLength(r, vr.CodeString, tsyntax.ExplicitVRLittleEndian)
	require.NoError(t, err)
	n, ok := vl.Explicit()
	require.True(t, ok)
	assert.Equal(t, uint32(8), n)

	var longBuf bytes.Buffer
	binary.Write(&longBuf, binary.LittleEndian, uint32(0xFFFFFFFF))
	r2 := NewReader(&longBuf, binary.LittleEndian)
	vl2, err := readValueLength(r2, vr.OtherByte, tsyntax.ExplicitVRLittleEndian)
	require.NoError(t, err)
	assert.True(t, vl2.IsUndefined())

	var implicitBuf bytes.Buffer
	binary.Write(&implicitBuf, binary.LittleEndian, uint32(16))
	r3 := NewReader(&implicitBuf, binary.LittleEndian)
	vl3, err := readValueLength(r3, vr.CodeString, tsyntax.ImplicitVRLittleEndian)
	require.NoError(t, err)
	n3, ok := vl3.Explicit()
	require.True(t, ok)
	assert.Equal(t, uint32(16), n3)
}

func TestReadValueField(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("ABCDEF")), binary.LittleEndian)
	got, err := readValueField(r, ExplicitLength(4))
	require.NoError(t, err)
	assert.Equal(t, []byte("ABCD"), got)

	got, err = readValueField(r, UndefinedLength())
	require.NoError(t, err)
	assert.Empty(t, got)
}
