package cli

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small composable byte-stream builders, mirroring the root dicom package's
// own test fixtures, kept local since _test.go helpers aren't importable
// across packages.

func u16le(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func u32le(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func tagBytes(buf *bytes.Buffer, group, elem uint16) {
	u16le(buf, group)
	u16le(buf, elem)
}

func padEven(s string, pad byte) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, pad)
	}
	return b
}

func explicitShort(buf *bytes.Buffer, group, elem uint16, vrCode string, value []byte) {
	tagBytes(buf, group, elem)
	buf.WriteString(vrCode)
	u16le(buf, uint16(len(value)))
	buf.Write(value)
}

func filePreambleAndPrefix(buf *bytes.Buffer) {
	buf.Write(make([]byte, 128))
	buf.WriteString("DICM")
}

func groupLengthElement(buf *bytes.Buffer, fmiBodyLen uint32) {
	var v bytes.Buffer
	u32le(&v, fmiBodyLen)
	explicitShort(buf, 0x0002, 0x0000, "UL", v.Bytes())
}

func transferSyntaxUIDElement(uid string) []byte {
	var buf bytes.Buffer
	explicitShort(&buf, 0x0002, 0x0010, "UI", padEven(uid, 0x00))
	return buf.Bytes()
}

// buildMinimalStream assembles a preamble + prefix + Explicit VR Little
// Endian File Meta group (a single TransferSyntaxUID element) followed by
// one PN dataset element, (0010,0010) PatientName = "Doe^Jane".
func buildMinimalStream() *bytes.Buffer {
	var stream bytes.Buffer
	filePreambleAndPrefix(&stream)

	fmiBody := transferSyntaxUIDElement("1.2.840.10008.1.2.1")
	groupLengthElement(&stream, uint32(len(fmiBody)))
	stream.Write(fmiBody)

	explicitShort(&stream, 0x0010, 0x0010, "PN", padEven("Doe^Jane", ' '))
	return &stream
}

func silentLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRun_TextFormat_RendersTable(t *testing.T) {
	stream := buildMinimalStream()
	cfg := &Config{Format: "text"}
	var out bytes.Buffer

	// run() opens cfg.Input via os.Open, and openInput's "-" branch reads
	// stdin only, so the stream is written to a temp file and its path
	// passed as the input.
	f := writeTempStream(t, stream.Bytes())
	cfg.Input = f

	err := run(cfg, silentLogger(), &out)
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "0002,0000")
	assert.Contains(t, rendered, "0010,0010")
}

func TestRun_JSONFormat_EmitsOneObjectPerLine(t *testing.T) {
	stream := buildMinimalStream()
	f := writeTempStream(t, stream.Bytes())
	cfg := &Config{Format: "json", Input: f}
	var out bytes.Buffer

	err := run(cfg, silentLogger(), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3) // group length, TS UID, PatientName

	var rec jsonRecord
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &rec))
	assert.Equal(t, "(0010,0010)", rec.Tag)
	assert.Equal(t, "PN", rec.VR)
	assert.Contains(t, rec.Value, "Doe")
}

func TestRun_UnknownFileReturnsError(t *testing.T) {
	cfg := &Config{Format: "text", Input: "/nonexistent/path/does-not-exist.dcm"}
	var out bytes.Buffer
	err := run(cfg, silentLogger(), &out)
	assert.Error(t, err)
}

func TestRun_RejectsUnknownState(t *testing.T) {
	stream := buildMinimalStream()
	f := writeTempStream(t, stream.Bytes())
	cfg := &Config{Format: "text", Input: f, State: "bogus"}
	var out bytes.Buffer
	err := run(cfg, silentLogger(), &out)
	assert.Error(t, err)
}

// writeTempStream writes data to a fresh file under the test's temp
// directory and returns its path.
func writeTempStream(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dcm")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
