package cli

import (
	"testing"

	"github.com/codeninja55/dcmstream/dicom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_RequiresInput(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	assert.Error(t, err)
}

func TestConfig_Validate_AcceptsMinimalConfig(t *testing.T) {
	cfg := &Config{Input: "scan.dcm"}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RejectsMalformedHexTag(t *testing.T) {
	cfg := &Config{Input: "scan.dcm", BeforeTag: "not-hex!"}
	assert.Error(t, cfg.Validate())

	cfg2 := &Config{Input: "scan.dcm", BeforeTag: "0010"} // too short
	assert.Error(t, cfg2.Validate())
}

func TestConfig_Validate_AcceptsWellFormedHexTag(t *testing.T) {
	cfg := &Config{Input: "scan.dcm", BeforeTag: "00100020"}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_BuildStop_Default(t *testing.T) {
	cfg := &Config{Input: "scan.dcm"}
	stop, err := cfg.buildStop()
	require.NoError(t, err)
	assert.Equal(t, dicom.EndOfStream(), stop)
}

func TestConfig_BuildStop_BeforeTag(t *testing.T) {
	cfg := &Config{Input: "scan.dcm", BeforeTag: "00100020"}
	stop, err := cfg.buildStop()
	require.NoError(t, err)
	assert.Equal(t, dicom.BeforeTag(0x00100020), stop)
}

func TestConfig_BuildStop_AfterTag(t *testing.T) {
	cfg := &Config{Input: "scan.dcm", AfterTag: "7FE00010"}
	stop, err := cfg.buildStop()
	require.NoError(t, err)
	assert.Equal(t, dicom.AfterTag(0x7FE00010), stop)
}

func TestConfig_BuildStop_AfterBytePos(t *testing.T) {
	cfg := &Config{Input: "scan.dcm", AfterBytePos: 4096}
	stop, err := cfg.buildStop()
	require.NoError(t, err)
	assert.Equal(t, dicom.AfterBytePos(4096), stop)
}

func TestConfig_BuildStop_RejectsMalformedTagAtBuildTime(t *testing.T) {
	cfg := &Config{Input: "scan.dcm", BeforeTag: "zzzzzzzz"}
	_, err := cfg.buildStop()
	assert.Error(t, err)
}

func TestParseState_AllVariants(t *testing.T) {
	cases := map[string]dicom.ParseState{
		"preamble":     dicom.StatePreamble,
		"prefix":       dicom.StatePrefix,
		"group-length": dicom.StateGroupLength,
		"file-meta":    dicom.StateFileMeta,
		"element":      dicom.StateElement,
	}
	for name, want := range cases {
		got, err := parseState(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseState_UnknownIsError(t *testing.T) {
	_, err := parseState("bogus")
	assert.Error(t, err)
}
