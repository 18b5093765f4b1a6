package cli

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/codeninja55/dcmstream/dicom"
)

// Config is the fully-parsed, validated configuration for a single parse
// run. Kong populates it directly from the command line; the validate tags
// describe semantic constraints kong's own parsing grammar can't express
// (a tag must be exactly 8 hex digits), repurposing the teacher's
// validator/v10 struct-tag approach from FHIR resource validation to CLI
// config validation.
type Config struct {
	Input string `arg:"" name:"file" help:"DICOM file to read, or - for stdin" validate:"required"`

	State string `name:"state" default:"preamble" enum:"preamble,prefix,group-length,file-meta,element" help:"Initial parser state"`

	BeforeTag    string `name:"before-tag" help:"Stop before this tag is read (8 hex digits, GGGGEEEE)" validate:"omitempty,len=8,hexadecimal" xor:"stop"`
	AfterTag     string `name:"after-tag" help:"Stop after this tag is read (8 hex digits, GGGGEEEE)" validate:"omitempty,len=8,hexadecimal" xor:"stop"`
	AfterBytePos uint64 `name:"after-byte-pos" help:"Stop once more than this many bytes have been read" xor:"stop"`

	Format string `name:"format" default:"text" enum:"text,json" help:"Output format"`

	LogLevel string `name:"log-level" default:"info" enum:"trace,debug,info,warn,error,fatal" help:"Log level"`
	Debug    bool   `name:"debug" help:"Annotate log lines with caller location"`
}

// Validate runs struct-tag validation and the cross-field checks kong's
// xor grouping already rules out at parse time but that callers building
// a Config directly (tests, embedders) can still hit.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	set := 0
	for _, on := range []bool{c.BeforeTag != "", c.AfterTag != "", c.AfterBytePos > 0} {
		if on {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("invalid configuration: at most one of --before-tag, --after-tag, --after-byte-pos may be set")
	}
	return nil
}

// parseState maps the --state flag to the initial parser state. An empty
// string (a Config built without kong, so the flag default never applied)
// selects the preamble state like the flag default does; any other value
// outside kong's enum is an error.
func parseState(s string) (dicom.ParseState, error) {
	switch s {
	case "", "preamble":
		return dicom.StatePreamble, nil
	case "prefix":
		return dicom.StatePrefix, nil
	case "group-length":
		return dicom.StateGroupLength, nil
	case "file-meta":
		return dicom.StateFileMeta, nil
	case "element":
		return dicom.StateElement, nil
	default:
		return dicom.StatePreamble, fmt.Errorf("unknown state %q", s)
	}
}

// buildStop translates the mutually-exclusive stop flags into a
// dicom.StopCondition. kong's xor:"stop" tag already enforces that at most
// one of BeforeTag/AfterTag/AfterBytePos is set.
func (c *Config) buildStop() (dicom.StopCondition, error) {
	switch {
	case c.BeforeTag != "":
		t, err := parseTagHex(c.BeforeTag)
		if err != nil {
			return dicom.EndOfStream(), fmt.Errorf("--before-tag: %w", err)
		}
		return dicom.BeforeTag(t), nil
	case c.AfterTag != "":
		t, err := parseTagHex(c.AfterTag)
		if err != nil {
			return dicom.EndOfStream(), fmt.Errorf("--after-tag: %w", err)
		}
		return dicom.AfterTag(t), nil
	case c.AfterBytePos > 0:
		return dicom.AfterBytePos(c.AfterBytePos), nil
	default:
		return dicom.EndOfStream(), nil
	}
}

// parseTagHex parses an 8 hex-digit GGGGEEEE string into its uint32 wire
// form. validate:"len=8,hexadecimal" has already ruled out malformed input
// by the time this runs.
func parseTagHex(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid hex tag: %w", s, err)
	}
	return uint32(n), nil
}
