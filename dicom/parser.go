package dicom

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/codeninja55/dcmstream/dicom/charset"
	"github.com/codeninja55/dcmstream/dicom/tag"
	"github.com/codeninja55/dcmstream/dicom/tsyntax"
	"github.com/codeninja55/dcmstream/dicom/vr"
)

// ParseState names the five phases a Parser moves through. Transitions are
// strictly forward: Preamble -> Prefix -> GroupLength -> FileMeta ->
// Element. Element is terminal.
type ParseState int

const (
	StatePreamble ParseState = iota
	StatePrefix
	StateGroupLength
	StateFileMeta
	StateElement
)

func (s ParseState) String() string {
	switch s {
	case StatePreamble:
		return "Preamble"
	case StatePrefix:
		return "Prefix"
	case StateGroupLength:
		return "GroupLength"
	case StateFileMeta:
		return "FileMeta"
	case StateElement:
		return "Element"
	default:
		return "Unknown"
	}
}

// ParserBuilder assembles a Parser. The zero value is not usable; start
// from NewParserBuilder.
type ParserBuilder struct {
	stream  io.Reader
	state   ParseState
	stop    StopCondition
	tagDict map[tag.Tag]tag.Info
	tsDict  map[string]*tsyntax.TransferSyntax
}

// NewParserBuilder returns a builder seeded with the defaults a
// file-origin stream needs: starting state Preamble, no stop condition,
// and the package-level tag/transfer-syntax dictionaries.
func NewParserBuilder(stream io.Reader) *ParserBuilder {
	return &ParserBuilder{
		stream:  stream,
		state:   StatePreamble,
		stop:    EndOfStream(),
		tagDict: tag.TagDict,
		tsDict:  tsyntax.Dict,
	}
}

// WithState overrides the starting state. Network-origin streams that omit
// the 128-byte preamble and "DICM" prefix should start at StateGroupLength.
func (b *ParserBuilder) WithState(s ParseState) *ParserBuilder {
	b.state = s
	return b
}

// WithStop installs a stop condition bounding how much of the stream Next
// will consume.
func (b *ParserBuilder) WithStop(s StopCondition) *ParserBuilder {
	b.stop = s
	return b
}

// WithTagDict overrides the tag dictionary consulted for implicit-VR
// resolution.
func (b *ParserBuilder) WithTagDict(d map[tag.Tag]tag.Info) *ParserBuilder {
	b.tagDict = d
	return b
}

// WithTSDict overrides the transfer-syntax dictionary consulted when a
// TransferSyntaxUID element is parsed.
func (b *ParserBuilder) WithTSDict(d map[string]*tsyntax.TransferSyntax) *ParserBuilder {
	b.tsDict = d
	return b
}

// Build constructs the Parser. It never fails: all configuration is
// pre-validated by the With* setters' types.
func (b *ParserBuilder) Build() *Parser {
	return &Parser{
		reader:  NewReader(b.stream, binary.LittleEndian),
		state:   b.state,
		ts:      tsyntax.ExplicitVRLittleEndian,
		cs:      charset.Default(),
		stop:    b.stop,
		tagDict: b.tagDict,
		tsDict:  b.tsDict,
	}
}

// Parser drives the state machine described in spec §4.4: it owns the
// stream, the sequence-nesting path, and the transfer-syntax/character-set
// in effect, and yields one Element per call to Next.
type Parser struct {
	reader *Reader
	state  ParseState

	filePreamble [128]byte
	dicomPrefix  [4]byte

	fmiStart       uint64
	fmiGroupLength uint32

	tagLastRead uint32
	partialTag  *uint32

	ts *tsyntax.TransferSyntax
	cs *charset.CharacterSet

	path []SequenceFrame

	stop    StopCondition
	tagDict map[tag.Tag]tag.Info
	tsDict  map[string]*tsyntax.TransferSyntax

	closed bool
}

// BytesRead returns the total number of bytes consumed from the underlying
// stream since construction. Monotonically non-decreasing.
func (p *Parser) BytesRead() uint64 { return uint64(p.reader.Position()) }

// PartialTag returns the tag straddling a stop boundary, if one is
// currently buffered, and whether one is present.
func (p *Parser) PartialTag() (uint32, bool) {
	if p.partialTag == nil {
		return 0, false
	}
	return *p.partialTag, true
}

// State returns the parser's current phase.
func (p *Parser) State() ParseState { return p.state }

// SetStop relaxes or tightens the stop condition in effect, without
// rebuilding the parser or losing any buffered partial_tag/position state.
// This is how a caller resumes a stopped iteration with a wider boundary —
// e.g. switching from BeforeTag(t) to EndOfStream once the caller decides
// to keep consuming past the original boundary.
func (p *Parser) SetStop(s StopCondition) { p.stop = s }

// TransferSyntax returns the transfer syntax currently in effect.
func (p *Parser) TransferSyntax() *tsyntax.TransferSyntax { return p.ts }

// CharacterSet returns the character set currently in effect.
func (p *Parser) CharacterSet() *charset.CharacterSet { return p.cs }

// FilePreamble returns the 128-byte preamble captured during the Preamble
// phase. Only meaningful once that phase has completed.
func (p *Parser) FilePreamble() [128]byte { return p.filePreamble }

// DicomPrefix returns the 4-byte prefix captured during the Prefix phase.
func (p *Parser) DicomPrefix() [4]byte { return p.dicomPrefix }

// Next advances the parser by exactly one emitted element. It returns
// io.EOF (and only io.EOF) when iteration ends cleanly — either because
// the underlying stream is exhausted while reading a tag in the Element
// state, or because the configured stop condition was reached. Any other
// non-nil error is fatal: structural violations (bad prefix, wrong
// group-length tag, an unusable character-set name) and truncated reads
// outside the Element-state tag read are all reported this way, and the
// parser makes no further progress guarantees once one occurs.
func (p *Parser) Next() (*Element, error) {
	if p.closed {
		return nil, ErrParserClosed
	}

	for {
		var el *Element
		var err error

		switch p.state {
		case StatePreamble:
			err = p.advancePreamble()
		case StatePrefix:
			err = p.advancePrefix()
		case StateGroupLength:
			el, err = p.nextGroupLength()
		case StateFileMeta:
			el, err = p.nextFileMeta()
		case StateElement:
			el, err = p.nextElement()
		default:
			err = fmt.Errorf("parser in unreachable state %v", p.state)
		}

		if err != nil {
			if !isEOF(err) {
				p.closed = true
			}
			return nil, err
		}
		if el != nil {
			return el, nil
		}
		// Preamble/Prefix advance with no element emitted; loop to the
		// next phase immediately.
	}
}

// wrapTruncated turns a bare io.EOF into a reported failure: outside the
// Element-state tag read, end-of-stream mid-field is always a truncation,
// never a clean terminator, per spec §7.
func wrapTruncated(err error, context string) error {
	if isEOF(err) {
		return fmt.Errorf("%s: %w", context, io.ErrUnexpectedEOF)
	}
	return err
}

func (p *Parser) advancePreamble() error {
	n, err := p.reader.ReadBytes(128)
	if err != nil {
		return wrapTruncated(err, "reading file preamble")
	}
	copy(p.filePreamble[:], n)
	p.state = StatePrefix
	return nil
}

func (p *Parser) advancePrefix() error {
	b, err := p.reader.ReadBytes(4)
	if err != nil {
		return wrapTruncated(err, "reading DICOM prefix")
	}
	copy(p.dicomPrefix[:], b)
	if string(b) != "DICM" {
		return fmt.Errorf("%w: Invalid DICOM Prefix: got %q", ErrInvalidPreamble, string(b))
	}
	p.state = StateGroupLength
	return nil
}

// nextTag reads the next tag, reusing a buffered partial tag if one is
// present instead of consuming the stream again. cleanEOF controls
// whether a genuine end-of-stream on an actual read is reported as io.EOF
// (Element state) or wrapped as a truncation failure (every other state).
func (p *Parser) nextTag(ts *tsyntax.TransferSyntax, cleanEOF bool) (uint32, error) {
	if p.partialTag != nil {
		return *p.partialTag, nil
	}
	t, err := readTag(p.reader, ts)
	if err != nil {
		if cleanEOF && isEOF(err) {
			return 0, io.EOF
		}
		return 0, wrapTruncated(err, "reading tag")
	}
	return t, nil
}

func (p *Parser) atStop() bool {
	return p.stop.isAtStop(p.tagLastRead, len(p.path), p.BytesRead())
}

func (p *Parser) nextGroupLength() (*Element, error) {
	ts := tsyntax.ExplicitVRLittleEndian

	if p.atStop() {
		return nil, io.EOF
	}

	t, err := p.nextTag(ts, false)
	if err != nil {
		return nil, err
	}
	p.tagLastRead = t

	if p.atStop() {
		tt := t
		p.partialTag = &tt
		return nil, io.EOF
	}

	if t != tag.FileMetaInformationGroupLength.Uint32() {
		return nil, fmt.Errorf("%w: got tag %08X", ErrInvalidGroupLengthTag, t)
	}

	v, vl, bytes, err := p.readFields(t, ts)
	if err != nil {
		return nil, err
	}

	if _, ok := vl.Explicit(); !ok || len(bytes) < 4 {
		return nil, fmt.Errorf("%w: group length element has no usable payload", ErrInvalidLength)
	}
	p.fmiGroupLength = binary.LittleEndian.Uint32(bytes[:4])
	p.fmiStart = p.BytesRead()
	p.state = StateFileMeta
	p.partialTag = nil

	return &Element{Tag: t, VR: v, VL: vl, Bytes: bytes, TS: p.ts, CS: p.cs, Ancestors: cloneAncestors(p.path)}, nil
}

func (p *Parser) nextFileMeta() (*Element, error) {
	ts := tsyntax.ExplicitVRLittleEndian

	if p.atStop() {
		return nil, io.EOF
	}

	t, err := p.nextTag(ts, false)
	if err != nil {
		return nil, err
	}
	p.tagLastRead = t

	if p.atStop() {
		tt := t
		p.partialTag = &tt
		return nil, io.EOF
	}

	v, vl, bytes, err := p.readFields(t, ts)
	if err != nil {
		return nil, err
	}

	if t == tag.TransferSyntaxUID.Uint32() {
		uid := trimUIDPadding(string(bytes))
		if resolved, ok := tsyntax.Lookup(p.tsDict, uid); ok {
			p.ts = resolved
		} else {
			p.ts = tsyntax.ImplicitVRLittleEndian
		}
	}

	if p.BytesRead() >= p.fmiStart+uint64(p.fmiGroupLength) {
		p.state = StateElement
	}
	p.partialTag = nil

	return &Element{Tag: t, VR: v, VL: vl, Bytes: bytes, TS: p.ts, CS: p.cs, Ancestors: cloneAncestors(p.path)}, nil
}

func (p *Parser) nextElement() (*Element, error) {
	ts := p.ts

	if p.atStop() {
		return nil, io.EOF
	}

	t, err := p.nextTag(ts, true)
	if err != nil {
		return nil, err
	}
	p.tagLastRead = t

	if p.atStop() {
		tt := t
		p.partialTag = &tt
		return nil, io.EOF
	}

	if t == tag.Item.Uint32() && len(p.path) > 0 {
		p.path[len(p.path)-1].ItemNumber++
	}

	v, vl, bytes, err := p.readFields(t, ts)
	if err != nil {
		return nil, err
	}

	if t == tag.SpecificCharacterSet.Uint32() {
		name := firstNonEmpty(splitBackslash(string(bytes)))
		cs, ok := charset.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoCharacterSetName, name)
		}
		p.cs = cs
	}

	ancestors := cloneAncestors(p.path)

	if t == tag.SequenceDelimitationItem.Uint32() && len(p.path) > 0 {
		p.path = p.path[:len(p.path)-1]
	}

	for len(p.path) > 0 {
		top := p.path[len(p.path)-1]
		if top.SeqEndPos == nil {
			break
		}
		if p.BytesRead() >= *top.SeqEndPos {
			p.path = p.path[:len(p.path)-1]
			continue
		}
		break
	}

	if v == vr.SequenceOfItems {
		var endPos *uint64
		if n, ok := vl.Explicit(); ok {
			e := p.BytesRead() + uint64(n)
			endPos = &e
		}
		p.path = append(p.path, SequenceFrame{SeqTag: t, SeqEndPos: endPos, ItemNumber: 0})
	}

	p.partialTag = nil

	return &Element{Tag: t, VR: v, VL: vl, Bytes: bytes, TS: p.ts, CS: p.cs, Ancestors: ancestors}, nil
}

// isItemOrDelimiter reports whether t is one of the three sequence/item
// sentinel tags, which carry no VR field on the wire under any transfer
// syntax — only a bare 4-byte length — unlike every other element.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func isItemOrDelimiter(t uint32) bool {
	return t == tag.Item.Uint32() || t == tag.ItemDelimitationItem.Uint32() || t == tag.SequenceDelimitationItem.Uint32()
}

// readFields reads the VR, value-length, and payload for tag t under
// transfer syntax ts, implementing both the item/delimiter wire exception
// and the SQ/ITEM empty-payload rule from spec §4.4.
func (p *Parser) readFields(t uint32, ts *tsyntax.TransferSyntax) (vr.VR, ValueLength, []byte, error) {
	if isItemOrDelimiter(t) {
		p.reader.SetByteOrder(byteOrderOf(ts))
		n, err := p.reader.ReadUint32()
		if err != nil {
			return 0, ValueLength{}, nil, wrapTruncated(err, "reading item/delimiter length")
		}
		return vr.Unknown, valueLengthFromWire(n), []byte{}, nil
	}

	v, err := readVR(p.reader, t, ts, p.tagDict)
	if err != nil {
		return 0, ValueLength{}, nil, wrapTruncated(err, "reading VR")
	}

	vl, err := readValueLength(p.reader, v, ts)
	if err != nil {
		return 0, ValueLength{}, nil, wrapTruncated(err, "reading value length")
	}

	if v == vr.SequenceOfItems {
		return v, vl, []byte{}, nil
	}

	bytes, err := readValueField(p.reader, vl)
	if err != nil {
		return 0, ValueLength{}, nil, wrapTruncated(err, "reading value field")
	}
	return v, vl, bytes, nil
}

// trimUIDPadding strips the trailing NUL or space byte DICOM uses to pad
// UI values to even length.
func trimUIDPadding(s string) string {
	return strings.TrimRight(s, "\x00 ")
}

func splitBackslash(s string) []string {
	return strings.Split(strings.TrimRight(s, "\x00 "), "\\")
}

func firstNonEmpty(ss []string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
