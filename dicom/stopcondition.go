package dicom

// StopKind enumerates the four ways a Parser can be told to halt iteration
// before consuming more of the stream than the caller wants.
type StopKind int

const (
	// StopEndOfStream never stops early; iteration runs until the
	// underlying reads exhaust the stream.
	StopEndOfStream StopKind = iota
	// StopBeforeTag stops once a tag greater than or equal to the target
	// has been read at the top level (path empty).
	StopBeforeTag
	// StopAfterTag stops once a tag strictly greater than the target has
	// been read at the top level (path empty).
	StopAfterTag
	// StopAfterBytePos stops once bytes_read exceeds the target position,
	// regardless of nesting depth.
	StopAfterBytePos
)

// StopCondition declaratively bounds how much of a stream a Parser will
// consume. The zero value is StopEndOfStream.
type StopCondition struct {
	Kind    StopKind
	Tag     uint32
	BytePos uint64
}

// EndOfStream returns the condition that never stops iteration early.
func EndOfStream() StopCondition { return StopCondition{Kind: StopEndOfStream} }

// BeforeTag returns a condition that stops once a top-level tag >= t has
// been read.
func BeforeTag(t uint32) StopCondition { return StopCondition{Kind: StopBeforeTag, Tag: t} }

// AfterTag returns a condition that stops once a top-level tag > t has
// been read.
func AfterTag(t uint32) StopCondition { return StopCondition{Kind: StopAfterTag, Tag: t} }

// AfterBytePos returns a condition that stops once bytes_read exceeds p.
func AfterBytePos(p uint64) StopCondition { return StopCondition{Kind: StopAfterBytePos, Tag: 0, BytePos: p} }

// isAtStop evaluates the condition against the parser's current
// bookkeeping: the last tag read, the current path depth, and bytes_read.
// Called twice per iteration (see Parser.Next): once before reading the
// next tag, to catch an After* condition left over from the prior
// element, and once immediately after a tag has been read but before its
// VR/length/value, to catch a BeforeTag or AfterBytePos boundary that the
// tag itself landed on or past.
func (s StopCondition) isAtStop(tagLastRead uint32, pathDepth int, bytesRead uint64) bool {
	switch s.Kind {
	case StopEndOfStream:
		return false
	case StopBeforeTag:
		return pathDepth == 0 && tagLastRead >= s.Tag
	case StopAfterTag:
		return pathDepth == 0 && tagLastRead > s.Tag
	case StopAfterBytePos:
		return bytesRead > s.BytePos
	default:
		return false
	}
}
