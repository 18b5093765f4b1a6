// Package tsyntax defines DICOM Transfer Syntax descriptors.
//
// A Transfer Syntax fixes the wire encoding of a dataset: the byte order of
// multi-byte integers, whether VR codes appear explicitly on the wire or
// must be recovered from the tag dictionary, and whether the pixel data or
// the dataset as a whole is wrapped in an additional encoding layer.
//
// This package is one of the opaque lookups the parsing engine treats as an
// external collaborator: a static mapping from UID string to descriptor.
// See https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
package tsyntax

// TransferSyntax describes the wire encoding rules in effect for a portion
// of a DICOM stream.
type TransferSyntax struct {
	UID string

	// ExplicitVR is true if VR codes are present on the wire; false means
	// the VR must be recovered from the tag dictionary (Implicit VR).
	ExplicitVR bool

	// BigEndian is true if multi-byte integers are big-endian; false means
	// little-endian. Big-endian transfer syntaxes are retired in current
	// DICOM but remain in the wild.
	BigEndian bool

	// Deflated is true if the dataset (everything after File Meta
	// Information) is wrapped in a zlib/deflate stream. The core parser
	// does not perform inflation (see Non-goals); this flag lets a caller
	// detect the need and interpose a decompressing reader itself.
	Deflated bool

	// Encapsulated is true if pixel data under this transfer syntax is
	// stored as an undefined-length sequence of encoded fragments (e.g.
	// JPEG, JPEG-LS, JPEG2000, RLE) rather than raw native samples.
	// Decapsulating those fragments is out of scope; this flag is
	// informational only.
	Encapsulated bool
}

// Name returns the human-readable name for well-known transfer syntaxes,
// falling back to the UID itself.
func (ts *TransferSyntax) Name() string {
	if ts == nil {
		return ""
	}
	if n, ok := names[ts.UID]; ok {
		return n
	}
	return ts.UID
}

// Two transfer syntaxes are hard-wired into the parser itself, independent
// of the dictionary: ExplicitVRLittleEndian is mandatory for reading the
// File Meta Information group, and ImplicitVRLittleEndian is the recovery
// target when a dataset declares an unrecognised Transfer Syntax UID.
var (
	ImplicitVRLittleEndian = &TransferSyntax{
		UID:        "1.2.840.10008.1.2",
		ExplicitVR: false,
		BigEndian:  false,
	}

	ExplicitVRLittleEndian = &TransferSyntax{
		UID:        "1.2.840.10008.1.2.1",
		ExplicitVR: true,
		BigEndian:  false,
	}

	ExplicitVRBigEndian = &TransferSyntax{
		UID:        "1.2.840.10008.1.2.2",
		ExplicitVR: true,
		BigEndian:  true,
	}

	DeflatedExplicitVRLittleEndian = &TransferSyntax{
		UID:        "1.2.840.10008.1.2.1.99",
		ExplicitVR: true,
		BigEndian:  false,
		Deflated:   true,
	}

	JPEGBaseline8Bit = &TransferSyntax{
		UID:          "1.2.840.10008.1.2.4.50",
		ExplicitVR:   true,
		Encapsulated: true,
	}

	JPEGLossless = &TransferSyntax{
		UID:          "1.2.840.10008.1.2.4.70",
		ExplicitVR:   true,
		Encapsulated: true,
	}

	JPEGLSLossless = &TransferSyntax{
		UID:          "1.2.840.10008.1.2.4.80",
		ExplicitVR:   true,
		Encapsulated: true,
	}

	JPEG2000Lossless = &TransferSyntax{
		UID:          "1.2.840.10008.1.2.4.90",
		ExplicitVR:   true,
		Encapsulated: true,
	}

	RLELossless = &TransferSyntax{
		UID:          "1.2.840.10008.1.2.5",
		ExplicitVR:   true,
		Encapsulated: true,
	}
)

var names = map[string]string{
	ImplicitVRLittleEndian.UID:         "Implicit VR Little Endian",
	ExplicitVRLittleEndian.UID:         "Explicit VR Little Endian",
	ExplicitVRBigEndian.UID:            "Explicit VR Big Endian",
	DeflatedExplicitVRLittleEndian.UID: "Deflated Explicit VR Little Endian",
	JPEGBaseline8Bit.UID:               "JPEG Baseline (Process 1)",
	JPEGLossless.UID:                   "JPEG Lossless, Non-Hierarchical (Process 14)",
	JPEGLSLossless.UID:                 "JPEG-LS Lossless Image Compression",
	JPEG2000Lossless.UID:               "JPEG 2000 Image Compression (Lossless Only)",
	RLELossless.UID:                    "RLE Lossless",
}

// Dict is the static Transfer Syntax dictionary, keyed by UID string.
// Non-exhaustive by design (see spec's opaque-lookup scoping): it covers
// the transfer syntaxes a real modality or PACS commonly emits.
var Dict = map[string]*TransferSyntax{
	ImplicitVRLittleEndian.UID:         ImplicitVRLittleEndian,
	ExplicitVRLittleEndian.UID:         ExplicitVRLittleEndian,
	ExplicitVRBigEndian.UID:            ExplicitVRBigEndian,
	DeflatedExplicitVRLittleEndian.UID: DeflatedExplicitVRLittleEndian,
	JPEGBaseline8Bit.UID:               JPEGBaseline8Bit,
	JPEGLossless.UID:                   JPEGLossless,
	JPEGLSLossless.UID:                 JPEGLSLossless,
	JPEG2000Lossless.UID:               JPEG2000Lossless,
	RLELossless.UID:                    RLELossless,
}

// Lookup returns the descriptor for uid from dict, or (nil, false) on a
// miss. Callers implementing the parser's recovery rule should substitute
// ImplicitVRLittleEndian on a miss rather than treating it as fatal.
func Lookup(dict map[string]*TransferSyntax, uid string) (*TransferSyntax, bool) {
	ts, ok := dict[uid]
	return ts, ok
}
