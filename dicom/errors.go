// Package dicom provides DICOM file parsing and manipulation.
package dicom

import "errors"

// ErrInvalidPreamble indicates the file doesn't have a valid DICOM preamble.
// A valid DICOM file must have 128 bytes followed by "DICM" (ASCII).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrInvalidPreamble = errors.New("invalid DICOM preamble: missing or invalid DICM prefix")

// ErrInvalidVR indicates an invalid or unknown VR was encountered.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var ErrInvalidVR = errors.New("invalid or unknown VR")

// ErrInvalidTag indicates a malformed tag was encountered.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
var ErrInvalidTag = errors.New("invalid or malformed tag")

// ErrInvalidTransferSyntax indicates an unsupported or invalid transfer syntax.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
var ErrInvalidTransferSyntax = errors.New("invalid or unsupported transfer syntax")

// ErrMissingTransferSyntax indicates the Transfer Syntax UID was not found in File Meta Information.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrMissingTransferSyntax = errors.New("missing Transfer Syntax UID in File Meta Information")

// ErrInvalidLength indicates an invalid value length was encountered.
var ErrInvalidLength = errors.New("invalid value length")

// ErrUndefinedLength indicates an undefined length (0xFFFFFFFF) was encountered.
// This is valid for sequences but requires special handling.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
var ErrUndefinedLength = errors.New("undefined length encountered")

// ErrInvalidGroupLengthTag indicates the first element of File Meta
// Information was not FileMetaInformationGroupLength, as the format
// requires. This is a structural error and is always fatal.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrInvalidGroupLengthTag = errors.New("invalid group length tag: expected (0002,0000)")

// ErrNoCharacterSetName indicates a SpecificCharacterSet element was
// present but carried no usable (non-empty) character set name. This is
// fatal for the element being parsed; callers may choose to continue.
var ErrNoCharacterSetName = errors.New("specific character set element has no usable name")

// ErrParserClosed indicates Next was called on a parser that previously
// returned a fatal error; the parser makes no further progress guarantees.
var ErrParserClosed = errors.New("parser is closed after a fatal error")
