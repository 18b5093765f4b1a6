package tag

import "github.com/codeninja55/dcmstream/dicom/vr"

// TagDict is the static tag dictionary the core parser's implicit-VR path
// and Element.Name/Keyword consult as an opaque lookup.
//
// Non-exhaustive by design (see spec's external-collaborator scoping):
// this covers the File Meta group, the identifiers a typical dataset
// dump wants to show (patient/study/series/instance), one sequence-typed
// tag to exercise SQ handling end-to-end, Rows, and Pixel Data. A tag absent
// from this table is not an error — Find's GenericGroupLength special
// case and the parser's UN fallback both depend on lookup misses being
// routine, not exceptional.
var TagDict = map[Tag]Info{
	FileMetaInformationGroupLength: {
		Tag: FileMetaInformationGroupLength, VRs: []vr.VR{vr.UnsignedLong},
		Name: "File Meta Information Group Length", Keyword: "FileMetaInformationGroupLength", VM: "1",
	},
	New(0x0002, 0x0001): {
		Tag: New(0x0002, 0x0001), VRs: []vr.VR{vr.OtherByte},
		Name: "File Meta Information Version", Keyword: "FileMetaInformationVersion", VM: "1",
	},
	New(0x0002, 0x0002): {
		Tag: New(0x0002, 0x0002), VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "Media Storage SOP Class UID", Keyword: "MediaStorageSOPClassUID", VM: "1",
	},
	New(0x0002, 0x0003): {
		Tag: New(0x0002, 0x0003), VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "Media Storage SOP Instance UID", Keyword: "MediaStorageSOPInstanceUID", VM: "1",
	},
	TransferSyntaxUID: {
		Tag: TransferSyntaxUID, VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "Transfer Syntax UID", Keyword: "TransferSyntaxUID", VM: "1",
	},
	New(0x0002, 0x0012): {
		Tag: New(0x0002, 0x0012), VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "Implementation Class UID", Keyword: "ImplementationClassUID", VM: "1",
	},
	New(0x0002, 0x0013): {
		Tag: New(0x0002, 0x0013), VRs: []vr.VR{vr.ShortString},
		Name: "Implementation Version Name", Keyword: "ImplementationVersionName", VM: "1",
	},
	SpecificCharacterSet: {
		Tag: SpecificCharacterSet, VRs: []vr.VR{vr.CodeString},
		Name: "Specific Character Set", Keyword: "SpecificCharacterSet", VM: "1-n",
	},
	New(0x0008, 0x0016): {
		Tag: New(0x0008, 0x0016), VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "SOP Class UID", Keyword: "SOPClassUID", VM: "1",
	},
	New(0x0008, 0x0018): {
		Tag: New(0x0008, 0x0018), VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "SOP Instance UID", Keyword: "SOPInstanceUID", VM: "1",
	},
	New(0x0008, 0x0020): {
		Tag: New(0x0008, 0x0020), VRs: []vr.VR{vr.Date},
		Name: "Study Date", Keyword: "StudyDate", VM: "1",
	},
	New(0x0008, 0x0060): {
		Tag: New(0x0008, 0x0060), VRs: []vr.VR{vr.CodeString},
		Name: "Modality", Keyword: "Modality", VM: "1",
	},
	New(0x0008, 0x1110): {
		Tag: New(0x0008, 0x1110), VRs: []vr.VR{vr.SequenceOfItems},
		Name: "Referenced Study Sequence", Keyword: "ReferencedStudySequence", VM: "1",
	},
	New(0x0010, 0x0010): {
		Tag: New(0x0010, 0x0010), VRs: []vr.VR{vr.PersonName},
		Name: "Patient's Name", Keyword: "PatientName", VM: "1",
	},
	New(0x0010, 0x0020): {
		Tag: New(0x0010, 0x0020), VRs: []vr.VR{vr.LongString},
		Name: "Patient ID", Keyword: "PatientID", VM: "1",
	},
	New(0x0010, 0x0030): {
		Tag: New(0x0010, 0x0030), VRs: []vr.VR{vr.Date},
		Name: "Patient's Birth Date", Keyword: "PatientBirthDate", VM: "1",
	},
	New(0x0020, 0x000D): {
		Tag: New(0x0020, 0x000D), VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "Study Instance UID", Keyword: "StudyInstanceUID", VM: "1",
	},
	New(0x0020, 0x000E): {
		Tag: New(0x0020, 0x000E), VRs: []vr.VR{vr.UniqueIdentifier},
		Name: "Series Instance UID", Keyword: "SeriesInstanceUID", VM: "1",
	},
	New(0x0028, 0x0010): {
		Tag: New(0x0028, 0x0010), VRs: []vr.VR{vr.UnsignedShort},
		Name: "Rows", Keyword: "Rows", VM: "1",
	},
	New(0x7FE0, 0x0010): {
		Tag: New(0x7FE0, 0x0010), VRs: []vr.VR{vr.OtherWord, vr.OtherByte},
		Name: "Pixel Data", Keyword: "PixelData", VM: "1",
	},
}
