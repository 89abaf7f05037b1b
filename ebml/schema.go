package ebml

// Kind is the closed set of EBML payload interpretations a schema entry
// can carry. Every element's decoding behavior is determined entirely by
// its Kind; there is no inheritance or per-element special casing beyond
// what Kind already selects (SimpleBlock is the one payload that gets
// structural decoding on top of Binary, handled by name in the parser).
type Kind int

const (
	KindMaster Kind = iota
	KindUInt
	KindInt
	KindFloat
	KindString
	KindUTF8
	KindDate
	KindBinary
	KindVoid
	KindCRC32
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindMaster:
		return "Master"
	case KindUInt:
		return "UInt"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindUTF8:
		return "UTF8"
	case KindDate:
		return "Date"
	case KindBinary:
		return "Binary"
	case KindVoid:
		return "Void"
	case KindCRC32:
		return "CRC32"
	default:
		return "Unknown"
	}
}

// Name identifies an EBML/Matroska/WebM element by its schema symbol.
type Name string

// Element names. Raw VINT IDs live in the schema table below;
// these symbols are what the rest of the package, the demuxer, and the
// muxer refer to elements by.
const (
	NameUnknown Name = "Unknown"

	NameEBML               Name = "EBML"
	NameEBMLVersion        Name = "EBMLVersion"
	NameEBMLReadVersion    Name = "EBMLReadVersion"
	NameEBMLMaxIDLength    Name = "EBMLMaxIDLength"
	NameEBMLMaxSizeLength  Name = "EBMLMaxSizeLength"
	NameDocType            Name = "DocType"
	NameDocTypeVersion     Name = "DocTypeVersion"
	NameDocTypeReadVersion Name = "DocTypeReadVersion"

	NameSegment Name = "Segment"

	NameSeekHead     Name = "SeekHead"
	NameSeek         Name = "Seek"
	NameSeekID       Name = "SeekID"
	NameSeekPosition Name = "SeekPosition"

	NameInfo          Name = "Info"
	NameTimecodeScale Name = "TimecodeScale"
	NameDuration      Name = "Duration"
	NameDateUTC       Name = "DateUTC"
	NameTitle         Name = "Title"
	NameMuxingApp     Name = "MuxingApp"
	NameWritingApp    Name = "WritingApp"

	NameTracks             Name = "Tracks"
	NameTrackEntry         Name = "TrackEntry"
	NameTrackNumber        Name = "TrackNumber"
	NameTrackUID           Name = "TrackUID"
	NameTrackType          Name = "TrackType"
	NameFlagLacing         Name = "FlagLacing"
	NameDefaultDuration    Name = "DefaultDuration"
	NameLanguage           Name = "Language"
	NameCodecID            Name = "CodecID"
	NameCodecPrivate       Name = "CodecPrivate"
	NameVideo              Name = "Video"
	NamePixelWidth         Name = "PixelWidth"
	NamePixelHeight        Name = "PixelHeight"
	NameDisplayWidth       Name = "DisplayWidth"
	NameDisplayHeight      Name = "DisplayHeight"
	NameDisplayUnit        Name = "DisplayUnit"
	NameFlagInterlaced     Name = "FlagInterlaced"
	NameChromaSitingHorz   Name = "ChromaSitingHorz"
	NameChromaSitingVert   Name = "ChromaSitingVert"
	NameAudio              Name = "Audio"
	NameSamplingFrequency  Name = "SamplingFrequency"
	NameChannels           Name = "Channels"
	NameBitDepth           Name = "BitDepth"

	NameCluster     Name = "Cluster"
	NameTimecode    Name = "Timecode"
	NameSimpleBlock Name = "SimpleBlock"

	NameCues               Name = "Cues"
	NameCuePoint           Name = "CuePoint"
	NameCueTime            Name = "CueTime"
	NameCueTrackPositions  Name = "CueTrackPositions"
	NameCueTrack           Name = "CueTrack"
	NameCueClusterPosition Name = "CueClusterPosition"

	NameTags      Name = "Tags"
	NameTag       Name = "Tag"
	NameSimpleTag Name = "SimpleTag"
	NameTagName   Name = "TagName"
	NameTagString Name = "TagString"

	NameVoid  Name = "Void"
	NameCRC32 Name = "CRC-32"
)

// schemaEntry is one row of the static dictionary: an element's raw VINT
// ID, its symbolic name, and how its payload must be decoded.
type schemaEntry struct {
	ID   uint64
	Name Name
	Kind Kind
}

// table is the single source of truth for element typing. It is built
// once at package init and never mutated afterward.
var table = []schemaEntry{
	{0x1A45DFA3, NameEBML, KindMaster},
	{0x4286, NameEBMLVersion, KindUInt},
	{0x42F7, NameEBMLReadVersion, KindUInt},
	{0x42F2, NameEBMLMaxIDLength, KindUInt},
	{0x42F3, NameEBMLMaxSizeLength, KindUInt},
	{0x4282, NameDocType, KindString},
	{0x4287, NameDocTypeVersion, KindUInt},
	{0x4285, NameDocTypeReadVersion, KindUInt},

	{0x18538067, NameSegment, KindMaster},

	{0x114D9B74, NameSeekHead, KindMaster},
	{0x4DBB, NameSeek, KindMaster},
	{0x53AB, NameSeekID, KindBinary},
	{0x53AC, NameSeekPosition, KindUInt},

	{0x1549A966, NameInfo, KindMaster},
	{0x2AD7B1, NameTimecodeScale, KindUInt},
	{0x4489, NameDuration, KindFloat},
	{0x4461, NameDateUTC, KindDate},
	{0x7BA9, NameTitle, KindUTF8},
	{0x4D80, NameMuxingApp, KindUTF8},
	{0x5741, NameWritingApp, KindUTF8},

	{0x1654AE6B, NameTracks, KindMaster},
	{0xAE, NameTrackEntry, KindMaster},
	{0xD7, NameTrackNumber, KindUInt},
	{0x73C5, NameTrackUID, KindUInt},
	{0x83, NameTrackType, KindUInt},
	{0x9C, NameFlagLacing, KindUInt},
	{0x23E383, NameDefaultDuration, KindUInt},
	{0x22B59C, NameLanguage, KindString},
	{0x86, NameCodecID, KindString},
	{0x63A2, NameCodecPrivate, KindBinary},
	{0xE0, NameVideo, KindMaster},
	{0xB0, NamePixelWidth, KindUInt},
	{0xBA, NamePixelHeight, KindUInt},
	{0x54B0, NameDisplayWidth, KindUInt},
	{0x54BA, NameDisplayHeight, KindUInt},
	{0x54B2, NameDisplayUnit, KindUInt},
	{0x9A, NameFlagInterlaced, KindUInt},
	{0x55B7, NameChromaSitingHorz, KindUInt},
	{0x55B8, NameChromaSitingVert, KindUInt},
	{0xE1, NameAudio, KindMaster},
	{0xB5, NameSamplingFrequency, KindFloat},
	{0x9F, NameChannels, KindUInt},
	{0x6264, NameBitDepth, KindUInt},

	{0x1F43B675, NameCluster, KindMaster},
	{0xE7, NameTimecode, KindUInt},
	{0xA3, NameSimpleBlock, KindBinary},

	{0x1C53BB6B, NameCues, KindMaster},
	{0xBB, NameCuePoint, KindMaster},
	{0xB3, NameCueTime, KindUInt},
	{0xB7, NameCueTrackPositions, KindMaster},
	{0xF7, NameCueTrack, KindUInt},
	{0xF1, NameCueClusterPosition, KindUInt},

	{0x1254C367, NameTags, KindMaster},
	{0x7373, NameTag, KindMaster},
	{0x67C8, NameSimpleTag, KindMaster},
	{0x45A3, NameTagName, KindUTF8},
	{0x4487, NameTagString, KindUTF8},

	{0xEC, NameVoid, KindVoid},
	{0xBF, NameCRC32, KindCRC32},
}

var (
	byID   = make(map[uint64]schemaEntry, len(table))
	byName = make(map[Name]schemaEntry, len(table))
)

func init() {
	for _, e := range table {
		byID[e.ID] = e
		byName[e.Name] = e
	}
}

// Lookup resolves a raw Element ID to its schema name and kind. Unknown
// IDs are not an error: they resolve to (NameUnknown, KindUnknown) so the
// decoder can still skip their declared length.
func Lookup(id uint64) (Name, Kind) {
	if e, ok := byID[id]; ok {
		return e.Name, e.Kind
	}
	return NameUnknown, KindUnknown
}

// IDFor returns the raw Element ID registered for name, and whether it
// was found. Used by the serializer to emit elements by symbolic name.
func IDFor(name Name) (uint64, bool) {
	e, ok := byName[name]
	return e.ID, ok
}

// KindFor returns the schema Kind registered for name.
func KindFor(name Name) Kind {
	return byName[name].Kind
}

// topLevelOfSegment is the set of element names the streaming demuxer
// treats as a downstream emission boundary.
var topLevelOfSegment = map[Name]bool{
	NameEBML:     true,
	NameSegment:  true,
	NameSeekHead: true,
	NameInfo:     true,
	NameTracks:   true,
	NameTags:     true,
	NameCues:     true,
	NameCluster:  true,
}

// IsTopLevelOfSegment reports whether name is one of the elements the
// demuxer emits as a standalone downstream unit.
func IsTopLevelOfSegment(name Name) bool {
	return topLevelOfSegment[name]
}
