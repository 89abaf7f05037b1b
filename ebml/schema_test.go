package ebml

import "testing"

func TestLookupKnown(t *testing.T) {
	cases := []struct {
		id   uint64
		name Name
		kind Kind
	}{
		{0x1A45DFA3, NameEBML, KindMaster},
		{0x18538067, NameSegment, KindMaster},
		{0xA3, NameSimpleBlock, KindBinary},
		{0xE7, NameTimecode, KindUInt},
		{0x86, NameCodecID, KindString},
		{0x4489, NameDuration, KindFloat},
		{0x4461, NameDateUTC, KindDate},
		{0xEC, NameVoid, KindVoid},
		{0xBF, NameCRC32, KindCRC32},
	}
	for _, c := range cases {
		name, kind := Lookup(c.id)
		if name != c.name || kind != c.kind {
			t.Errorf("Lookup(0x%X) = (%s, %s), want (%s, %s)", c.id, name, kind, c.name, c.kind)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	name, kind := Lookup(0xDEADBEEF)
	if name != NameUnknown || kind != KindUnknown {
		t.Errorf("Lookup(unregistered) = (%s, %s), want (%s, %s)", name, kind, NameUnknown, KindUnknown)
	}
}

func TestIDForRoundTrip(t *testing.T) {
	for _, e := range table {
		id, ok := IDFor(e.Name)
		if !ok {
			t.Errorf("IDFor(%s) not found", e.Name)
			continue
		}
		if id != e.ID {
			t.Errorf("IDFor(%s) = 0x%X, want 0x%X", e.Name, id, e.ID)
		}
		gotName, gotKind := Lookup(id)
		if gotName != e.Name || gotKind != e.Kind {
			t.Errorf("Lookup(IDFor(%s)) = (%s, %s), want (%s, %s)", e.Name, gotName, gotKind, e.Name, e.Kind)
		}
	}
}

func TestIsTopLevelOfSegment(t *testing.T) {
	for _, n := range []Name{NameSeekHead, NameInfo, NameTracks, NameTags, NameCues, NameCluster} {
		if !IsTopLevelOfSegment(n) {
			t.Errorf("IsTopLevelOfSegment(%s) = false, want true", n)
		}
	}
	for _, n := range []Name{NameTrackEntry, NameSimpleBlock, NameCuePoint} {
		if IsTopLevelOfSegment(n) {
			t.Errorf("IsTopLevelOfSegment(%s) = true, want false", n)
		}
	}
}
