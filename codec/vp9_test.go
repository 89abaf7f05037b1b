package codec

import "testing"

func TestVP9IsKeyframeProfile0(t *testing.T) {
	// marker=10, profile_low=0, profile_high=0, show_existing=0, frame_type=0(key)
	key, err := VP9IsKeyframe([]byte{0x80})
	if err != nil {
		t.Fatalf("VP9IsKeyframe: %v", err)
	}
	if !key {
		t.Error("expected keyframe")
	}
}

func TestVP9IsInterframeProfile0(t *testing.T) {
	// same as above but frame_type=1 (inter)
	key, err := VP9IsKeyframe([]byte{0x84})
	if err != nil {
		t.Fatalf("VP9IsKeyframe: %v", err)
	}
	if key {
		t.Error("expected interframe, got keyframe")
	}
}

func TestVP9ShowExistingFrameIsNeverKey(t *testing.T) {
	// marker=10, profile_low=0, profile_high=0, show_existing=1
	key, err := VP9IsKeyframe([]byte{0x8A})
	if err != nil {
		t.Fatalf("VP9IsKeyframe: %v", err)
	}
	if key {
		t.Error("show_existing_frame must never report as keyframe")
	}
}

func TestVP9Profile3ReservedBit(t *testing.T) {
	// marker=10, profile_low=1, profile_high=1 (profile 3), reserved=0,
	// show_existing=0, frame_type=0 (key)
	key, err := VP9IsKeyframe([]byte{0xB0})
	if err != nil {
		t.Fatalf("VP9IsKeyframe: %v", err)
	}
	if !key {
		t.Error("expected keyframe under profile 3")
	}
}

func TestVP9EmptyFrame(t *testing.T) {
	if _, err := VP9IsKeyframe(nil); err == nil {
		t.Fatal("expected error for empty frame")
	}
}
