package codec

import "testing"

func TestVP8IsKeyframe(t *testing.T) {
	cases := []struct {
		name  string
		frame []byte
		want  bool
	}{
		{"keyframe", []byte{0x10, 0x00, 0x00}, true},
		{"interframe", []byte{0x11, 0x00, 0x00}, false},
	}
	for _, c := range cases {
		got, err := VP8IsKeyframe(c.frame)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: VP8IsKeyframe = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestVP8IsKeyframeTooShort(t *testing.T) {
	if _, err := VP8IsKeyframe([]byte{0x10}); err == nil {
		t.Fatal("expected error for short frame")
	}
}
