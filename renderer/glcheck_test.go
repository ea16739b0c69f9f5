package renderer

import (
	"errors"
	"testing"
)

func TestErrorName(t *testing.T) {
	tests := map[uint32]string{
		0x0000: "GL_NO_ERROR",
		0x0500: "GL_INVALID_ENUM",
		0x0502: "GL_INVALID_OPERATION",
		0x0505: "GL_OUT_OF_MEMORY",
		0x0506: "GL_INVALID_FRAMEBUFFER_OPERATION",
		0x9999: "GL_ERROR_0x9999",
	}
	for code, want := range tests {
		if got := ErrorName(code); got != want {
			t.Errorf("ErrorName(0x%04X) = %q, want %q", code, got, want)
		}
	}
}

func TestGLErrorMessage(t *testing.T) {
	err := error(&GLError{Op: "draw", Codes: []uint32{0x0502, 0x0501}})
	if got, want := err.Error(), "draw: GL_INVALID_OPERATION, GL_INVALID_VALUE"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrGL) {
		t.Error("GLError does not unwrap to ErrGL")
	}
}

func TestRecordOptions(t *testing.T) {
	o := RecordOptions{Duration: 1.5, FPS: 30, OutputFile: "out.mp4"}
	if got := o.FrameCount(); got != 45 {
		t.Errorf("FrameCount = %d, want 45", got)
	}
	if err := o.validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
	for _, bad := range []RecordOptions{
		{Duration: 1, FPS: 0, OutputFile: "a.mp4"},
		{Duration: 0, FPS: 30, OutputFile: "a.mp4"},
		{Duration: 1, FPS: 30},
	} {
		if err := bad.validate(); err == nil {
			t.Errorf("validate(%+v) succeeded", bad)
		}
	}

	in, out := encoderArgs(o, 640, 480)
	if in["s"] != "640x480" || in["pix_fmt"] != "rgba" {
		t.Errorf("input args = %v", in)
	}
	if out["c:v"] != "libx264" || out["vf"] != "vflip" {
		t.Errorf("output args = %v", out)
	}
}
