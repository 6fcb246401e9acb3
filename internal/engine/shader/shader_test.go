package shader

import (
	"encoding/binary"
	gomath "math"
	"strings"
	"testing"

	"github.com/Faultbox/meshdemo/pkg/math"
)

func floatAt(b []byte, index int) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(b[index*4:]))
}

func TestVertexDataBytes(t *testing.T) {
	d := VertexData{
		ColorTint:  math.Vec4{1, 0.5, 0.25, 1},
		World:      math.Translate(-1.2, -0.3, 0),
		View:       math.Scale(2, 3, 4),
		Projection: math.PerspectiveFovLH(1, 1.5, 0.01, 100),
	}

	b := d.Bytes()
	if len(b) != Size || Size != 208 {
		t.Fatalf("payload size: got %d, want 208", len(b))
	}

	for i, want := range d.ColorTint {
		if got := floatAt(b, i); got != want {
			t.Errorf("tint[%d]: got %f, want %f", i, got, want)
		}
	}

	tests := []struct {
		name   string
		offset int
		m      math.Mat4
	}{
		{"world", 4, d.World},
		{"view", 20, d.View},
		{"projection", 36, d.Projection},
	}
	for _, tt := range tests {
		for i, want := range tt.m {
			if got := floatAt(b, tt.offset+i); got != want {
				t.Errorf("%s[%d]: got %f, want %f", tt.name, i, got, want)
			}
		}
	}

	// Translation is the last row, so it lands in the last four floats of World.
	if floatAt(b, 4+12) != -1.2 || floatAt(b, 4+13) != -0.3 {
		t.Error("world translation not stored row-major")
	}
}

func TestAppendBytesReusesBuffer(t *testing.T) {
	d := VertexData{World: math.Identity()}
	buf := make([]byte, 0, Size)

	out := d.AppendBytes(buf)
	if len(out) != Size || &out[0] != &buf[:1][0] {
		t.Error("AppendBytes should write into the provided capacity")
	}
}

func TestEmbeddedSources(t *testing.T) {
	for name, src := range map[string]string{"vertex": VertexSource, "fragment": FragmentSource} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s source missing version header", name)
		}
	}
	if !strings.Contains(VertexSource, "uniform "+BlockName) {
		t.Errorf("vertex source does not declare the %s block", BlockName)
	}
}
