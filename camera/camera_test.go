package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// Should be centered on world
	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(1280, 720)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1.7)
	cam.Pan(120, -80)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.X = 100

	cam.Pan(-500, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped at 0, got %f", cam.X)
	}

	cam.Pan(1e6, 1e6)
	if cam.X != 2560 || cam.Y != 1440 {
		t.Errorf("expected clamp at world extent, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// MinZoom fits the whole world: min(1280/2560, 720/1440) = 0.5
	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	wantWx, wantWy := cam.ScreenToWorld(300, 500)
	cam.ZoomAt(1.5, 300, 500)
	gotWx, gotWy := cam.ScreenToWorld(300, 500)

	if math.Abs(float64(gotWx-wantWx)) > 0.01 || math.Abs(float64(gotWy-wantWy)) > 0.01 {
		t.Errorf("anchor moved under zoom: (%f,%f) -> (%f,%f)", wantWx, wantWy, gotWx, gotWy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2550, 720, 5) {
		t.Error("far right edge should be culled at 1:1 zoom")
	}
	// A large circle just outside the view still overlaps it
	if !cam.IsVisible(1280+650, 720, 50) {
		t.Error("overlapping circle should not be culled")
	}
}

func TestResizeAdjustsZoomFloor(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(cam.MinZoom)

	cam.Resize(640, 360)
	if cam.MinZoom != 0.25 {
		t.Errorf("expected MinZoom 0.25 after resize, got %f", cam.MinZoom)
	}
	if cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f below floor %f after resize", cam.Zoom, cam.MinZoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.Pan(400, 300)
	cam.SetZoom(2.0)

	cam.Reset()
	if cam.X != 1280 || cam.Y != 720 || cam.Zoom != 1.0 {
		t.Errorf("reset left camera at (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
