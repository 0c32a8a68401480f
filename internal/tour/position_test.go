package tour

import "testing"

func TestPlace(t *testing.T) {
	vp := Size{W: 800, H: 600}
	tip := Size{W: 200, H: 100}
	target := Rect{X: 300, Y: 300, W: 100, H: 40}

	tests := []struct {
		name   string
		target Rect
		side   Position
		offset Point
		vp     Size
		want   Point
	}{
		{"bottom", target, Bottom, Point{}, vp, Point{X: 250, Y: 356}},
		{"top", target, Top, Point{}, vp, Point{X: 250, Y: 184}},
		{"left", target, Left, Point{}, vp, Point{X: 84, Y: 270}},
		{"right", target, Right, Point{}, vp, Point{X: 416, Y: 270}},
		{"center", target, Center, Point{}, vp, Point{X: 300, Y: 250}},
		{"offset", target, Bottom, Point{X: 10, Y: -5}, vp, Point{X: 260, Y: 351}},
		{"clamp top left", Rect{W: 20, H: 20}, Top, Point{}, vp, Point{X: 16, Y: 16}},
		{"clamp bottom right", Rect{X: 780, Y: 580, W: 20, H: 20}, Bottom, Point{}, vp, Point{X: 584, Y: 484}},
		{"tooltip wider than viewport", target, Bottom, Point{}, Size{W: 100, H: 100}, Point{X: 16, Y: 16}},
		{"unknown side falls back to bottom", target, Position("diagonal"), Point{}, vp, Point{X: 250, Y: 356}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.target, tt.side, tip, tt.vp, tt.offset, 16, 16)
			if got != tt.want {
				t.Errorf("Place() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCipherPageTour(t *testing.T) {
	steps := CipherPageTour()
	if len(steps) != 9 {
		t.Fatalf("len = %d, want 9", len(steps))
	}
	if !steps[len(steps)-1].IsFinalStep {
		t.Error("last step must be the final step")
	}
	regions := map[string]bool{
		"": true, RegionCipherList: true, RegionInput: true, RegionKey: true, RegionMode: true,
		RegionPlay: true, RegionOutput: true, RegionLessonButton: true, RegionLessonDialog: true,
		RegionSidebarToggle: true, RegionSidebar: true,
	}
	for i, s := range steps {
		if !regions[s.Target] || !regions[s.WaitForClose] || !regions[s.PreClickTarget] {
			t.Errorf("step %d uses an unknown region: %+v", i, s)
		}
		if s.Target == "" && s.Position != Center {
			t.Errorf("step %d has no target but is not centered", i)
		}
	}
}
