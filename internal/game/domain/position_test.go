package domain

import "testing"

func TestPositionToFieldID(t *testing.T) {
	const worldSize = 100

	center := Position{X: 0, Y: 0}
	if got := center.ToFieldID(worldSize); got != 20201 {
		t.Fatalf("center field id = %d, want 20201", got)
	}

	topLeft := Position{X: -100, Y: 100}
	if got := topLeft.ToFieldID(worldSize); got != 1 {
		t.Fatalf("top-left field id = %d, want 1", got)
	}

	bottomRight := Position{X: 100, Y: -100}
	if got := bottomRight.ToFieldID(worldSize); got != 201*201 {
		t.Fatalf("bottom-right field id = %d, want %d", got, 201*201)
	}
}

func TestPositionFieldIDRoundTrip(t *testing.T) {
	const worldSize = 100
	cases := []Position{
		{0, 0}, {-100, -100}, {100, 100}, {-37, 62}, {99, -1},
	}
	for _, p := range cases {
		id := p.ToFieldID(worldSize)
		back := PositionFromFieldID(id, worldSize)
		if back != p {
			t.Fatalf("round trip %v -> %d -> %v", p, id, back)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Position{X: 10, Y: -20}
	b := Position{X: -30, Y: 45}
	if a.Distance(b, 100) != b.Distance(a, 100) {
		t.Fatal("distance must be symmetric")
	}
}

func TestDistanceWrapsAroundWorldEdge(t *testing.T) {
	a := Position{X: -100, Y: 0}
	b := Position{X: 100, Y: 0}
	if got := a.Distance(b, 100); got != 1 {
		t.Fatalf("wrapped distance = %d, want 1", got)
	}
}

func TestTravelTimeSecs(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 10, Y: 0}

	// 10 格，10 格/小时，1 倍速：正好一小时
	if got := a.TravelTimeSecs(b, 10, 100, 1); got != 3600 {
		t.Fatalf("travel time = %d, want 3600", got)
	}
	// 2 倍速减半
	if got := a.TravelTimeSecs(b, 10, 100, 2); got != 1800 {
		t.Fatalf("travel time at 2x = %d, want 1800", got)
	}
	// 距离为零耗时为零
	if got := a.TravelTimeSecs(a, 10, 100, 1); got != 0 {
		t.Fatalf("zero distance travel time = %d, want 0", got)
	}
}

func TestTravelTimeMonotonicInDistance(t *testing.T) {
	origin := Position{X: 0, Y: 0}
	prev := uint32(0)
	for x := int32(1); x <= 50; x += 7 {
		got := origin.TravelTimeSecs(Position{X: x, Y: 0}, 6, 100, 1)
		if got < prev {
			t.Fatalf("travel time decreased at x=%d: %d < %d", x, got, prev)
		}
		prev = got
	}
}
