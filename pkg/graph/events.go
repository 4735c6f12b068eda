package graph

// Event is a user action on the overlay.
type Event interface {
	graphEvent()
}

// SelectPoints picks a history depth by index into PointOptions.
type SelectPoints struct{ Index int }

// SelectScale picks a Y scale by index into the current kind's options.
type SelectScale struct{ Index int }

// ToggleLegend shows or hides one series.
type ToggleLegend struct{ Series Series }

// Back closes the overlay.
type Back struct{}

func (SelectPoints) graphEvent() {}
func (SelectScale) graphEvent()  {}
func (ToggleLegend) graphEvent() {}
func (Back) graphEvent()         {}
