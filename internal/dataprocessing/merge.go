package dataprocessing

// Merge combines two vintages of the same quantity. The result covers the
// union of periods; where both hold a value, override wins. The result keeps
// the override's name unless it is empty.
func Merge(base, override Series) Series {
	points := make([]Point, 0, base.Len()+override.Len())
	points = append(points, base.points...)
	points = append(points, override.points...)

	name := override.name
	if name == "" {
		name = base.name
	}
	return NewSeries(name, points)
}
