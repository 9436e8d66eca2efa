package chart

// clipBand clips a polygon to the horizontal band y0 <= y <= y1
func clipBand(poly []Vec, y0, y1 float64) []Vec {
	out := clipEdge(poly, func(v Vec) bool { return v.Y >= y0 }, y0)
	return clipEdge(out, func(v Vec) bool { return v.Y <= y1 }, y1)
}

// clipEdge is one Sutherland-Hodgman pass against the line y = limit
func clipEdge(poly []Vec, inside func(Vec) bool, limit float64) []Vec {
	if len(poly) == 0 {
		return nil
	}
	out := make([]Vec, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		switch {
		case inside(cur):
			if !inside(prev) {
				out = append(out, crossAt(prev, cur, limit))
			}
			out = append(out, cur)
		case inside(prev):
			out = append(out, crossAt(prev, cur, limit))
		}
		prev = cur
	}
	return out
}

func crossAt(a, b Vec, y float64) Vec {
	t := (y - a.Y) / (b.Y - a.Y)
	return Vec{X: a.X + t*(b.X-a.X), Y: y}
}
