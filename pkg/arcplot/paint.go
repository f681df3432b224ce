package arcplot

// surface is a drawing target. Both encoders implement it so the SVG and
// PNG outputs receive the same primitives in the same order.
type surface interface {
	axis(f frame, l Layout)
	tick(f frame, l Layout, pos int)
	arc(f frame, l Layout, a Arc)
}

// paint draws the axis, its ticks, and then every arc in Layout order.
// The arc order is the occlusion policy: later arcs cover earlier ones.
func paint(s surface, l Layout, opts Options) {
	f := newFrame(l, opts)

	s.axis(f, l)
	for _, n := range l.Ticks() {
		s.tick(f, l, n)
	}
	for _, a := range l.Arcs {
		s.arc(f, l, a)
	}
}
