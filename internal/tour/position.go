package tour

// Place computes the tooltip origin for a target. The tooltip is centered
// on the target's cross axis, pushed gap units away along the main axis,
// shifted by offset and finally clamped so it stays margin units inside
// the viewport. Center ignores the target and centers on the viewport.
func Place(target Rect, side Position, tip, viewport Size, offset Point, gap, margin int) Point {
	var p Point
	switch side {
	case Top:
		p.X = target.X + target.W/2 - tip.W/2
		p.Y = target.Y - tip.H - gap
	case Left:
		p.X = target.X - tip.W - gap
		p.Y = target.Y + target.H/2 - tip.H/2
	case Right:
		p.X = target.X + target.W + gap
		p.Y = target.Y + target.H/2 - tip.H/2
	case Center:
		p.X = (viewport.W - tip.W) / 2
		p.Y = (viewport.H - tip.H) / 2
	default:
		p.X = target.X + target.W/2 - tip.W/2
		p.Y = target.Y + target.H + gap
	}

	p.X += offset.X
	p.Y += offset.Y
	p.X = clamp(p.X, margin, viewport.W-tip.W-margin)
	p.Y = clamp(p.Y, margin, viewport.H-tip.H-margin)
	return p
}

// clamp keeps v in [lo, hi]. A tooltip wider than the viewport is pinned
// to lo.
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
