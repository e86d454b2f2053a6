package layout

type unitRange struct {
	start int
	end   int
}

// wrapRanges splits units into visual lines no wider than limit cells.
// Whitespace that overflows hangs at the end of its line. A limit of zero
// disables wrapping.
func wrapRanges(units []unit, mode WrapMode, limit int) []unitRange {
	if limit <= 0 || mode == WrapNone || len(units) == 0 {
		return []unitRange{{start: 0, end: len(units)}}
	}

	out := make([]unitRange, 0, 1+len(units)/limit)
	for start := 0; start < len(units); {
		used := 0
		overflow := start
		for overflow < len(units) {
			w := units[overflow].width
			if overflow > start && used+w > limit {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if overflow < len(units) && units[overflow].space {
			for end < len(units) && units[end].space {
				end++
			}
		} else if mode == WrapWord && overflow < len(units) {
			if br, ok := lastBreakOpportunity(units, start, overflow); ok {
				end = br
			}
		}
		if end <= start {
			end = start + 1
		}
		out = append(out, unitRange{start: start, end: end})
		start = end
	}
	return out
}

func lastBreakOpportunity(units []unit, start, overflow int) (int, bool) {
	for j := overflow; j > start; j-- {
		if units[j-1].breakAfter {
			return j, true
		}
	}
	return 0, false
}
