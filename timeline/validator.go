package timeline

// IsInvalid reports whether the candidate [start, end] collides with the
// blocked interval [source, target]. Values only; percents are never compared.
//
// The strict and non-strict comparisons differ from rule to rule and callers
// depend on the exact mix, so each rule is kept as written.
func IsInvalid(start, end int64, source, target Point) bool {
	bs, be := source.Value, target.Value

	// the blocked interval's trailing edge falls inside the candidate
	if bs > start && be <= end || bs >= start && be < end {
		return true
	}
	// the candidate lies inside the blocked interval
	if start >= bs && end <= be {
		return true
	}

	startInBlocked := start > bs && start < be && end >= be
	endInBlocked := end < be && end > bs && start <= bs
	return startInBlocked || endInBlocked
}

// AnyInvalid reports whether the candidate collides with any blocked
// interval. A nil list means no restrictions. Intervals sharing no instant
// with the domain are ignored.
func AnyInvalid(start, end int64, blocked []ProjectedInterval) bool {
	for _, b := range blocked {
		if b.Outside {
			continue
		}
		if IsInvalid(start, end, b.Source, b.Target) {
			return true
		}
	}
	return false
}
