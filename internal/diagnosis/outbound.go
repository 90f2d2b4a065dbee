package diagnosis

// outboundCounts holds a representative monthly count per outbound bucket.
var outboundCounts = map[OutboundLevel]int{
	OutboundNone:   0,
	OutboundLow:    3,
	OutboundMedium: 10,
	OutboundHigh:   20,
}

// OutboundCount returns the representative count for a bucket.
// Unknown labels count as zero.
func OutboundCount(level OutboundLevel) int {
	return outboundCounts[level]
}
