package weight

// Nice bounds accepted by SetNice.
const (
	MinNice = -20
	MaxNice = 20
)

// NiceZeroWeight is the weight of a nice 0 process.
const NiceZeroWeight = 1024

// niceToWeight maps nice -20..19; each step is roughly 10% of CPU share.
var niceToWeight = [40]int{
	/* -20 */ 88761, 71755, 56483, 46273, 36291,
	/* -15 */ 29154, 23254, 18705, 14949, 11916,
	/* -10 */ 9548, 7620, 6100, 4904, 3906,
	/*  -5 */ 3121, 2501, 1991, 1586, 1277,
	/*   0 */ 1024, 820, 655, 526, 423,
	/*   5 */ 335, 272, 215, 172, 137,
	/*  10 */ 110, 87, 70, 56, 45,
	/*  15 */ 36, 29, 23, 18, 15,
}

// ValidNice reports whether nice is within [MinNice, MaxNice].
func ValidNice(nice int) bool {
	return nice >= MinNice && nice <= MaxNice
}

// Of returns the weight for nice. Values beyond the table ends take the
// weight of the nearest entry, so nice 20 weighs the same as nice 19.
func Of(nice int) int {
	index := nice - MinNice
	if index < 0 {
		index = 0
	}
	if index >= len(niceToWeight) {
		index = len(niceToWeight) - 1
	}
	return niceToWeight[index]
}
