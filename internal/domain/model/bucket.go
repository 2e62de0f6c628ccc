package model

// Bucket is one of the four fixed availability ranges.
type Bucket int

// Buckets from most to least available.
const (
	BucketHigh    Bucket = iota // 76-100
	BucketMedium                // 51-75
	BucketLow                   // 26-50
	BucketVeryLow               // 0-25
)

// Buckets returns every bucket in display order.
func Buckets() []Bucket {
	return []Bucket{BucketHigh, BucketMedium, BucketLow, BucketVeryLow}
}

// BucketFor places an availability percentage. Boundaries 76, 51 and 26
// belong to the higher bucket.
func BucketFor(availability int) Bucket {
	switch {
	case availability >= 76:
		return BucketHigh
	case availability >= 51:
		return BucketMedium
	case availability >= 26:
		return BucketLow
	default:
		return BucketVeryLow
	}
}

// Key is the range without a unit, used in data blobs and CSS classes.
func (b Bucket) Key() string {
	switch b {
	case BucketHigh:
		return "76-100"
	case BucketMedium:
		return "51-75"
	case BucketLow:
		return "26-50"
	default:
		return "0-25"
	}
}

// Label is the human-facing range, e.g. "76-100%".
func (b Bucket) Label() string { return b.Key() + "%" }

// Severity names the tree colour class.
func (b Bucket) Severity() string {
	switch b {
	case BucketHigh:
		return "high"
	case BucketMedium:
		return "medium"
	case BucketLow:
		return "low"
	default:
		return "very-low"
	}
}

func (b Bucket) String() string { return b.Label() }

// MarshalText renders the bucket as its key.
func (b Bucket) MarshalText() ([]byte, error) { return []byte(b.Key()), nil }
