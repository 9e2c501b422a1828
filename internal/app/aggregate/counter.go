package aggregate

import (
	"sort"
	"strconv"
)

// Entry is one rendered row of a frequency table.
type Entry struct {
	Key   string
	Count int
}

// Counter is a frequency table that remembers first-insertion order, so
// that descending-count views keep encounter order among ties. Tables are
// built once per run and sorted only at render time.
type Counter struct {
	keys   []string
	counts map[string]int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

func (c *Counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// Len is the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.keys)
}

// Total is the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// ByCountDesc returns entries sorted by descending count; ties keep the
// order keys were first encountered in.
func (c *Counter) ByCountDesc() []Entry {
	entries := c.snapshot()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// ByKeyAsc returns entries sorted lexicographically by key. Zero-padded
// keys such as "2021-07" months come out chronological.
func (c *Counter) ByKeyAsc() []Entry {
	entries := c.snapshot()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

func (c *Counter) snapshot() []Entry {
	entries := make([]Entry, 0, len(c.keys))
	for _, key := range c.keys {
		entries = append(entries, Entry{Key: key, Count: c.counts[key]})
	}
	return entries
}

// UnknownRating is the rendered key for problems without a difficulty
// rating. It is an explicit absence sentinel, not zero.
const UnknownRating = "Unknown"

// ratingBucket is a tagged rating key: either a numeric difficulty or the
// Unknown sentinel, which orders after every numeric value.
type ratingBucket struct {
	unknown bool
	value   int
}

func (b ratingBucket) key() string {
	if b.unknown {
		return UnknownRating
	}
	return strconv.Itoa(b.value)
}

func (b ratingBucket) before(other ratingBucket) bool {
	if b.unknown != other.unknown {
		return other.unknown
	}
	return b.value < other.value
}

// RatingCounter is a frequency table over problem difficulty ratings.
type RatingCounter struct {
	counts map[ratingBucket]int
}

func NewRatingCounter() *RatingCounter {
	return &RatingCounter{counts: make(map[ratingBucket]int)}
}

// Add counts one problem; a nil rating goes to the Unknown bucket.
func (rc *RatingCounter) Add(rating *int) {
	bucket := ratingBucket{unknown: true}
	if rating != nil {
		bucket = ratingBucket{value: *rating}
	}
	rc.counts[bucket]++
}

// Ascending returns entries by increasing numeric rating, with the Unknown
// bucket last regardless of its count.
func (rc *RatingCounter) Ascending() []Entry {
	buckets := make([]ratingBucket, 0, len(rc.counts))
	for bucket := range rc.counts {
		buckets = append(buckets, bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].before(buckets[j])
	})

	entries := make([]Entry, 0, len(buckets))
	for _, bucket := range buckets {
		entries = append(entries, Entry{Key: bucket.key(), Count: rc.counts[bucket]})
	}
	return entries
}

// HourCounter is a frequency table over hour-of-day, 0 through 23. Hours
// with no activity are omitted from the rendered view, not zero-filled.
type HourCounter struct {
	counts [24]int
}

func NewHourCounter() *HourCounter {
	return &HourCounter{}
}

func (hc *HourCounter) Add(hour int) {
	if hour >= 0 && hour < len(hc.counts) {
		hc.counts[hour]++
	}
}

func (hc *HourCounter) Ascending() []Entry {
	var entries []Entry
	for hour, count := range hc.counts {
		if count > 0 {
			entries = append(entries, Entry{Key: strconv.Itoa(hour), Count: count})
		}
	}
	return entries
}
