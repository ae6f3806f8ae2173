package forms

import "strings"

// TagSet is the tag input widget's model: an ordered set with a size cap
// and a per-tag length cap. Adding a duplicate or overflowing the cap is a
// silent no-op, matching how the widget swallows rejected entries.
type TagSet struct {
	maxTags   int
	maxLength int
	tags      []string
}

func NewTagSet(maxTags, maxLength int) *TagSet {
	return &TagSet{maxTags: maxTags, maxLength: maxLength}
}

// Add trims and appends one tag. Returns false when the tag was rejected:
// empty after trimming, already present, too long, or the set is full.
// Comparison is case sensitive, so "Sale" and "sale" coexist.
func (t *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	if t.maxLength > 0 && len(tag) > t.maxLength {
		return false
	}
	for _, existing := range t.tags {
		if existing == tag {
			return false
		}
	}
	if t.maxTags > 0 && len(t.tags) >= t.maxTags {
		return false
	}
	t.tags = append(t.tags, tag)
	return true
}

// AddAll splits pasted text on commas and adds each piece, keeping
// whatever fits.
func (t *TagSet) AddAll(text string) int {
	added := 0
	for _, piece := range strings.Split(text, ",") {
		if t.Add(piece) {
			added++
		}
	}
	return added
}

// Remove drops a tag if present.
func (t *TagSet) Remove(tag string) bool {
	for i, existing := range t.tags {
		if existing == tag {
			t.tags = append(t.tags[:i], t.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Values returns the tags in insertion order, never nil.
func (t *TagSet) Values() []string {
	out := make([]string, len(t.tags))
	copy(out, t.tags)
	return out
}

func (t *TagSet) Len() int {
	return len(t.tags)
}
