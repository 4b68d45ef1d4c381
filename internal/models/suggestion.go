package models

// Suggestion buckets in priority order.
const (
	BucketMust   = "must"
	BucketShould = "should"
	BucketCould  = "could"
)

// Buckets lists the three suggestion buckets in fixed order.
var Buckets = []string{BucketMust, BucketShould, BucketCould}

// Suggestion is a derived, ephemeral recommendation. Its id is the
// deterministic composite sg_<bucket>_<source-kind>_<source-id> so
// repeated rebuilds neither duplicate nor lose provenance.
type Suggestion struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Meta      string `json:"meta,omitempty"`
	SourceID  string `json:"sourceId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// SuggestionSet holds the three prioritized buckets.
type SuggestionSet struct {
	Must   []*Suggestion `json:"must"`
	Should []*Suggestion `json:"should"`
	Could  []*Suggestion `json:"could"`
}

// Bucket returns the named bucket slice.
func (s *SuggestionSet) Bucket(name string) []*Suggestion {
	switch name {
	case BucketMust:
		return s.Must
	case BucketShould:
		return s.Should
	case BucketCould:
		return s.Could
	}
	return nil
}

// SetBucket replaces the named bucket slice.
func (s *SuggestionSet) SetBucket(name string, items []*Suggestion) {
	switch name {
	case BucketMust:
		s.Must = items
	case BucketShould:
		s.Should = items
	case BucketCould:
		s.Could = items
	}
}

// All returns must, should and could concatenated in bucket order.
func (s *SuggestionSet) All() []*Suggestion {
	all := make([]*Suggestion, 0, len(s.Must)+len(s.Should)+len(s.Could))
	all = append(all, s.Must...)
	all = append(all, s.Should...)
	all = append(all, s.Could...)
	return all
}

// Find locates a suggestion by id across all buckets, returning the
// bucket name it lives in.
func (s *SuggestionSet) Find(id string) (*Suggestion, string, bool) {
	for _, bucket := range Buckets {
		for _, sg := range s.Bucket(bucket) {
			if sg.ID == id {
				return sg, bucket, true
			}
		}
	}
	return nil, "", false
}
