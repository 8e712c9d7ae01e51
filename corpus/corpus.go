package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/folhabot/core"
)

// Corpus is an immutable ordered sequence of payroll records. It is built
// once by a loader and shared read-only by the retrieval pipeline; record
// order is the citation order.
type Corpus struct {
	records []core.Record
}

// New creates a corpus from an ordered record sequence.
// Every record is validated; the input slice is copied so later mutation of
// the caller's slice cannot leak into the corpus.
func New(records []core.Record) (*Corpus, error) {
	owned := make([]core.Record, len(records))
	copy(owned, records)

	for i := range owned {
		if err := core.ValidateRecord(&owned[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return &Corpus{records: owned}, nil
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Record returns the record at the given corpus index.
// The returned pointer must be treated as read-only.
func (c *Corpus) Record(i int) *core.Record {
	return &c.records[i]
}

// Records returns all records in corpus order.
// The returned slice must be treated as read-only.
func (c *Corpus) Records() []core.Record {
	return c.records
}

// Names returns the distinct employee names in first-appearance order.
// The filter extractor matches query tokens against this set.
func (c *Corpus) Names() []string {
	seen := make(map[string]bool, len(c.records))
	names := make([]string, 0, len(c.records))
	for i := range c.records {
		name := c.records[i].Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// MostRecentYear returns the largest competency year in the corpus.
// Bare month names in queries resolve against it. Returns 0 for an empty
// corpus.
func (c *Corpus) MostRecentYear() int {
	year := 0
	for i := range c.records {
		y, _, _ := strings.Cut(c.records[i].Competency, "-")
		if parsed, err := strconv.Atoi(y); err == nil && parsed > year {
			year = parsed
		}
	}
	return year
}

// Criteria is a structured record filter for direct dataset queries.
// Zero values mean "no constraint". Name matches as a case-insensitive
// substring; Competency and EmployeeID match exactly.
type Criteria struct {
	Name       string
	Competency string
	EmployeeID string
	MinNetPay  *float64
	MaxNetPay  *float64
}

// Select returns the corpus indices of records matching the criteria,
// in corpus order.
func (c *Corpus) Select(criteria Criteria) []int {
	name := strings.ToLower(criteria.Name)

	var indices []int
	for i := range c.records {
		r := &c.records[i]
		if name != "" && !strings.Contains(strings.ToLower(r.Name), name) {
			continue
		}
		if criteria.Competency != "" && r.Competency != criteria.Competency {
			continue
		}
		if criteria.EmployeeID != "" && r.EmployeeID != criteria.EmployeeID {
			continue
		}
		if criteria.MinNetPay != nil && r.NetPay < *criteria.MinNetPay {
			continue
		}
		if criteria.MaxNetPay != nil && r.NetPay > *criteria.MaxNetPay {
			continue
		}
		indices = append(indices, i)
	}
	return indices
}
