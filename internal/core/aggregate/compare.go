package aggregate

import "sort"

// Comparison holds the tag set algebra across two or more datasets.
type Comparison struct {
	Datasets   []string            `json:"datasets"`
	CommonTags []string            `json:"common_tags"`
	UniqueTags map[string][]string `json:"unique_tags"`
	Stats      []Stats             `json:"stats"`
}

// Compare computes the tags shared by every dataset and, per dataset,
// the tags no other dataset has. Pure set computation over the
// already-built tag counts; no I/O.
func Compare(datasets ...*Dataset) (*Comparison, error) {
	if len(datasets) < 2 {
		return nil, ErrNeedTwo
	}

	cmp := &Comparison{
		UniqueTags: make(map[string][]string, len(datasets)),
	}

	common := datasets[0].TagKeys()
	for _, ds := range datasets[1:] {
		keys := ds.TagKeys()
		for tag := range common {
			if _, ok := keys[tag]; !ok {
				delete(common, tag)
			}
		}
	}
	cmp.CommonTags = sortedKeys(common)

	for i, ds := range datasets {
		others := make(map[string]struct{})
		for j, other := range datasets {
			if j == i {
				continue
			}
			for tag := range other.TagCounts {
				others[tag] = struct{}{}
			}
		}

		unique := make(map[string]struct{})
		for tag := range ds.TagCounts {
			if _, ok := others[tag]; !ok {
				unique[tag] = struct{}{}
			}
		}

		cmp.Datasets = append(cmp.Datasets, ds.ID)
		cmp.UniqueTags[ds.ID] = sortedKeys(unique)
		cmp.Stats = append(cmp.Stats, ds.Stats())
	}

	return cmp, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := setToSlice(set)
	sort.Strings(out)
	return out
}
