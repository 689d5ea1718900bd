// Package tagutil derives the tag set attached to every measurement point
// from the configured tag mapping and metrics prefix.
package tagutil

import (
	"fmt"
	"strings"

	"github.com/agate/profiler-metrics-reporter/reporterconfig"
)

// SkipTag is the mapping key that excludes its prefix segment from the
// derived tag set without breaking positional alignment.
const SkipTag = "SKIP"

// Tag is one key/value label.
type Tag struct {
	Key   string
	Value string
}

// TagSet is an ordered collection of tags. Order follows the tag mapping and
// has no semantic effect, but keeps point construction deterministic.
type TagSet []Tag

// Map returns the tags as a plain map for client libraries that take one.
func (ts TagSet) Map() map[string]string {
	m := make(map[string]string, len(ts))
	for _, t := range ts {
		m[t.Key] = t.Value
	}
	return m
}

// Lookup returns the value for key and whether the set contains it.
func (ts TagSet) Lookup(key string) (string, bool) {
	for _, t := range ts {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// Derive pairs the dot-delimited tag keys in mapping with the dot-delimited
// segments of prefix, position by position. An empty mapping derives an
// empty set. A mapping whose segment count differs from the prefix is a
// configuration error.
func Derive(mapping, prefix string) (TagSet, error) {
	if mapping == "" {
		return nil, nil
	}

	keys := strings.Split(mapping, ".")
	values := strings.Split(prefix, ".")
	if len(keys) != len(values) {
		return nil, &reporterconfig.Error{
			Option: "tagMapping",
			Reason: fmt.Sprintf("%d segments do not align with the %d segments of metrics prefix %q", len(keys), len(values), prefix),
		}
	}

	tags := make(TagSet, 0, len(keys))
	for i, key := range keys {
		if key == SkipTag {
			continue
		}
		tags = append(tags, Tag{Key: key, Value: values[i]})
	}
	return tags, nil
}
