package orm

import (
	"fmt"
	"regexp"
)

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// namespace is the prefix shared by all database keys of a bucket.
type namespace []byte

func newNamespace(bucket string) namespace {
	if !validBucketName(bucket) {
		panic(fmt.Sprintf("invalid bucket name %q", bucket))
	}
	return namespace(bucket + ":")
}

// key returns the database key of a model. The result never shares memory
// with the namespace.
func (ns namespace) key(k []byte) []byte {
	out := make([]byte, 0, len(ns)+len(k))
	out = append(out, ns...)
	return append(out, k...)
}

// strip returns the primary key part of a database key.
func (ns namespace) strip(dbKey []byte) []byte {
	return dbKey[len(ns):]
}

// span returns the database key range holding every model which primary
// key starts with prefix.
func (ns namespace) span(prefix []byte) (start, end []byte) {
	start = ns.key(prefix)
	return start, prefixRangeEnd(start)
}

// prefixRangeEnd returns the smallest key greater than every key starting
// with prefix, or nil when no such key exists.
func prefixRangeEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for len(end) > 0 {
		last := len(end) - 1
		if end[last] < 0xff {
			end[last]++
			return end
		}
		end = end[:last]
	}
	return nil
}
