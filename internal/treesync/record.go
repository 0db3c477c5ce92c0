package treesync

import (
	"strings"

	"github.com/minio/highwayhash"
)

type Status int

const (
	StatusCopied Status = iota
	StatusMissing
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Transform is a bit set of the changes applied to a file on its way
// into the target tree.
type Transform uint8

const (
	ExtensionRenamed Transform = 1 << iota
	ImportsRewritten

	TransformNone Transform = 0
)

func (t Transform) Has(f Transform) bool { return t&f != 0 }

func (t Transform) String() string {
	if t == TransformNone {
		return "none"
	}
	var parts []string
	if t.Has(ExtensionRenamed) {
		parts = append(parts, "extension-renamed")
	}
	if t.Has(ImportsRewritten) {
		parts = append(parts, "imports-rewritten")
	}
	return strings.Join(parts, "|")
}

// Record describes what happened to one source path.
type Record struct {
	Source      string
	Destination string
	Status      Status
	Transforms  Transform
	Checksum    uint64 // highwayhash-64 of the written content
	Err         error
}

// Result aggregates the records of one CopyAll batch, in input order.
type Result struct {
	Records []Record
	Copied  []Record
	Missing []Record
	Failed  []Record
}

func (r *Result) add(rec Record) {
	r.Records = append(r.Records, rec)
	switch rec.Status {
	case StatusCopied:
		r.Copied = append(r.Copied, rec)
	case StatusMissing:
		r.Missing = append(r.Missing, rec)
	case StatusFailed:
		r.Failed = append(r.Failed, rec)
	}
}

func (r *Result) CopiedCount() int  { return len(r.Copied) }
func (r *Result) MissingCount() int { return len(r.Missing) }
func (r *Result) FailedCount() int  { return len(r.Failed) }
func (r *Result) Total() int        { return len(r.Records) }

var checksumKey = []byte("carve-treesync-checksum-key-0001")

// Checksum returns the highwayhash-64 digest recorded for copied content.
func Checksum(data []byte) (uint64, error) {
	h, err := highwayhash.New64(checksumKey)
	if err != nil {
		return 0, err
	}
	_, err = h.Write(data)
	return h.Sum64(), err
}
