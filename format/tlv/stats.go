package tlv

import (
	"go.uber.org/atomic"

	"github.com/eluv-io/utc-go"
)

// Stats are the counters of a Parser.
type Stats struct {
	Payloads  uint64  `json:"payloads"`   // number of parsed payloads
	Records   uint64  `json:"records"`    // number of emitted records
	Options   uint64  `json:"options"`    // number of decoded options
	Skipped   uint64  `json:"skipped"`    // options with unsupported wire type
	Truncated uint64  `json:"truncated"`  // payloads cut short by a record length beyond the buffer
	Errors    uint64  `json:"errors"`     // payloads that failed with an error
	LastParse utc.UTC `json:"last_parse"` // time of the last parse, zero if none
}

type stats struct {
	payloads  atomic.Uint64
	records   atomic.Uint64
	options   atomic.Uint64
	skipped   atomic.Uint64
	truncated atomic.Uint64
	errors    atomic.Uint64
	lastParse atomic.Int64 // unix millis
}

func (s *stats) snapshot() Stats {
	res := Stats{
		Payloads:  s.payloads.Load(),
		Records:   s.records.Load(),
		Options:   s.options.Load(),
		Skipped:   s.skipped.Load(),
		Truncated: s.truncated.Load(),
		Errors:    s.errors.Load(),
	}
	if ms := s.lastParse.Load(); ms != 0 {
		res.LastParse = utc.UnixMilli(ms)
	}
	return res
}
