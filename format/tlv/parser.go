package tlv

import (
	"strconv"

	"github.com/eluv-io/errors-go"
	"github.com/eluv-io/utc-go"
)

// Parse decodes the TLV records of a payload with the default configuration.
// The optional startPos overrides the default start offset of 4 bytes, which
// skips the preamble of the payload.
//
// See Parser.Parse for details.
func Parse(buf []byte, startPos ...uint16) (Records, error) {
	cfg := DefaultConfig()
	if len(startPos) > 0 {
		cfg.StartOffset = startPos[0]
	}
	return NewParser(cfg).Parse(buf)
}

// NewParser creates a parser with the given configuration. Invalid settings
// are replaced by their defaults and logged.
func NewParser(cfg Config) *Parser {
	def := DefaultConfig()
	if cfg.VendorEscape <= 0 {
		log.Warn("invalid vendor escape - using default",
			"vendor_escape", cfg.VendorEscape,
			"default", def.VendorEscape)
		cfg.VendorEscape = def.VendorEscape
	}
	if cfg.Enterprise < 0 {
		log.Warn("invalid enterprise number - using default",
			"enterprise", cfg.Enterprise,
			"default", def.Enterprise)
		cfg.Enterprise = def.Enterprise
	}
	if cfg.Workers < 1 {
		cfg.Workers = def.Workers
	}
	return &Parser{cfg: cfg}
}

// Parser decodes TLV payloads into records. A Parser holds no per-payload
// state and may be used concurrently.
type Parser struct {
	cfg   Config
	stats stats
}

// Config returns the configuration of the parser.
func (p *Parser) Config() Config {
	return p.cfg
}

// Stats returns a snapshot of the parser's counters.
func (p *Parser) Stats() Stats {
	return p.stats.snapshot()
}

// Parse decodes the records of the given payload, starting at the configured
// start offset, until the end of the buffer.
//
// Each record is a tag varint, a length varint and a sequence of options
// filling the declared length. The first option is always decoded, further
// options only while more than one byte of the declared length remains.
//
// The tag 127 introduces a vendor defined record: it is followed by the
// enterprise number and, for the registered enterprise 1233, a subtype. Such records get the id "e1233.<subtype>". Other records
// get the decimal tag as id.
//
// Decoding favors partial results:
//   - if a record's declared length extends past the end of the buffer, the
//     parse stops and the records decoded so far are returned without error
//   - options with unsupported wire types (groups) end the record's options
//     without error
//   - truncated varints yield the value accumulated so far
//
// Options whose value extends past the end of the buffer cause an error. It is
// returned together with the records decoded before the failing one.
//
// The position after a record is where its last option ended. It is not
// adjusted to the declared record length.
func (p *Parser) Parse(buf []byte) (Records, error) {
	if buf == nil {
		return nil, errors.E("tlv.Parse", errors.K.Invalid, "reason", "nil buffer")
	}

	p.stats.payloads.Inc()
	p.stats.lastParse.Store(utc.Now().UnixMilli())

	recs, err := p.parse(buf)
	if err != nil {
		p.stats.errors.Inc()
		err = errors.E("tlv.Parse", errors.K.Invalid, err, "records", len(recs))
	}
	return recs, err
}

func (p *Parser) parse(buf []byte) (Records, error) {
	c := &cursor{buf: buf, pos: int(p.cfg.StartOffset)}
	recs := make(Records, 0)

	for !c.done() {
		recordPos := c.pos
		tag, _ := c.varint()
		id := p.recordID(c, tag)

		length, _ := c.varint()
		if length < 0 || length > int64(c.available()) {
			log.Debug("record length exceeds payload",
				"record", id,
				"length", length,
				"pos", recordPos,
				"size", len(buf))
			p.stats.truncated.Inc()
			break
		}

		rec := Record{ID: id}
		// at least one option is decoded, more while over one byte remains
		remaining := length
		for !c.done() {
			opt, rem, ok, err := decodeOption(c, remaining, id)
			if err != nil {
				return recs, err
			}
			remaining = rem
			if !ok {
				p.stats.skipped.Inc()
				break
			}
			rec.Options = append(rec.Options, opt)
			if remaining <= 1 {
				break
			}
		}

		recs = append(recs, rec)
		p.stats.records.Inc()
		p.stats.options.Add(uint64(len(rec.Options)))
	}

	return recs, nil
}

// recordID returns the id of the record with the given tag. For the vendor
// escape tag, the enterprise number and subtype are read from the cursor. An
// unknown enterprise number yields the decimal tag and no subtype is read.
func (p *Parser) recordID(c *cursor, tag int64) string {
	if tag != p.cfg.VendorEscape {
		return strconv.FormatInt(tag, 10)
	}
	enterprise, _ := c.varint()
	if enterprise != p.cfg.Enterprise {
		log.Debug("unknown enterprise number",
			"tag", tag,
			"enterprise", enterprise,
			"pos", c.pos)
		return strconv.FormatInt(tag, 10)
	}
	subtype, _ := c.varint()
	return VendorID(enterprise, subtype)
}
