package tlv

import (
	elog "github.com/eluv-io/log-go"
)

var log = elog.Get("/eluvio/tlv")
