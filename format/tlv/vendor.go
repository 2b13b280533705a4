package tlv

import (
	"strconv"
	"strings"
)

const (
	// VendorEscape is the record tag announcing a vendor defined record.
	VendorEscape int64 = 127
	// Enterprise is the registered enterprise number of vendor defined records.
	Enterprise int64 = 1233
)

// VendorID returns the record id of a vendor defined record.
func VendorID(enterprise, subtype int64) string {
	return "e" + strconv.FormatInt(enterprise, 10) + "." + strconv.FormatInt(subtype, 10)
}

// ParseVendorID is the inverse of VendorID.
func ParseVendorID(id string) (enterprise, subtype int64, ok bool) {
	if !strings.HasPrefix(id, "e") {
		return 0, 0, false
	}
	ent, sub, found := strings.Cut(id[1:], ".")
	if !found {
		return 0, 0, false
	}
	var err error
	if enterprise, err = strconv.ParseInt(ent, 10, 64); err != nil {
		return 0, 0, false
	}
	if subtype, err = strconv.ParseInt(sub, 10, 64); err != nil {
		return 0, 0, false
	}
	return enterprise, subtype, true
}
