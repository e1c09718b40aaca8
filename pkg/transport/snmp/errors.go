package snmp

import "github.com/netgraph-io/netgraph/pkg/errs"

// NewConnectError wraps a dial/session failure as a transport
// AcquisitionError.
func NewConnectError(addr string, cause error) *errs.AcquisitionError {
	return errs.NewTransportError("snmp: connect %s: %v", addr, cause)
}

// NewOidParseError reports a malformed OID string passed to the query
// builder — caller error, not a transport failure.
func NewOidParseError(oid string, cause error) *errs.AcquisitionError {
	return errs.NewAcquisitionInvalid("snmp: parse oid %s: %v", oid, cause)
}

// NewQueryError wraps a Get/GetNext/GetBulk failure.
func NewQueryError(op string, cause error) *errs.AcquisitionError {
	return errs.NewTransportError("snmp: %s: %v", op, cause)
}

// NewInvalidQueryError reports a query builder misuse (no operation
// selected, no OIDs, or more than one OID on a Get/GetNext).
func NewInvalidQueryError(reason string) *errs.AcquisitionError {
	return errs.NewAcquisitionInvalid("snmp: invalid query: %s", reason)
}

// NewNoV3SecurityError reports an SNMPv3 session configured without
// USM security parameters.
func NewNoV3SecurityError() *errs.AcquisitionError {
	return errs.NewAcquisitionInvalid("snmp: v3 selected without security parameters")
}
