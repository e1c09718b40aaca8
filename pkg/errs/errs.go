// Package errs implements the layered error taxonomy that every
// acquisition/decode/topology layer surfaces through: raw transport and
// decode failures are lifted into progressively coarser error kinds as
// they cross the acquisition, decode, and topology-store boundaries,
// and federation rejection is kept separate since it never aborts
// anything.
package errs

import "fmt"

// AcquisitionError is a raw transport-layer problem: the transport
// failed, or the transport succeeded but returned something the
// decoder can't use at all.
type AcquisitionError struct {
	Kind    AcquisitionKind
	Message string
}

type AcquisitionKind int

const (
	AcquisitionTransport AcquisitionKind = iota
	AcquisitionInvalid
)

func (e *AcquisitionError) Error() string {
	switch e.Kind {
	case AcquisitionTransport:
		return fmt.Sprintf("transport: %s", e.Message)
	default:
		return fmt.Sprintf("invalid: %s", e.Message)
	}
}

func NewTransportError(format string, args ...any) *AcquisitionError {
	return &AcquisitionError{Kind: AcquisitionTransport, Message: fmt.Sprintf(format, args...)}
}

func NewAcquisitionInvalid(format string, args ...any) *AcquisitionError {
	return &AcquisitionError{Kind: AcquisitionInvalid, Message: fmt.Sprintf(format, args...)}
}

// ProtocolParseError means the bytes didn't fit the wire grammar.
type ProtocolParseError struct {
	Kind    ProtocolParseKind
	Message string
}

type ProtocolParseKind int

const (
	ParseMalformed ProtocolParseKind = iota
	ParseUnsupported
)

func (e *ProtocolParseError) Error() string {
	switch e.Kind {
	case ParseMalformed:
		return fmt.Sprintf("malformed: %s", e.Message)
	default:
		return fmt.Sprintf("unsupported: %s", e.Message)
	}
}

func NewMalformed(format string, args ...any) *ProtocolParseError {
	return &ProtocolParseError{Kind: ParseMalformed, Message: fmt.Sprintf(format, args...)}
}

func NewUnsupported(format string, args ...any) *ProtocolParseError {
	return &ProtocolParseError{Kind: ParseUnsupported, Message: fmt.Sprintf(format, args...)}
}

// ProtocolTopologyError means decode succeeded but the semantic lift
// or intra-source consolidation found the meaning broken.
type ProtocolTopologyError struct {
	Kind    ProtocolTopologyKind
	Message string
}

type ProtocolTopologyKind int

const (
	TopologyConversion ProtocolTopologyKind = iota
	TopologySemantic
)

func (e *ProtocolTopologyError) Error() string {
	switch e.Kind {
	case TopologyConversion:
		return fmt.Sprintf("conversion: %s", e.Message)
	default:
		return fmt.Sprintf("semantic: %s", e.Message)
	}
}

func NewConversion(format string, args ...any) *ProtocolTopologyError {
	return &ProtocolTopologyError{Kind: TopologyConversion, Message: fmt.Sprintf(format, args...)}
}

func NewSemantic(format string, args ...any) *ProtocolTopologyError {
	return &ProtocolTopologyError{Kind: TopologySemantic, Message: fmt.Sprintf(format, args...)}
}

// TopologyError is what a SnapshotSource surfaces to its caller — every
// lower-layer error is lifted into one of these two buckets.
type TopologyError struct {
	Kind    TopologyKind
	Message string
	Cause   error
}

type TopologyKind int

const (
	TopologyAcquisition TopologyKind = iota
	TopologyProtocol
)

func (e *TopologyError) Error() string {
	switch e.Kind {
	case TopologyAcquisition:
		return fmt.Sprintf("acquisition: %s", e.Message)
	default:
		return fmt.Sprintf("protocol: %s", e.Message)
	}
}

func (e *TopologyError) Unwrap() error { return e.Cause }

// Lift converts any lower-layer error into a TopologyError using a
// fixed rule: AcquisitionError.Transport becomes TopologyError.Acquisition,
// everything else becomes TopologyError.Protocol.
func Lift(err error) *TopologyError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TopologyError); ok {
		return te
	}
	if ae, ok := err.(*AcquisitionError); ok && ae.Kind == AcquisitionTransport {
		return &TopologyError{Kind: TopologyAcquisition, Message: ae.Error(), Cause: err}
	}
	return &TopologyError{Kind: TopologyProtocol, Message: err.Error(), Cause: err}
}

// FederationError is a rejection reason from a ProtocolFederator. It is
// never a hard error for the caller — build_merged_view_with downgrades
// the affected group to its fallback representative — but it's still a
// typed value so diagnostics can report *why*.
type FederationError struct {
	Kind FederationKind
}

type FederationKind int

const (
	EmptyFacets FederationKind = iota
	MixedNodeKinds
	MixedProtocols
	UnsupportedPayload
	MixedIdentity
)

func (e *FederationError) Error() string {
	switch e.Kind {
	case EmptyFacets:
		return "empty facet group"
	case MixedNodeKinds:
		return "facets mix router and network nodes"
	case MixedProtocols:
		return "facets come from different protocols"
	case UnsupportedPayload:
		return "facet payload is not eligible for this federator"
	case MixedIdentity:
		return "facets disagree on their grouping key"
	default:
		return "federation rejected"
	}
}

// StoreError reports a TopologyStore API misuse.
type StoreError struct {
	Kind StoreKind
}

type StoreKind int

const (
	SourceNotFound StoreKind = iota
	SourceAlreadyInDesiredState
)

func (e *StoreError) Error() string {
	switch e.Kind {
	case SourceNotFound:
		return "source not found"
	default:
		return "source already in desired state"
	}
}
