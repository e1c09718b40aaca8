// Package ospf decodes OSPFv2 link-state advertisements retrieved over
// SNMP and lifts them into the protocol-agnostic graph model.
package ospf

import (
	"encoding/binary"
	"net/netip"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

// ParseLSA decodes the RFC 2328 §A.4.1 LSA header plus the type-specific
// body that follows it, mirroring ospf_parser::OspfLinkStateAdvertisement
// but over a plain byte slice rather than a derived nom parser.
func ParseLSA(b []byte) (*model.LSA, error) {
	if len(b) < 20 {
		return nil, errs.NewMalformed("lsa header: need 20 bytes, got %d", len(b))
	}

	header := model.LSAHeader{
		Age:               binary.BigEndian.Uint16(b[0:2]),
		Options:           b[2],
		Type:              model.LSAType(b[3]),
		LinkStateID:       addrFrom4(b[4:8]),
		AdvertisingRouter: addrFrom4(b[8:12]),
		SequenceNumber:    binary.BigEndian.Uint32(b[12:16]),
		Checksum:          binary.BigEndian.Uint16(b[16:18]),
		Length:            binary.BigEndian.Uint16(b[18:20]),
	}

	lsa := &model.LSA{Header: header}
	body := b[20:]

	switch header.Type {
	case model.LSATypeRouter:
		rb, err := parseRouterBody(body)
		if err != nil {
			return nil, err
		}
		lsa.Router = rb
	case model.LSATypeNetwork:
		nb, err := parseNetworkBody(body)
		if err != nil {
			return nil, err
		}
		lsa.Network = nb
	case model.LSATypeSummaryIP, model.LSATypeSummaryASBR:
		sb, err := parseSummaryBody(body)
		if err != nil {
			return nil, err
		}
		lsa.Summary = sb
	case model.LSATypeExternal:
		eb, err := parseExternalBody(body)
		if err != nil {
			return nil, err
		}
		lsa.External = eb
	default:
		// Unsupported LSA type — header decodes fine, no body is
		// attached, and the semantic lift skips it (returns no Node).
	}

	return lsa, nil
}

func addrFrom4(b []byte) netip.Addr {
	var a [4]byte
	copy(a[:], b)
	return netip.AddrFrom4(a)
}

func parseRouterBody(b []byte) (*model.RouterLSABody, error) {
	if len(b) < 4 {
		return nil, errs.NewMalformed("router-lsa body: need 4 bytes, got %d", len(b))
	}
	flags := b[0]
	numLinks := binary.BigEndian.Uint16(b[2:4])

	body := &model.RouterLSABody{
		IsVirtualLinkEndpoint: flags&0x04 != 0, // V bit
		IsASBR:                flags&0x02 != 0, // E bit
	}

	offset := 4
	for i := 0; i < int(numLinks); i++ {
		if offset+12 > len(b) {
			return nil, errs.NewMalformed("router-lsa body: truncated link %d", i)
		}
		link := model.RouterLink{
			LinkID:   addrFrom4(b[offset : offset+4]),
			LinkData: addrFrom4(b[offset+4 : offset+8]),
			Type:     model.RouterLinkType(b[offset+8]),
			Metric:   binary.BigEndian.Uint16(b[offset+10 : offset+12]),
		}
		body.Links = append(body.Links, link)
		offset += 12
	}
	return body, nil
}

func parseNetworkBody(b []byte) (*model.NetworkLSABody, error) {
	if len(b) < 4 {
		return nil, errs.NewMalformed("network-lsa body: need at least 4 bytes, got %d", len(b))
	}
	body := &model.NetworkLSABody{NetworkMask: addrFrom4(b[0:4])}
	for offset := 4; offset+4 <= len(b); offset += 4 {
		body.AttachedRouters = append(body.AttachedRouters, addrFrom4(b[offset:offset+4]))
	}
	return body, nil
}

func parseSummaryBody(b []byte) (*model.SummaryLSABody, error) {
	if len(b) < 8 {
		return nil, errs.NewMalformed("summary-lsa body: need 8 bytes, got %d", len(b))
	}
	// metric is a 3-byte TOS-0 metric preceded by a reserved TOS octet.
	metric := uint32(b[5])<<16 | uint32(b[6])<<8 | uint32(b[7])
	return &model.SummaryLSABody{
		NetworkMask: addrFrom4(b[0:4]),
		Metric:      metric,
	}, nil
}

func parseExternalBody(b []byte) (*model.ExternalLSABody, error) {
	if len(b) < 12 {
		return nil, errs.NewMalformed("external-lsa body: need 12 bytes, got %d", len(b))
	}
	metric := uint32(b[5])<<16 | uint32(b[6])<<8 | uint32(b[7])
	var routeTag uint32
	if len(b) >= 16 {
		routeTag = binary.BigEndian.Uint32(b[12:16])
	}
	return &model.ExternalLSABody{
		NetworkMask:       addrFrom4(b[0:4]),
		Metric:            metric,
		ForwardingAddress: addrFrom4(b[8:12]),
		ExternalRouteTag:  routeTag,
	}, nil
}
