package isis

import (
	"encoding/hex"
	"encoding/json"
	"net/netip"
	"strconv"
	"strings"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

// The types below mirror FRR's `show isis database detail json` output,
// one field at a time, the same way the original parser's serde structs
// did — see jsonLspdb's nested shape in the comment on DecodeLSPDB.

type jsonLspdb struct {
	Areas []jsonArea `json:"areas"`
}

type jsonArea struct {
	AreaProps jsonAreaProps `json:"area"`
	Levels    []jsonLevel   `json:"levels"`
}

type jsonAreaProps struct {
	Name *string `json:"name"`
}

type jsonLevel struct {
	ID   int       `json:"id"`
	Lsps []jsonLsp `json:"lsps"`
}

type jsonLsp struct {
	IDSection          jsonLspIDSection                   `json:"lsp"`
	SeqNumber          string                             `json:"seqNumber"`
	Holdtime           int                                `json:"holdtime"`
	AreaAddr           *string                            `json:"areaAddr"`
	Hostname           *string                            `json:"hostname"`
	RouterCapability   *jsonRouterCapability              `json:"routerCapability"`
	ExtReach           []jsonExtendedReachabilityNeighbor `json:"extReach"`
	ExtIPReach         []jsonExtendedIPReachability       `json:"extIpReach"`
}

type jsonLspIDSection struct {
	ID     string `json:"id"`
	OwnLSP bool   `json:"ownLSP"`
}

type jsonRouterCapability struct {
	ID     string `json:"id"`
	FlagD  bool   `json:"flagD"`
	FlagS  bool   `json:"flagS"`
}

type jsonExtendedReachabilityNeighbor struct {
	ID     string `json:"id"`
	Metric uint32 `json:"metric"`
}

type jsonExtendedIPReachability struct {
	Prefix string `json:"ipReach"`
	Metric uint32 `json:"ipReachMetric"`
	Down   bool   `json:"down"`
}

// DecodeLSPDB parses `show isis database detail json` output into the
// FRR-shaped struct tree, per the layout:
//
//	{"areas": [{"area": {"name": ...}, "levels": [{"id": 1, "lsps": [...]}]}]}
func DecodeLSPDB(data []byte) (*jsonLspdb, error) {
	var db jsonLspdb
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, errs.NewMalformed("isis: decode lspdb json: %v", err)
	}
	return &db, nil
}

// LspRecord is one decoded LSP, its routing level, and the System ID it
// was resolved to (the LSP's hostname field, or the first component of
// its id when the hostname is absent, looked up in the hostname map),
// ready to be lifted into a Node.
type LspRecord struct {
	SystemID model.SystemID
	Data     model.IsIsData
}

// ExtractLSPs walks every area/level of a decoded LSPDB and converts each
// JSON LSP entry into an LspRecord, resolving each entry's hostname to a
// System ID via hostnames. An entry whose hostname can't be resolved is
// skipped (soft-fail): a stale LSP for a router that has since aged
// out of the hostname table is not fatal to the whole poll.
func ExtractLSPs(db *jsonLspdb, hostnames *HostnameMap) ([]LspRecord, error) {
	var out []LspRecord
	for _, area := range db.Areas {
		for _, level := range area.Levels {
			isLevel, err := levelFromInt(level.ID)
			if err != nil {
				return nil, err
			}
			for _, lsp := range level.Lsps {
				rec, ok, err := convertLsp(lsp, isLevel, hostnames)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func levelFromInt(v int) (model.IsLevel, error) {
	switch v {
	case 1:
		return model.IsLevel1, nil
	case 2:
		return model.IsLevel2, nil
	default:
		return 0, errs.NewAcquisitionInvalid("isis: invalid level %d", v)
	}
}

func convertLsp(lsp jsonLsp, level model.IsLevel, hostnames *HostnameMap) (LspRecord, bool, error) {
	hostname := ""
	if lsp.Hostname != nil {
		hostname = *lsp.Hostname
	} else {
		parts := strings.Split(lsp.IDSection.ID, ".")
		if len(parts) > 0 {
			hostname = parts[0]
		}
	}
	if hostname == "" {
		return LspRecord{}, false, nil
	}

	sysID, ok := hostnames.SystemIDByHostname(hostname)
	if !ok {
		return LspRecord{}, false, nil
	}

	lspID, err := parseLspID(lsp.IDSection, sysID)
	if err != nil {
		return LspRecord{}, false, err
	}

	var tlvs []model.Tlv

	if lsp.AreaAddr != nil {
		raw, err := parseAreaAddress(*lsp.AreaAddr)
		if err == nil {
			tlvs = append(tlvs, model.Tlv{Kind: model.TlvAreaAddresses, AreaAddresses: [][]byte{raw}})
		}
	}

	tlvs = append(tlvs, model.Tlv{Kind: model.TlvHostname, Hostname: hostname})

	if lsp.RouterCapability != nil {
		capability, err := parseRouterCapability(*lsp.RouterCapability)
		if err != nil {
			return LspRecord{}, false, err
		}
		tlvs = append(tlvs, model.Tlv{Kind: model.TlvRouterCapability, RouterCapability: capability})
	}

	if len(lsp.ExtReach) > 0 {
		neighbors := make([]model.ISNeighbor, 0, len(lsp.ExtReach))
		for _, r := range lsp.ExtReach {
			n, err := parseExtendedReachabilityNeighbor(r)
			if err != nil {
				return LspRecord{}, false, err
			}
			neighbors = append(neighbors, n)
		}
		tlvs = append(tlvs, model.Tlv{Kind: model.TlvExtendedISReachability, ISNeighbors: neighbors})
	}

	if len(lsp.ExtIPReach) > 0 {
		reaches := make([]model.IPReach, 0, len(lsp.ExtIPReach))
		for _, r := range lsp.ExtIPReach {
			reach, err := parseExtendedIPReachability(r)
			if err != nil {
				return LspRecord{}, false, err
			}
			reaches = append(reaches, reach)
		}
		tlvs = append(tlvs, model.Tlv{Kind: model.TlvExtendedIPReachability, IPReach: reaches})
	}

	data := model.IsIsData{
		LspID:          lspID,
		IsLevel:        level,
		Holdtime:       lsp.Holdtime,
		SequenceNumber: parseHexUint32(lsp.SeqNumber),
		Tlvs:           tlvs,
	}
	if lsp.AreaAddr != nil {
		data.NetAddress = *lsp.AreaAddr + "." + sysID.String() + ".00"
	}

	return LspRecord{SystemID: sysID, Data: data}, true, nil
}

// parseLspID merges a System ID with the pseudonode/fragment suffix of
// the JSON id string (e.g. "r1.00-00" -> pseudonode 0x00, fragment
// 0x00), per the original `get_lsp_id` conversion.
func parseLspID(section jsonLspIDSection, sysID model.SystemID) (model.LspId, error) {
	parts := strings.Split(section.ID, ".")
	pf := parts[len(parts)-1]
	pfParts := strings.SplitN(pf, "-", 2)
	if len(pfParts) != 2 {
		return model.LspId{}, errs.NewMalformed("isis: invalid lsp id suffix %q", pf)
	}
	pseudonode, ok := hexByte(padEven(pfParts[0]))
	if !ok {
		return model.LspId{}, errs.NewMalformed("isis: invalid pseudonode byte %q", pfParts[0])
	}
	fragment, ok := hexByte(padEven(pfParts[1]))
	if !ok {
		return model.LspId{}, errs.NewMalformed("isis: invalid fragment byte %q", pfParts[1])
	}
	return model.LspId{SystemID: sysID, Pseudonode: pseudonode, Fragment: fragment}, nil
}

// parseHexUint32 decodes FRR's "0x00000002"-style sequence numbers; a
// malformed value yields 0 rather than failing the whole LSP.
func parseHexUint32(s string) uint32 {
	s = strings.TrimPrefix(s, "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

func padEven(s string) string {
	if len(s)%2 != 0 {
		return "0" + s
	}
	return s
}

// parseAreaAddress decodes a dot-separated hex area address like
// "49.0001" into raw bytes, padding any odd-length component.
func parseAreaAddress(s string) ([]byte, error) {
	var out []byte
	for _, part := range strings.Split(s, ".") {
		b, err := hex.DecodeString(padEven(part))
		if err != nil {
			return nil, errs.NewMalformed("isis: invalid area address %q: %v", s, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func parseRouterCapability(j jsonRouterCapability) (model.RouterCapability, error) {
	addr, err := netip.ParseAddr(j.ID)
	if err != nil {
		return model.RouterCapability{}, errs.NewMalformed("isis: invalid routerCapability id %q: %v", j.ID, err)
	}
	return model.RouterCapability{TERouterID: addr, FlagD: j.FlagD, FlagS: j.FlagS}, nil
}

// parseExtendedReachabilityNeighbor decodes an extReach id like
// "0000.0000.0001.34" into a 6-byte System ID plus a trailing
// pseudonode byte, per the original TryInto<ExtendedIsNeighbor>.
func parseExtendedReachabilityNeighbor(j jsonExtendedReachabilityNeighbor) (model.ISNeighbor, error) {
	parts := strings.Split(j.ID, ".")
	if len(parts) < 2 {
		return model.ISNeighbor{}, errs.NewMalformed("isis: invalid extReach id %q", j.ID)
	}
	pseudonodeTok := parts[len(parts)-1]
	sysParts := parts[:len(parts)-1]

	var sysBytes []byte
	for _, p := range sysParts {
		b, err := hex.DecodeString(padEven(p))
		if err != nil {
			return model.ISNeighbor{}, errs.NewMalformed("isis: invalid extReach id %q: %v", j.ID, err)
		}
		sysBytes = append(sysBytes, b...)
	}
	if len(sysBytes) != 6 {
		return model.ISNeighbor{}, errs.NewMalformed("isis: extReach id %q does not resolve to a 6-byte system id", j.ID)
	}
	var sysID model.SystemID
	copy(sysID[:], sysBytes)

	pnBytes, err := hex.DecodeString(padEven(pseudonodeTok))
	if err != nil || len(pnBytes) == 0 {
		return model.ISNeighbor{}, errs.NewMalformed("isis: invalid extReach pseudonode %q", pseudonodeTok)
	}

	return model.ISNeighbor{
		NeighborSystemID: sysID,
		Pseudonode:       pnBytes[len(pnBytes)-1],
		Metric:           j.Metric,
	}, nil
}

func parseExtendedIPReachability(j jsonExtendedIPReachability) (model.IPReach, error) {
	prefix, err := netip.ParsePrefix(j.Prefix)
	if err != nil {
		return model.IPReach{}, errs.NewMalformed("isis: invalid extIpReach prefix %q: %v", j.Prefix, err)
	}
	return model.IPReach{Prefix: prefix, Metric: j.Metric, Down: j.Down}, nil
}
