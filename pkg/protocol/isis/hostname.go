// Package isis decodes FRR's vtysh JSON output for IS-IS (LSPDB,
// hostname table, interface stats) and lifts it into the
// protocol-agnostic graph model.
package isis

import (
	"strings"

	"github.com/netgraph-io/netgraph/pkg/model"
)

// HostnameEntry is one row of `show isis hostname`: a dynamic hostname
// bound to a System ID, with a flag for the row marked `*` (the local
// router).
type HostnameEntry struct {
	Hostname string
	SystemID model.SystemID
	IsLocal  bool
}

// parseHostnameLine tokenizes one line of `show isis hostname` output.
// Tolerant of an optional leading level number and/or leading `*`: the
// last token is the hostname, the token before it is the System ID.
//
// Example lines:
//
//	1      0000.0000.0004 a47b41368a00
//	     * 0000.0000.0001 e3f5f5af05f6
func parseHostnameLine(line string) (HostnameEntry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return HostnameEntry{}, false
	}
	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 {
		return HostnameEntry{}, false
	}

	isLocal := false
	for _, tok := range tokens {
		if tok == "*" {
			isLocal = true
			break
		}
	}

	hostnameTok := tokens[len(tokens)-1]
	sysIDTok := tokens[len(tokens)-2]

	sysID, ok := parseSystemID(sysIDTok)
	if !ok {
		return HostnameEntry{}, false
	}

	return HostnameEntry{Hostname: hostnameTok, SystemID: sysID, IsLocal: isLocal}, true
}

func parseSystemID(s string) (model.SystemID, bool) {
	parts := strings.Split(s, ".")
	hex := strings.Join(parts, "")
	if len(hex) != 12 {
		return model.SystemID{}, false
	}
	var out model.SystemID
	for i := 0; i < 6; i++ {
		b, ok := hexByte(hex[i*2 : i*2+2])
		if !ok {
			return model.SystemID{}, false
		}
		out[i] = b
	}
	return out, true
}

func hexByte(s string) (byte, bool) {
	var v byte
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= byte(c - '0')
		case c >= 'a' && c <= 'f':
			v |= byte(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= byte(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}

// HostnameMap is the dual-index lookup table from `show isis
// hostname`: by hostname (fast path when an LSP carries one) and by
// System ID (fast path when the LSP only carries the raw id).
type HostnameMap struct {
	byHostname map[string]HostnameEntry
	bySystemID map[model.SystemID]HostnameEntry
}

// BuildHostnameMap parses every line of `show isis hostname` output.
// Unparseable lines (headers, blank lines) are ignored. If multiple
// lines share a hostname or System ID, the last one wins.
func BuildHostnameMap(output string) *HostnameMap {
	m := &HostnameMap{
		byHostname: map[string]HostnameEntry{},
		bySystemID: map[model.SystemID]HostnameEntry{},
	}
	for _, line := range strings.Split(output, "\n") {
		entry, ok := parseHostnameLine(line)
		if !ok {
			continue
		}
		m.byHostname[entry.Hostname] = entry
		m.bySystemID[entry.SystemID] = entry
	}
	return m
}

// Len reports the number of distinct hostnames known.
func (m *HostnameMap) Len() int { return len(m.byHostname) }

// SystemIDByHostname looks up a System ID by its dynamic hostname.
func (m *HostnameMap) SystemIDByHostname(hostname string) (model.SystemID, bool) {
	e, ok := m.byHostname[hostname]
	return e.SystemID, ok
}

// EntryBySystemID looks up the full hostname entry by System ID.
func (m *HostnameMap) EntryBySystemID(id model.SystemID) (HostnameEntry, bool) {
	e, ok := m.bySystemID[id]
	return e, ok
}

// LocalEntry returns the entry marked '*' in `show isis hostname`
// output — the polled router's own identity, used by the SSH source
// facade to answer fetch_source_id.
func (m *HostnameMap) LocalEntry() (HostnameEntry, bool) {
	for _, e := range m.bySystemID {
		if e.IsLocal {
			return e, true
		}
	}
	return HostnameEntry{}, false
}
