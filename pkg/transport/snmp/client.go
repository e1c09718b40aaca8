// Package snmp wraps gosnmp behind the query-builder shape used by the
// OSPF acquisition path: construct a Client bound to a single device,
// then chain Get/GetNext/GetBulk + Oid(s) + Execute, mirroring the
// session the OSPF poller holds open for the lifetime of a source.
package snmp

import (
	"fmt"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"
)

// Client is an SNMP session for a single network device. The
// underlying *gosnmp.GoSNMP connection is lazily established on first
// query and guarded by mu so concurrent pollers sharing a Client don't
// race on the wire handle.
type Client struct {
	address   string
	port      uint16
	community  string
	version    gosnmp.SnmpVersion
	v3Security *gosnmp.UsmSecurityParameters
	timeout    time.Duration
	retries    int

	mu   sync.Mutex
	conn *gosnmp.GoSNMP
}

// NewClient builds a Client for address:port using SNMPv2c with the
// given community string. Connect is deferred to the first query.
func NewClient(address string, port uint16, community string) *Client {
	return &Client{
		address:   address,
		port:      port,
		community: community,
		version:   gosnmp.Version2c,
		timeout:   5 * time.Second,
		retries:   1,
	}
}

// WithVersion1 downgrades the session to SNMPv1.
func (c *Client) WithVersion1() *Client {
	c.version = gosnmp.Version1
	return c
}

// WithV3Security upgrades the session to SNMPv3 with USM
// authentication. Selecting v3 without security parameters is rejected
// when the session is established.
func (c *Client) WithV3Security(sec *gosnmp.UsmSecurityParameters) *Client {
	c.version = gosnmp.Version3
	c.v3Security = sec
	return c
}

// WithTimeout overrides the per-request timeout (default 5s).
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// WithRetries overrides the retry count (default 1).
func (c *Client) WithRetries(n int) *Client {
	c.retries = n
	return c
}

func (c *Client) session() (*gosnmp.GoSNMP, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	conn := &gosnmp.GoSNMP{
		Target:    c.address,
		Port:      c.port,
		Community: c.community,
		Version:   c.version,
		Timeout:   c.timeout,
		Retries:   c.retries,
	}
	if c.version == gosnmp.Version3 {
		if c.v3Security == nil {
			return nil, NewNoV3SecurityError()
		}
		conn.SecurityModel = gosnmp.UserSecurityModel
		conn.MsgFlags = gosnmp.AuthPriv
		conn.SecurityParameters = c.v3Security
	}
	if err := conn.Connect(); err != nil {
		return nil, NewConnectError(fmt.Sprintf("%s:%d", c.address, c.port), err)
	}
	c.conn = conn
	return conn, nil
}

// Close tears down the underlying connection, if one was opened.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Conn.Close()
	c.conn = nil
	return err
}

// Query starts building a new Get/GetNext/GetBulk request against this
// client's session.
func (c *Client) Query() *QueryBuilder {
	return &QueryBuilder{client: c}
}

type operation int

const (
	opNone operation = iota
	opGet
	opGetNext
	opGetBulk
	opWalk
)

// QueryBuilder accumulates a single SNMP request: exactly one
// operation plus one or more OIDs. GetBulk allows multiple OIDs;
// Get/GetNext enforce exactly one at Execute time, not at call time —
// matching the upstream poller's "invalid query only fails late"
// shape so a builder can be partially constructed and passed around.
type QueryBuilder struct {
	client *Client

	op             operation
	oids           []string
	nonRepeaters   uint8
	maxRepetitions uint32
}

func (q *QueryBuilder) Get() *QueryBuilder {
	q.op = opGet
	return q
}

func (q *QueryBuilder) GetNext() *QueryBuilder {
	q.op = opGetNext
	return q
}

func (q *QueryBuilder) GetBulk(nonRepeaters uint8, maxRepetitions uint32) *QueryBuilder {
	q.op = opGetBulk
	q.nonRepeaters = nonRepeaters
	q.maxRepetitions = maxRepetitions
	return q
}

// Walk performs a full bulk-walk of a single column OID's subtree,
// exhausting the table rather than returning one page — the shape used
// for ifTable/ipAddrTable single-column fetches (the LSDB's multi-column
// table is instead fetched with one GetBulk call per the original
// acquisition, which assumes it fits a single page).
func (q *QueryBuilder) Walk() *QueryBuilder {
	q.op = opWalk
	return q
}

func (q *QueryBuilder) Oid(oid string) *QueryBuilder {
	q.oids = append(q.oids, oid)
	return q
}

func (q *QueryBuilder) Oids(oids ...string) *QueryBuilder {
	q.oids = append(q.oids, oids...)
	return q
}

// Execute runs the accumulated request and returns one LinkStateValue
// per returned varbind, paired with its OID.
type Row struct {
	Oid   string
	Value LinkStateValue
}

func (q *QueryBuilder) Execute() ([]Row, error) {
	if q.op == opNone || len(q.oids) == 0 {
		return nil, NewInvalidQueryError("no operation or no oids set")
	}
	if (q.op == opGet || q.op == opGetNext || q.op == opWalk) && len(q.oids) != 1 {
		return nil, NewInvalidQueryError("get/get-next/walk accept exactly one oid")
	}

	conn, err := q.client.session()
	if err != nil {
		return nil, err
	}
	q.client.mu.Lock()
	defer q.client.mu.Unlock()

	if q.op == opWalk {
		pdus, err := conn.BulkWalkAll(q.oids[0])
		if err != nil {
			return nil, NewQueryError("walk", err)
		}
		rows := make([]Row, 0, len(pdus))
		for _, pdu := range pdus {
			rows = append(rows, Row{Oid: pdu.Name, Value: FromPDU(pdu)})
		}
		return rows, nil
	}

	var result *gosnmp.SnmpPacket
	switch q.op {
	case opGet:
		result, err = conn.Get(q.oids)
		if err != nil {
			return nil, NewQueryError("get", err)
		}
	case opGetNext:
		result, err = conn.GetNext(q.oids)
		if err != nil {
			return nil, NewQueryError("get-next", err)
		}
	case opGetBulk:
		result, err = conn.GetBulk(q.oids, q.nonRepeaters, q.maxRepetitions)
		if err != nil {
			return nil, NewQueryError("get-bulk", err)
		}
	}

	rows := make([]Row, 0, len(result.Variables))
	for _, pdu := range result.Variables {
		rows = append(rows, Row{Oid: pdu.Name, Value: FromPDU(pdu)})
	}
	return rows, nil
}
