package core

import (
	"bytes"
	"strconv"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

// ConflictKind discriminates the two conflict shapes spec.md §3
// defines. It is a closed enum: any new conflict shape needs a new
// constant here plus a case in DetectConflicts, not an open string.
type ConflictKind int

const (
	// VertexConflict: two agents occupy the same cell at the same time.
	VertexConflict ConflictKind = iota
	// EdgeConflict: two agents swap cells across one time step.
	EdgeConflict
)

func (k ConflictKind) String() string {
	switch k {
	case VertexConflict:
		return "vertex"
	case EdgeConflict:
		return "edge"
	default:
		return "unknown"
	}
}

// Conflict is one detected collision between exactly two agents.
// For a VertexConflict, Cell/T are the shared state and EdgeAFrom/EdgeATo
// are unused. For an EdgeConflict, EdgeAFrom/EdgeATo hold the two cells
// being swapped (from
// the perspective of AgentA, at the start of the swap) and T is the
// time of the later of the two occupied states.
type Conflict struct {
	Kind      ConflictKind
	AgentA    AgentID
	AgentB    AgentID
	T         int
	Cell      grid.Cell
	EdgeAFrom grid.Cell
	EdgeATo   grid.Cell
}

// MarshalJSON emits the tagged wire shape spec.md §6 fixes: a "type"
// discriminant plus the fields relevant to that type.
func (c Conflict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"type":"`)
	buf.WriteString(c.Kind.String())
	buf.WriteString(`",`)

	buf.WriteString(`"agent_a":`)
	writeInt(&buf, int(c.AgentA))
	buf.WriteString(`,"agent_b":`)
	writeInt(&buf, int(c.AgentB))
	buf.WriteString(`,"time":`)
	writeInt(&buf, c.T)

	switch c.Kind {
	case VertexConflict:
		buf.WriteString(`,"cell":`)
		pair, err := marshalPair(c.Cell.Row, c.Cell.Col)
		if err != nil {
			return nil, err
		}
		buf.Write(pair)
	case EdgeConflict:
		buf.WriteString(`,"edge":[`)
		from, err := marshalPair(c.EdgeAFrom.Row, c.EdgeAFrom.Col)
		if err != nil {
			return nil, err
		}
		to, err := marshalPair(c.EdgeATo.Row, c.EdgeATo.Col)
		if err != nil {
			return nil, err
		}
		buf.Write(from)
		buf.WriteByte(',')
		buf.Write(to)
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeInt(buf *bytes.Buffer, v int) {
	buf.WriteString(strconv.Itoa(v))
}
