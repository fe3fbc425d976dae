package document

// NodeKind identifies the structural variant of a ValueNode.
type NodeKind string

const (
	NodeConstant    NodeKind = "constant"
	NodeAnimated    NodeKind = "animated"
	NodeStaticList  NodeKind = "static_list"
	NodeDynamicList NodeKind = "dynamic_list"
	NodeLinkable    NodeKind = "linkable"
)

// NodeInfo carries the identity shared by every value node.
type NodeInfo struct {
	// GUID is the scoped reference id the node is registered under.
	GUID string
	// ID is the local definition id, empty for anonymous nodes.
	ID string
}

func (n *NodeInfo) Info() *NodeInfo { return n }

// ValueNode is a structural wrapper around one or more values. The set of
// implementations is closed: Constant, Animated, StaticList, DynamicList
// and Linkable.
type ValueNode interface {
	NodeKind() NodeKind
	Info() *NodeInfo
}

// Constant wraps exactly one literal value.
type Constant struct {
	NodeInfo
	Value Value
}

func (*Constant) NodeKind() NodeKind { return NodeConstant }

// Waypoint is one time-stamped sample of an animated node.
type Waypoint struct {
	Time            float64
	Value           Value
	Before          Interpolation
	After           Interpolation
	Tension         float64
	Continuity      float64
	Bias            float64
	TemporalTension float64
}

// Animated holds waypoints in document order.
type Animated struct {
	NodeInfo
	Type      string
	Waypoints []Waypoint
}

func (*Animated) NodeKind() NodeKind { return NodeAnimated }

type StaticList struct {
	NodeInfo
	Type  string
	Items []ValueNode
}

func (*StaticList) NodeKind() NodeKind { return NodeStaticList }

// ListEntry is one item of a dynamic list with its activepoint times.
type ListEntry struct {
	Node ValueNode
	On   []float64
	Off  []float64
}

// DynamicList covers dynamic_list, bline, wplist, dilist and
// weighted_average; Tag records which one was written.
type DynamicList struct {
	NodeInfo
	Tag     string
	Type    string
	Loop    bool
	Entries []ListEntry
}

func (*DynamicList) NodeKind() NodeKind { return NodeDynamicList }

// Link is a named input of a linkable node.
type Link struct {
	Name string
	Node ValueNode
}

// Linkable is a node whose semantics are defined by its Name.
type Linkable struct {
	NodeInfo
	Name  string
	Type  string
	Links []Link
}

func (*Linkable) NodeKind() NodeKind { return NodeLinkable }

// Link returns the input registered under name.
func (l *Linkable) Link(name string) (ValueNode, bool) {
	for _, link := range l.Links {
		if link.Name == name {
			return link.Node, true
		}
	}
	return nil, false
}
