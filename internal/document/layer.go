package document

// Param is one named layer parameter.
type Param struct {
	Name string
	Node ValueNode
}

// Layer is the generic form of a layer element. Type-specific parameter
// schemas are not interpreted here.
type Layer struct {
	Type                 string
	Desc                 string
	Version              string
	Active               bool
	ExcludeFromRendering bool
	Params               []Param
}

// Param returns the parameter registered under name.
func (l *Layer) Param(name string) (ValueNode, bool) {
	for _, p := range l.Params {
		if p.Name == name {
			return p.Node, true
		}
	}
	return nil, false
}
