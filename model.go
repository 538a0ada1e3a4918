package nodetree

// Model is a Node carrying a primary Mesh. The Mesh is attached as the Model's first Renderable, so it is drawn and
// contributes triangles like any other attachment.
type Model struct {
	*Node
	Mesh *Mesh
}

// NewModel creates a new free-standing Model with the name and Mesh given. mesh may be nil.
func NewModel(name string, mesh *Mesh) *Model {
	model := &Model{Node: NewNode(name)}
	model.self = model
	model.SetMesh(mesh)
	return model
}

// Type returns the NodeType for this object.
func (model *Model) Type() NodeType {
	return NodeTypeModel
}

// SetMesh replaces the Model's primary Mesh, detaching the previous one. Passing nil leaves the Model without a Mesh.
func (model *Model) SetMesh(mesh *Mesh) {
	if model.Mesh != nil {
		model.RemoveRenderable(model.Mesh.ID())
	}
	model.Mesh = mesh
	if mesh != nil {
		model.renderables = append([]Renderable{mesh}, model.renderables...)
	}
}
