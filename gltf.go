package nodetree

import (
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// GLTFLoadOptions alters how a glTF file is turned into a Library.
type GLTFLoadOptions struct {
	MeshColor   Color // The Color given to every loaded Mesh.
	LoadExtras  bool  // If node extras (a JSON object) should be copied into each Node's Properties.
	UpdateTrees bool  // If each loaded Scene should get a forced Update, so world transforms are valid right away.
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		MeshColor:   White,
		LoadExtras:  true,
		UpdateTrees: true,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the path given. External buffers are resolved relative to the file.
// Passing nil for options loads the file using DefaultGLTFLoadOptions.
func LoadGLTFFile(path string, options *GLTFLoadOptions) (*Library, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	lib, err := loadGLTFDocument(doc, options)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return lib, nil
}

// LoadGLTFData loads glTF data (JSON or binary) from the reader given. Buffers must be embedded, either in a .glb
// binary chunk or as data URIs. Passing nil for options loads the data using DefaultGLTFLoadOptions.
func LoadGLTFData(r io.Reader, options *GLTFLoadOptions) (*Library, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "decoding glTF data")
	}
	return loadGLTFDocument(doc, options)
}

func loadGLTFDocument(doc *gltf.Document, options *GLTFLoadOptions) (*Library, error) {

	if options == nil {
		options = DefaultGLTFLoadOptions()
	}

	library := NewLibrary()

	meshes := make([]*Mesh, len(doc.Meshes))

	for i, gltfMesh := range doc.Meshes {
		mesh, err := loadGLTFMesh(doc, i, gltfMesh)
		if err != nil {
			return nil, err
		}
		mesh.Color = options.MeshColor
		meshes[i] = mesh
		library.Meshes[mesh.Name] = mesh
	}

	objects := make([]INode, len(doc.Nodes))

	for i, gltfNode := range doc.Nodes {

		name := gltfNode.Name
		if name == "" {
			name = "Node" + strconv.Itoa(i)
		}

		var obj INode

		if gltfNode.Mesh != nil {
			meshIndex := int(*gltfNode.Mesh)
			if meshIndex < 0 || meshIndex >= len(meshes) {
				return nil, errors.Errorf("node %q references mesh %d, but there are only %d meshes", name, meshIndex, len(meshes))
			}
			// Each Model owns its Mesh, so instances of the same glTF mesh each get a copy.
			obj = NewModel(name, meshes[meshIndex].Clone())
		} else {
			obj = NewNode(name)
		}

		setGLTFLocalTransform(obj.Base(), gltfNode)

		if options.LoadExtras {
			if extras, isMap := gltfNode.Extras.(map[string]any); isMap {
				for key, value := range extras {
					obj.Base().Properties().Get(key).Set(value)
				}
			}
		}

		objects[i] = obj

	}

	for i, gltfNode := range doc.Nodes {
		parent := objects[i].Base()
		for _, c := range gltfNode.Children {
			childIndex := int(c)
			if childIndex < 0 || childIndex >= len(objects) {
				return nil, errors.Errorf("node %q has child %d, but there are only %d nodes", parent.Name(), childIndex, len(objects))
			}
			child := objects[childIndex].Base()
			if child.Parent() != nil {
				logger.Warn("glTF node has more than one parent; keeping the first",
					zap.String("node", child.Name()), zap.String("parent", parent.Name()))
				continue
			}
			if err := child.Reparent(parent); err != nil {
				return nil, errors.Wrapf(err, "parenting %q to %q", child.Name(), parent.Name())
			}
		}
	}

	for i, gltfScene := range doc.Scenes {

		name := gltfScene.Name
		if name == "" {
			name = "Scene" + strconv.Itoa(i)
		}

		scene := library.AddScene(name)

		for _, n := range gltfScene.Nodes {
			nodeIndex := int(n)
			if nodeIndex < 0 || nodeIndex >= len(objects) {
				return nil, errors.Errorf("scene %q references node %d, but there are only %d nodes", name, nodeIndex, len(objects))
			}
			obj := objects[nodeIndex]
			if obj.Base().owner != nil {
				logger.Warn("glTF node is already placed in the tree; skipping it as a scene root",
					zap.String("node", obj.Name()), zap.String("scene", name))
				continue
			}
			if err := scene.Add(obj); err != nil {
				return nil, errors.Wrapf(err, "adding %q to scene %q", obj.Name(), name)
			}
		}

	}

	// A file without scenes still has nodes worth showing, so the parentless ones go into one scene.
	if len(doc.Scenes) == 0 && len(objects) > 0 {
		scene := library.AddScene("Scene")
		for _, obj := range objects {
			if obj.Base().owner == nil {
				if err := scene.Add(obj); err != nil {
					return nil, err
				}
			}
		}
	}

	if doc.Scene != nil {
		if sceneIndex := int(*doc.Scene); sceneIndex >= 0 && sceneIndex < len(library.Scenes) {
			library.ExportedScene = library.Scenes[sceneIndex]
		}
	} else if len(library.Scenes) > 0 {
		library.ExportedScene = library.Scenes[0]
	}

	if options.UpdateTrees {
		for _, scene := range library.Scenes {
			scene.Update(true)
		}
	}

	return library, nil

}

func loadGLTFMesh(doc *gltf.Document, index int, gltfMesh *gltf.Mesh) (*Mesh, error) {

	name := gltfMesh.Name
	if name == "" {
		name = "Mesh" + strconv.Itoa(index)
	}

	mesh := NewMesh(name)

	for p, prim := range gltfMesh.Primitives {

		if prim.Mode != gltf.PrimitiveTriangles {
			logger.Warn("skipping non-triangle glTF primitive", zap.String("mesh", name), zap.Int("primitive", p))
			continue
		}

		posAccessor, exists := prim.Attributes[gltf.POSITION]
		if !exists || int(posAccessor) >= len(doc.Accessors) {
			logger.Warn("skipping glTF primitive without positions", zap.String("mesh", name), zap.Int("primitive", p))
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "reading positions of mesh %q", name)
		}

		var indices []uint32

		if prim.Indices != nil {
			if int(*prim.Indices) >= len(doc.Accessors) {
				return nil, errors.Errorf("mesh %q primitive %d references missing index accessor", name, p)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "reading indices of mesh %q", name)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		if len(indices)%3 != 0 {
			return nil, errors.Errorf("mesh %q primitive %d has %d indices, which is not divisible by 3", name, p, len(indices))
		}

		vertices := make([]mgl32.Vec3, 0, len(indices))

		for _, index := range indices {
			if int(index) >= len(positions) {
				return nil, errors.Errorf("mesh %q primitive %d has index %d, but only %d vertices", name, p, index, len(positions))
			}
			pos := positions[index]
			vertices = append(vertices, mgl32.Vec3{pos[0], pos[1], pos[2]})
		}

		mesh.AddTriangles(vertices...)

	}

	return mesh, nil

}

func setGLTFLocalTransform(node *Node, gltfNode *gltf.Node) {

	matrix := mgl32.Mat4{}
	for i, v := range gltfNode.Matrix {
		matrix[i] = float32(v)
	}

	if matrix != (mgl32.Mat4{}) && !matrix.ApproxEqual(mgl32.Ident4()) {

		// glTF matrices are column-major, like mgl32's.
		node.SetLocalPositionVec(matrix.Col(3).Vec3())

		scale := mgl32.Vec3{matrix.Col(0).Vec3().Len(), matrix.Col(1).Vec3().Len(), matrix.Col(2).Vec3().Len()}
		node.SetLocalScaleVec(scale)

		rotation := mgl32.Ident4()
		for c := 0; c < 3; c++ {
			if scale[c] != 0 {
				rotation.SetCol(c, matrix.Col(c).Mul(1/scale[c]).Vec3().Vec4(0))
			}
		}
		node.SetLocalRotationQuat(mgl32.Mat4ToQuat(rotation))

		return

	}

	t := gltfNode.Translation
	node.SetLocalPosition(float32(t[0]), float32(t[1]), float32(t[2]))

	r := gltfNode.Rotation
	rotation := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}
	node.SetLocalRotationQuat(rotation)

	s := gltfNode.Scale
	scale := mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	node.SetLocalScaleVec(scale)

}
