package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// importSkeletal converts a parsed document into a skeletal model: node
// hierarchy, bone registry from the first skin, and skinned meshes with
// joint indices remapped to registry IDs.
func importSkeletal(doc *gltf.Document, path string) (*model.SkeletalModel, error) {
	m := model.NewSkeletalModel(modelName(path))

	m.Hierarchy = buildHierarchy(doc)
	if m.Hierarchy == nil {
		return nil, fmt.Errorf("%s: document has no node hierarchy", path)
	}

	jointIDs, err := registerSkinBones(doc, m.BoneTable())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for mi, mesh := range doc.Meshes {
		meshes, err := extractMeshes(doc, mesh, mi, jointIDs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Meshes = append(m.Meshes, meshes...)
	}
	if len(m.Meshes) == 0 {
		return nil, fmt.Errorf("%s: document has no meshes", path)
	}
	return m, nil
}

// importStatic converts a parsed document into a static model with its
// local-space bounding box.
func importStatic(doc *gltf.Document, path string) (*model.StaticModel, error) {
	m := &model.StaticModel{Name: modelName(path)}

	for mi, mesh := range doc.Meshes {
		meshes, err := extractMeshes(doc, mesh, mi, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Meshes = append(m.Meshes, meshes...)
	}
	if len(m.Meshes) == 0 {
		return nil, fmt.Errorf("%s: document has no meshes", path)
	}

	min := mgl32.Vec3{mgl32.MaxValue, mgl32.MaxValue, mgl32.MaxValue}
	max := mgl32.Vec3{-mgl32.MaxValue, -mgl32.MaxValue, -mgl32.MaxValue}
	for _, mesh := range m.Meshes {
		for _, v := range mesh.Vertices {
			for i := 0; i < 3; i++ {
				if v.Position[i] < min[i] {
					min[i] = v.Position[i]
				}
				if v.Position[i] > max[i] {
					max[i] = v.Position[i]
				}
			}
		}
	}
	m.Bounds = common.NewAABB(min, max)
	return m, nil
}

// registerSkinBones registers every joint of the document's first skin in
// the bone table, reading inverse bind matrices when present. The returned
// slice maps skin joint index to registry ID for mesh skinning.
func registerSkinBones(doc *gltf.Document, table *model.BoneInfoTable) ([]int32, error) {
	if len(doc.Skins) == 0 {
		return nil, nil
	}
	skin := doc.Skins[0]

	var ibms [][4][4]float32
	if skin.InverseBindMatrices != nil {
		data, err := modeler.ReadAccessor(doc, doc.Accessors[*skin.InverseBindMatrices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading inverse bind matrices: %w", err)
		}
		matrices, ok := data.([][4][4]float32)
		if !ok {
			return nil, fmt.Errorf("unexpected inverse bind accessor type %T", data)
		}
		ibms = matrices
	}

	jointIDs := make([]int32, len(skin.Joints))
	for j, nodeIdx := range skin.Joints {
		offset := mgl32.Ident4()
		if j < len(ibms) {
			offset = mat4FromColumns(ibms[j])
		}
		info := table.Register(nodeName(doc, nodeIdx), offset)
		jointIDs[j] = int32(info.ID)
	}
	return jointIDs, nil
}

// extractMeshes converts one glTF mesh into engine meshes, one per
// primitive. jointIDs non-nil enables skinning attribute reads.
func extractMeshes(doc *gltf.Document, mesh *gltf.Mesh, meshIndex int, jointIDs []int32) ([]model.Mesh, error) {
	name := mesh.Name
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIndex)
	}

	var out []model.Mesh
	for pi, p := range mesh.Primitives {
		posIdx, ok := p.Attributes["POSITION"]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], [][3]float32{})
		if err != nil {
			return nil, fmt.Errorf("mesh %q positions: %w", name, err)
		}

		var normals [][3]float32
		if a, ok := p.Attributes["NORMAL"]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[a], [][3]float32{})
			if err != nil {
				return nil, fmt.Errorf("mesh %q normals: %w", name, err)
			}
		}
		var texCoords [][2]float32
		if a, ok := p.Attributes["TEXCOORD_0"]; ok {
			texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[a], [][2]float32{})
			if err != nil {
				return nil, fmt.Errorf("mesh %q texcoords: %w", name, err)
			}
		}

		var joints [][4]uint16
		var weights [][4]float32
		if jointIDs != nil {
			if a, ok := p.Attributes["JOINTS_0"]; ok {
				joints, err = modeler.ReadJoints(doc, doc.Accessors[a], [][4]uint16{})
				if err != nil {
					return nil, fmt.Errorf("mesh %q joints: %w", name, err)
				}
			}
			if a, ok := p.Attributes["WEIGHTS_0"]; ok {
				weights, err = modeler.ReadWeights(doc, doc.Accessors[a], [][4]float32{})
				if err != nil {
					return nil, fmt.Errorf("mesh %q weights: %w", name, err)
				}
			}
		}

		vertices := make([]model.Vertex, len(positions))
		for i := range positions {
			v := &vertices[i]
			v.Position = mgl32.Vec3{positions[i][0], positions[i][1], positions[i][2]}
			if i < len(normals) {
				v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
			}
			if i < len(texCoords) {
				v.TexCoords = mgl32.Vec2{texCoords[i][0], texCoords[i][1]}
			}
			v.ClearBoneInfluences()
			if i < len(joints) && i < len(weights) {
				for k := 0; k < 4; k++ {
					if weights[i][k] <= 0 {
						continue
					}
					j := int(joints[i][k])
					if j < len(jointIDs) {
						v.AddBoneInfluence(jointIDs[j], weights[i][k])
					}
				}
			}
		}

		var indices []uint32
		if p.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], []uint32{})
			if err != nil {
				return nil, fmt.Errorf("mesh %q indices: %w", name, err)
			}
		} else {
			indices = make([]uint32, len(vertices))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		meshName := name
		if len(mesh.Primitives) > 1 {
			meshName = fmt.Sprintf("%s_%d", name, pi)
		}
		out = append(out, model.Mesh{Name: meshName, Vertices: vertices, Indices: indices})
	}
	return out, nil
}

// buildHierarchy converts the document's default scene into a node tree.
// Multiple scene roots are gathered under a synthetic identity root so the
// animation walk always starts from a single node.
func buildHierarchy(doc *gltf.Document) *model.HierarchyNode {
	roots := sceneRoots(doc)
	if len(roots) == 0 {
		return nil
	}
	if len(roots) == 1 {
		return buildNode(doc, roots[0])
	}

	out := &model.HierarchyNode{
		Name:           "RootNode",
		Transformation: mgl32.Ident4(),
		Children:       make([]*model.HierarchyNode, len(roots)),
	}
	for i, idx := range roots {
		out.Children[i] = buildNode(doc, idx)
	}
	return out
}

func sceneRoots(doc *gltf.Document) []uint32 {
	if doc.Scene != nil {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}

	// No scene: treat every node that is nobody's child as a root.
	child := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !child[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

func buildNode(doc *gltf.Document, idx uint32) *model.HierarchyNode {
	n := doc.Nodes[idx]
	out := &model.HierarchyNode{
		Name:           nodeName(doc, idx),
		Transformation: nodeLocalTransform(n),
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, buildNode(doc, c))
	}
	return out
}

// nodeName returns a stable name for a node, synthesizing one from the
// index for unnamed nodes so channel targets and hierarchy nodes agree.
func nodeName(doc *gltf.Document, idx uint32) string {
	if name := doc.Nodes[idx].Name; name != "" {
		return name
	}
	return fmt.Sprintf("node_%d", idx)
}

// nodeLocalTransform builds a node's local transform. Absent TRS fields
// decode to zero values, so the OrDefault accessors stand in the glTF
// defaults (identity matrix and rotation, unit scale).
func nodeLocalTransform(n *gltf.Node) mgl32.Mat4 {
	if matrix := n.MatrixOrDefault(); matrix != gltf.DefaultMatrix {
		return mgl32.Mat4(matrix)
	}
	translation := n.TranslationOrDefault()
	scale := n.ScaleOrDefault()
	m := mgl32.Translate3D(translation[0], translation[1], translation[2])
	m = m.Mul4(quatFromGltf(n.RotationOrDefault()).Mat4())
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// quatFromGltf converts a glTF (x, y, z, w) quaternion.
func quatFromGltf(r [4]float32) mgl32.Quat {
	return mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
}

// mat4FromColumns flattens an accessor matrix, stored column-major, into a
// column-major mgl32.Mat4.
func mat4FromColumns(m [4][4]float32) mgl32.Mat4 {
	var out mgl32.Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[c][r]
		}
	}
	return out
}

func modelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
