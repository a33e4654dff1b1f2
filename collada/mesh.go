package collada

import (
	"fmt"
	"sort"

	"github.com/binzume/daeconv/geom"
	"github.com/binzume/daeconv/meshindex"
)

type MeshData struct {
	Name       string
	Primitives []*PrimitiveData
}

// PrimitiveData holds deduplicated vertex arrays and a triangle list.
type PrimitiveData struct {
	Material    int // -1: none
	Symbol      string
	CornerCount int
	Positions   [][3]float32
	Normals     [][3]float32
	TexCoords   [][][2]float32 // by set
	Colors      [][4]float32
	Indices     []uint32
}

func (p *PrimitiveData) VertexCount() int {
	return len(p.Positions)
}

// primitiveInput is an input with VERTEX expanded through <vertices>.
type primitiveInput struct {
	Input
	source *Source
}

// polygonSource is the common view of triangles, polylist and polygons.
type polygonSource struct {
	material string
	inputs   []Input
	indices  []uint32
	vcount   []uint32
}

func newTrianglesSource(p *Primitive) (*polygonSource, error) {
	indices, err := parseUints(p.P)
	if err != nil {
		return nil, err
	}
	if p.Count < 0 {
		return nil, fmt.Errorf("%w: triangles count %d", meshindex.ErrInvalidArgument, p.Count)
	}
	vcount := make([]uint32, p.Count)
	for i := range vcount {
		vcount[i] = 3
	}
	return &polygonSource{material: p.Material, inputs: p.Inputs, indices: indices, vcount: vcount}, nil
}

func newPolylistSource(p *Primitive) (*polygonSource, error) {
	indices, err := parseUints(p.P)
	if err != nil {
		return nil, err
	}
	vcount, err := parseUints(p.VCount)
	if err != nil {
		return nil, err
	}
	if len(vcount) != p.Count {
		return nil, fmt.Errorf("%w: polylist count %d, vcount has %d", meshindex.ErrCountMismatch, p.Count, len(vcount))
	}
	return &polygonSource{material: p.Material, inputs: p.Inputs, indices: indices, vcount: vcount}, nil
}

func newPolygonsSource(p *Polygons) (*polygonSource, error) {
	stride := inputStride(p.Inputs)
	src := &polygonSource{material: p.Material, inputs: p.Inputs}
	for _, s := range p.P {
		indices, err := parseUints(s)
		if err != nil {
			return nil, err
		}
		if stride == 0 || len(indices)%stride != 0 {
			return nil, fmt.Errorf("%w: polygon with %d indices, stride %d", meshindex.ErrCountMismatch, len(indices), stride)
		}
		src.indices = append(src.indices, indices...)
		src.vcount = append(src.vcount, uint32(len(indices)/stride))
	}
	if len(src.vcount) != p.Count {
		return nil, fmt.Errorf("%w: polygons count %d, found %d", meshindex.ErrCountMismatch, p.Count, len(src.vcount))
	}
	return src, nil
}

func inputStride(inputs []Input) int {
	stride := 0
	for _, in := range inputs {
		if in.Offset+1 > stride {
			stride = in.Offset + 1
		}
	}
	return stride
}

func (m *Mesh) expandInputs(inputs []Input) ([]primitiveInput, error) {
	var result []primitiveInput
	for _, in := range inputs {
		if in.Semantic == "VERTEX" {
			if m.Vertices == nil || m.Vertices.ID != refID(in.Source) {
				return nil, fmt.Errorf("%w: unknown vertices %q", meshindex.ErrInvalidArgument, in.Source)
			}
			for _, vin := range m.Vertices.Inputs {
				src := m.Source(vin.Source)
				if src == nil {
					return nil, fmt.Errorf("%w: unknown source %q", meshindex.ErrInvalidArgument, vin.Source)
				}
				result = append(result, primitiveInput{
					Input:  Input{Semantic: vin.Semantic, Source: vin.Source, Offset: in.Offset, Set: in.Set},
					source: src,
				})
			}
			continue
		}
		src := m.Source(in.Source)
		if src == nil {
			return nil, fmt.Errorf("%w: unknown source %q", meshindex.ErrInvalidArgument, in.Source)
		}
		result = append(result, primitiveInput{Input: in, source: src})
	}
	return result, nil
}

var semanticWidth = map[string]int{
	"POSITION": 3,
	"NORMAL":   3,
	"TEXCOORD": 2,
	"COLOR":    3,
}

// buildPrimitive deduplicates the corners of one primitive and builds
// every supported attribute from the same combination table.
func (m *Mesh) buildPrimitive(ps *polygonSource) (*PrimitiveData, error) {
	stride := inputStride(ps.inputs)
	corners := 0
	for _, n := range ps.vcount {
		if n < 3 {
			return nil, fmt.Errorf("%w: polygon with %d vertices", meshindex.ErrInvalidArgument, n)
		}
		corners += int(n)
	}
	if len(ps.indices) != corners*stride {
		return nil, fmt.Errorf("%w: %d indices, expected %d corners * stride %d", meshindex.ErrCountMismatch, len(ps.indices), corners, stride)
	}

	inputs, err := m.expandInputs(ps.inputs)
	if err != nil {
		return nil, err
	}
	table, err := meshindex.Combine(ps.indices, stride)
	if err != nil {
		return nil, err
	}

	var attrs []meshindex.Attribute[[]float32]
	var semantics []primitiveInput
	for _, in := range inputs {
		width, ok := semanticWidth[in.Semantic]
		if !ok {
			continue
		}
		values, err := in.source.Vectors()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Semantic, err)
		}
		if len(values) > 0 && len(values[0]) < width {
			return nil, fmt.Errorf("%s: %w: source %q has %d components", in.Semantic, meshindex.ErrInvalidArgument, in.source.ID, len(values[0]))
		}
		attrs = append(attrs, meshindex.Attribute[[]float32]{Name: in.Semantic, Offset: in.Offset, Source: values})
		semantics = append(semantics, in)
	}

	arrays, err := meshindex.BuildAttributes(attrs, ps.indices, stride, table)
	if err != nil {
		return nil, err
	}

	prim := &PrimitiveData{Material: -1, Symbol: ps.material, CornerCount: corners}
	var texcoordSets []int
	texcoords := map[int][][2]float32{}
	for i, in := range semantics {
		switch in.Semantic {
		case "POSITION":
			if prim.Positions == nil {
				prim.Positions = toVec3(arrays[i])
			}
		case "NORMAL":
			if prim.Normals == nil {
				prim.Normals = toVec3(arrays[i])
			}
		case "TEXCOORD":
			if _, exists := texcoords[in.Set]; !exists {
				texcoordSets = append(texcoordSets, in.Set)
				texcoords[in.Set] = toVec2(arrays[i])
			}
		case "COLOR":
			if prim.Colors == nil {
				prim.Colors = toVec4(arrays[i])
			}
		}
	}
	if prim.Positions == nil && table.Len() > 0 {
		return nil, fmt.Errorf("%w: no POSITION input", meshindex.ErrInvalidArgument)
	}
	sort.Ints(texcoordSets)
	for _, set := range texcoordSets {
		prim.TexCoords = append(prim.TexCoords, texcoords[set])
	}
	prim.Indices = triangulate(table, ps.vcount, prim.Positions)
	return prim, nil
}

// triangulate builds the triangle list in vertex ids, replaying the corner
// stream through the table.
func triangulate(table *meshindex.Table, vcount []uint32, positions [][3]float32) []uint32 {
	indices := make([]uint32, 0, table.Corners())
	corner := 0
	for _, n := range vcount {
		ids := make([]int, n)
		for i := range ids {
			ids[i] = table.ID(corner + i)
		}
		corner += int(n)
		if n == 3 {
			indices = append(indices, uint32(ids[0]), uint32(ids[1]), uint32(ids[2]))
			continue
		}
		poly := make([]*geom.Vector3, n)
		for i, id := range ids {
			poly[i] = geom.NewVector3FromArray(positions[id])
		}
		for _, tri := range geom.Triangulate(poly) {
			indices = append(indices, uint32(ids[tri[0]]), uint32(ids[tri[1]]), uint32(ids[tri[2]]))
		}
	}
	return indices
}

func toVec2(values [][]float32) [][2]float32 {
	dst := make([][2]float32, len(values))
	for i, v := range values {
		copy(dst[i][:], v)
	}
	return dst
}

func toVec3(values [][]float32) [][3]float32 {
	dst := make([][3]float32, len(values))
	for i, v := range values {
		copy(dst[i][:], v)
	}
	return dst
}

func toVec4(values [][]float32) [][4]float32 {
	dst := make([][4]float32, len(values))
	for i, v := range values {
		dst[i][3] = 1
		copy(dst[i][:], v)
	}
	return dst
}
