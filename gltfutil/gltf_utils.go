package gltfutil

import (
	"path/filepath"
	"strings"

	"github.com/binzume/daeconv/geom"
	"github.com/qmuntal/gltf"
)

// Save writes .glb as binary. Other extensions are written as JSON with
// the buffers embedded as data URIs.
func Save(doc *gltf.Document, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".glb" {
		return gltf.SaveBinary(doc, path)
	}
	for _, b := range doc.Buffers {
		if b.URI == "" && len(b.Data) > 0 {
			b.EmbeddedResource()
		}
	}
	return gltf.Save(doc, path)
}

// Bounds returns the bounding box of all POSITION accessors, using the
// min/max values recorded on the accessors.
func Bounds(doc *gltf.Document) *geom.Box3 {
	var points [][3]float32
	for _, m := range doc.Meshes {
		for _, p := range m.Primitives {
			a, ok := p.Attributes["POSITION"]
			if !ok || int(a) >= len(doc.Accessors) {
				continue
			}
			acr := doc.Accessors[a]
			if len(acr.Min) < 3 || len(acr.Max) < 3 {
				continue
			}
			points = append(points,
				[3]float32{acr.Min[0], acr.Min[1], acr.Min[2]},
				[3]float32{acr.Max[0], acr.Max[1], acr.Max[2]})
		}
	}
	return geom.NewBox3FromPoints(points)
}

// Stats counts the vertices and triangles of all primitives.
func Stats(doc *gltf.Document) (vertices, triangles int) {
	for _, m := range doc.Meshes {
		for _, p := range m.Primitives {
			if a, ok := p.Attributes["POSITION"]; ok && int(a) < len(doc.Accessors) {
				vertices += int(doc.Accessors[a].Count)
			}
			if p.Indices != nil && int(*p.Indices) < len(doc.Accessors) {
				triangles += int(doc.Accessors[*p.Indices].Count) / 3
			}
		}
	}
	return
}
