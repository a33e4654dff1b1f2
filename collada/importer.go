package collada

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/blezek/tga"
	_ "github.com/oov/psd"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
)

// Importer gives indexed access to the meshes, materials and images of an
// opened document.
type Importer struct {
	Logger *zap.Logger

	doc    *Document
	open   OpenFunc
	closer io.Closer

	meshes   []*Geometry
	bindings map[string]string // material symbol -> material id
	images   map[int]image.Image
}

func NewImporter(logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{Logger: logger}
}

func (imp *Importer) Open(path string) error {
	imp.Close()
	doc, open, closer, err := load(path)
	if err != nil {
		return err
	}
	imp.closer = closer
	imp.OpenDocument(doc, open)
	imp.Logger.Debug("opened document", zap.String("path", path), zap.String("version", doc.Version),
		zap.Int("meshes", len(imp.meshes)), zap.Int("materials", len(doc.Materials)), zap.Int("images", len(doc.Images)))
	return nil
}

// OpenDocument uses an already parsed document. open resolves image
// references and may be nil.
func (imp *Importer) OpenDocument(doc *Document, open OpenFunc) {
	imp.doc = doc
	imp.open = open
	imp.meshes = nil
	imp.images = map[int]image.Image{}
	for _, g := range doc.Geometries {
		if g.Mesh != nil {
			imp.meshes = append(imp.meshes, g)
		}
	}
	imp.bindings = map[string]string{}
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			for _, ig := range n.InstanceGeometry {
				for _, im := range ig.Materials {
					if _, exists := imp.bindings[im.Symbol]; !exists {
						imp.bindings[im.Symbol] = refID(im.Target)
					}
				}
			}
			walk(n.Nodes)
		}
	}
	for _, s := range doc.Scenes {
		walk(s.Nodes)
	}
}

func (imp *Importer) Close() {
	if imp.closer != nil {
		imp.closer.Close()
	}
	imp.doc = nil
	imp.open = nil
	imp.closer = nil
	imp.meshes = nil
	imp.bindings = nil
	imp.images = nil
}

func (imp *Importer) Document() *Document {
	return imp.doc
}

func (imp *Importer) Mesh3DCount() int {
	return len(imp.meshes)
}

// Mesh3DForName returns -1 if no geometry has the id or name.
func (imp *Importer) Mesh3DForName(name string) int {
	for i, g := range imp.meshes {
		if g.ID == name {
			return i
		}
	}
	for i, g := range imp.meshes {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func (imp *Importer) Mesh3DName(id int) string {
	if id < 0 || id >= len(imp.meshes) {
		return ""
	}
	g := imp.meshes[id]
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

// Mesh3D builds the deduplicated vertex arrays of every primitive in the
// geometry. Either all primitives are built or an error is returned.
func (imp *Importer) Mesh3D(id int) (*MeshData, error) {
	if id < 0 || id >= len(imp.meshes) {
		return nil, fmt.Errorf("mesh %d: no such mesh", id)
	}
	g := imp.meshes[id]
	mesh := &MeshData{Name: imp.Mesh3DName(id)}

	var sources []*polygonSource
	for _, p := range g.Mesh.Triangles {
		s, err := newTrianglesSource(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: triangles: %w", mesh.Name, err)
		}
		sources = append(sources, s)
	}
	for _, p := range g.Mesh.Polylists {
		s, err := newPolylistSource(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: polylist: %w", mesh.Name, err)
		}
		sources = append(sources, s)
	}
	for _, p := range g.Mesh.Polygons {
		s, err := newPolygonsSource(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: polygons: %w", mesh.Name, err)
		}
		sources = append(sources, s)
	}

	for i, s := range sources {
		prim, err := g.Mesh.buildPrimitive(s)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: primitive %d: %w", mesh.Name, i, err)
		}
		prim.Material = imp.materialForSymbol(s.material)
		imp.Logger.Debug("built primitive", zap.String("mesh", mesh.Name), zap.Int("primitive", i),
			zap.Int("corners", prim.CornerCount), zap.Int("vertices", prim.VertexCount()))
		mesh.Primitives = append(mesh.Primitives, prim)
	}
	return mesh, nil
}

func (imp *Importer) materialForSymbol(symbol string) int {
	if symbol == "" {
		return -1
	}
	if target, ok := imp.bindings[symbol]; ok {
		if id := imp.MaterialForName(target); id >= 0 {
			return id
		}
	}
	return imp.MaterialForName(symbol)
}

func (imp *Importer) MaterialCount() int {
	if imp.doc == nil {
		return 0
	}
	return len(imp.doc.Materials)
}

func (imp *Importer) MaterialForName(name string) int {
	if imp.doc == nil {
		return -1
	}
	for i, m := range imp.doc.Materials {
		if m.ID == name {
			return i
		}
	}
	for i, m := range imp.doc.Materials {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func (imp *Importer) MaterialName(id int) string {
	if id < 0 || id >= imp.MaterialCount() {
		return ""
	}
	m := imp.doc.Materials[id]
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

func (imp *Importer) Image2DCount() int {
	if imp.doc == nil {
		return 0
	}
	return len(imp.doc.Images)
}

func (imp *Importer) Image2DForName(name string) int {
	if imp.doc == nil {
		return -1
	}
	for i, img := range imp.doc.Images {
		if img.ID == name || img.Name == name {
			return i
		}
	}
	return -1
}

func (imp *Importer) Image2DName(id int) string {
	if id < 0 || id >= imp.Image2DCount() {
		return ""
	}
	img := imp.doc.Images[id]
	if img.Name != "" {
		return img.Name
	}
	return img.ID
}

// Image2DPath returns the file referenced by the image, relative to the
// document where possible.
func (imp *Importer) Image2DPath(id int) string {
	if id < 0 || id >= imp.Image2DCount() {
		return ""
	}
	uri := imp.doc.Images[id].URI()
	if strings.HasPrefix(uri, "file://") {
		uri = strings.TrimPrefix(uri, "file://")
		// file:///C:/foo
		if len(uri) > 3 && uri[0] == '/' && uri[2] == ':' {
			uri = uri[1:]
		}
	}
	if p, err := url.PathUnescape(uri); err == nil {
		uri = p
	}
	return filepath.ToSlash(uri)
}

// OpenImage opens the raw image file.
func (imp *Importer) OpenImage(id int) (io.ReadCloser, error) {
	path := imp.Image2DPath(id)
	if path == "" {
		return nil, fmt.Errorf("image %d: no such image", id)
	}
	if imp.open == nil {
		return nil, fmt.Errorf("image %q: document has no location", path)
	}
	return imp.open(path)
}

// Image2D decodes the image. Decoded images are cached.
func (imp *Importer) Image2D(id int) (image.Image, error) {
	if img, ok := imp.images[id]; ok {
		return img, nil
	}
	r, err := imp.OpenImage(id)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil && strings.ToLower(filepath.Ext(imp.Image2DPath(id))) == ".tga" {
		// retry
		img, err = tga.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", imp.Image2DPath(id), err)
	}
	imp.images[id] = img
	return img, nil
}
