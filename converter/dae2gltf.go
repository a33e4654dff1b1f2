package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/binzume/daeconv/collada"
	"github.com/binzume/daeconv/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

type ColladaToGLTFOption struct {
	Scale          float32 // Default: 1, applied after the document unit
	KeepUpAxis     bool
	ForceUnlit     bool
	SkipBrokenMesh bool

	TextureReCompress      bool
	TextureBytesThreshold  int64 // 0: unlimited
	TextureResolutionLimit int   // 0: unlimited
	TextureScale           float32

	Logger *zap.Logger
}

type colladaToGltf struct {
	*ColladaToGLTFOption
	*gltf.Document
	imp      *collada.Importer
	textures map[int]*uint32
	matrix   *geom.Matrix4
}

func NewColladaToGLTFConverter(options *ColladaToGLTFOption) *colladaToGltf {
	if options == nil {
		options = &ColladaToGLTFOption{}
	}
	if options.Scale == 0 {
		options.Scale = 1
	}
	if options.TextureScale == 0 {
		options.TextureScale = 1
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &colladaToGltf{
		ColladaToGLTFOption: options,
		Document:            gltf.NewDocument(),
		textures:            map[int]*uint32{},
	}
}

const unlitMaterialExt = "KHR_materials_unlit"

func (c *colladaToGltf) hasAlpha(img image.Image) bool {
	switch img.ColorModel() {
	case color.YCbCrModel, color.CMYKModel, color.GrayModel:
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

func scaleTexture(img image.Image, mime string, scale float32, limit int) (io.Reader, error) {
	rect := img.Bounds()
	if limit > 0 {
		sz := int(float32(rect.Dx()) * scale)
		if sz > limit {
			scale *= float32(limit) / float32(sz)
		}
	}

	if scale != 1.0 {
		dst := image.NewRGBA(image.Rect(0, 0, int(float32(rect.Dx())*scale), int(float32(rect.Dy())*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, rect, draw.Over, nil)
		img = dst
	}

	w := new(bytes.Buffer)
	var err error
	if mime == "image/png" {
		err = png.Encode(w, img)
	} else {
		err = jpeg.Encode(w, img, nil)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (c *colladaToGltf) addTexture(imageID int) (*uint32, error) {
	if t, ok := c.textures[imageID]; ok {
		return t, nil
	}
	name := c.imp.Image2DPath(imageID)
	r, err := c.imp.OpenImage(imageID)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, err
	}

	encode := c.TextureReCompress || c.TextureResolutionLimit > 0 || c.TextureScale != 1
	if c.TextureBytesThreshold > 0 && int64(len(data)) > c.TextureBytesThreshold {
		encode = true
	}
	var mimeType string
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".png":
		mimeType = "image/png"
	default:
		mimeType = "image/png"
		encode = true
	}

	var src io.Reader = bytes.NewReader(data)
	if encode {
		img, err := c.imp.Image2D(imageID)
		if err != nil {
			return nil, err
		}
		src, err = scaleTexture(img, mimeType, c.TextureScale, c.TextureResolutionLimit)
		if err != nil {
			return nil, err
		}
	}
	img, err := modeler.WriteImage(c.Document, path.Base(name), mimeType, src)
	if err != nil {
		return nil, err
	}
	c.Buffers[0].ByteLength = uint32(len(c.Buffers[0].Data)) // avoid AddImage bug
	c.Textures = append(c.Textures, &gltf.Texture{Sampler: gltf.Index(0), Source: gltf.Index(img)})

	t := gltf.Index(uint32(len(c.Textures)) - 1)
	c.textures[imageID] = t
	return t, nil
}

func (c *colladaToGltf) convertMaterial(mat *collada.MaterialData) *gltf.Material {
	var rf float32 = 0.8
	var mf float32 = 0
	col := mat.DiffuseColor
	col[3] *= mat.Transparency
	mm := &gltf.Material{
		Name: mat.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{col[0], col[1], col[2], col[3]},
			RoughnessFactor: &rf,
			MetallicFactor:  &mf,
		},
		EmissiveFactor: mat.EmissionColor,
	}
	if col[3] < 0.99 {
		mm.AlphaMode = gltf.AlphaBlend
	}
	if c.ForceUnlit || mat.Shading == "constant" {
		mm.Extensions = map[string]interface{}{unlitMaterialExt: map[string]string{}}
	}

	if mat.DiffuseTexture >= 0 {
		if tex, err := c.addTexture(mat.DiffuseTexture); err == nil {
			mm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: *tex}
			if img, err := c.imp.Image2D(mat.DiffuseTexture); err == nil && c.hasAlpha(img) {
				mm.AlphaMode = gltf.AlphaBlend
			}
		} else {
			c.Logger.Warn("texture read error", zap.String("material", mat.Name), zap.Error(err))
		}
	}
	return mm
}

func (c *colladaToGltf) convertPrimitive(p *collada.PrimitiveData, materialMap map[int]uint32) *gltf.Primitive {
	positions := make([][3]float32, len(p.Positions))
	for i, v := range p.Positions {
		c.matrix.ApplyTo(geom.NewVector3FromArray(v)).ToArray(positions[i][:])
	}
	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(c.Document, positions),
	}
	if len(p.Normals) > 0 && !c.ForceUnlit {
		normals := make([][3]float32, len(p.Normals))
		for i, n := range p.Normals {
			c.matrix.ApplyToDirection(geom.NewVector3FromArray(n)).Normalize().ToArray(normals[i][:])
		}
		attributes["NORMAL"] = modeler.WriteNormal(c.Document, normals)
	}
	for set, uvs := range p.TexCoords {
		flipped := make([][2]float32, len(uvs))
		for i, uv := range uvs {
			flipped[i] = [2]float32{uv[0], 1 - uv[1]}
		}
		attributes[fmt.Sprintf("TEXCOORD_%d", set)] = modeler.WriteTextureCoord(c.Document, flipped)
	}
	if len(p.Colors) > 0 {
		attributes["COLOR_0"] = modeler.WriteColor(c.Document, p.Colors)
	}

	prim := &gltf.Primitive{
		Indices:    gltf.Index(modeler.WriteIndices(c.Document, p.Indices)),
		Attributes: attributes,
	}
	if m, ok := materialMap[p.Material]; ok {
		prim.Material = gltf.Index(m)
	}
	return prim
}

// Convert writes one glTF mesh and node per COLLADA geometry.
func (c *colladaToGltf) Convert(imp *collada.Importer) (*gltf.Document, error) {
	c.imp = imp
	doc := imp.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document")
	}
	s := c.Scale * doc.Asset.Meter()
	c.matrix = geom.NewScaleMatrix4(s, s, s)
	if !c.KeepUpAxis {
		c.matrix = c.matrix.Mul(geom.NewUpAxisMatrix4(geom.UpAxis(doc.Asset.UpAxis)))
	}

	var meshes []*collada.MeshData
	materialUsed := map[int]bool{}
	for i := 0; i < imp.Mesh3DCount(); i++ {
		mesh, err := imp.Mesh3D(i)
		if err != nil {
			if !c.SkipBrokenMesh {
				return nil, err
			}
			c.Logger.Warn("skip mesh", zap.String("mesh", imp.Mesh3DName(i)), zap.Error(err))
			continue
		}
		meshes = append(meshes, mesh)
		for _, p := range mesh.Primitives {
			if p.Material >= 0 {
				materialUsed[p.Material] = true
			}
		}
	}

	materialMap := map[int]uint32{}
	useUnlit := false
	for i := 0; i < imp.MaterialCount(); i++ {
		if !materialUsed[i] {
			continue
		}
		mat, err := imp.Material(i)
		if err != nil {
			return nil, err
		}
		mm := c.convertMaterial(mat)
		if mm.Extensions[unlitMaterialExt] != nil {
			useUnlit = true
		}
		materialMap[i] = uint32(len(c.Materials))
		c.Materials = append(c.Materials, mm)
	}
	if useUnlit {
		c.ExtensionsUsed = append(c.ExtensionsUsed, unlitMaterialExt)
	}
	if len(c.Textures) > 0 {
		c.Samplers = []*gltf.Sampler{{}}
	}

	for _, mesh := range meshes {
		m := &gltf.Mesh{Name: mesh.Name}
		for _, p := range mesh.Primitives {
			if len(p.Indices) == 0 {
				continue
			}
			m.Primitives = append(m.Primitives, c.convertPrimitive(p, materialMap))
		}
		node := &gltf.Node{Name: mesh.Name}
		if len(m.Primitives) > 0 {
			node.Mesh = gltf.Index(uint32(len(c.Meshes)))
			c.Meshes = append(c.Meshes, m)
		}
		c.Scenes[0].Nodes = append(c.Scenes[0].Nodes, uint32(len(c.Nodes)))
		c.Nodes = append(c.Nodes, node)
	}
	return c.Document, nil
}
