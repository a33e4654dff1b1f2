// Package collada reads COLLADA (.dae) documents and imports their meshes,
// materials and images.
package collada

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/binzume/daeconv/meshindex"
)

type Document struct {
	XMLName    xml.Name    `xml:"COLLADA"`
	Version    string      `xml:"version,attr"`
	Asset      Asset       `xml:"asset"`
	Geometries []*Geometry `xml:"library_geometries>geometry"`
	Images     []*Image    `xml:"library_images>image"`
	Materials  []*Material `xml:"library_materials>material"`
	Effects    []*Effect   `xml:"library_effects>effect"`
	Scenes     []*Scene    `xml:"library_visual_scenes>visual_scene"`
}

type Asset struct {
	Unit struct {
		Name  string  `xml:"name,attr"`
		Meter float32 `xml:"meter,attr"`
	} `xml:"unit"`
	UpAxis string `xml:"up_axis"`
}

// Meter returns the length of one document unit in meters.
func (a *Asset) Meter() float32 {
	if a.Unit.Meter <= 0 {
		return 1
	}
	return a.Unit.Meter
}

type Geometry struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Mesh *Mesh  `xml:"mesh"`
}

type Mesh struct {
	Sources   []*Source    `xml:"source"`
	Vertices  *Vertices    `xml:"vertices"`
	Triangles []*Primitive `xml:"triangles"`
	Polylists []*Primitive `xml:"polylist"`
	Polygons  []*Polygons  `xml:"polygons"`
}

type Source struct {
	ID         string     `xml:"id,attr"`
	Name       string     `xml:"name,attr"`
	FloatArray *DataArray `xml:"float_array"`
	IntArray   *DataArray `xml:"int_array"`
	Accessor   *Accessor  `xml:"technique_common>accessor"`
}

type DataArray struct {
	ID    string `xml:"id,attr"`
	Count int    `xml:"count,attr"`
	Text  string `xml:",chardata"`
}

type Accessor struct {
	Count  int    `xml:"count,attr"`
	Offset int    `xml:"offset,attr"`
	Stride int    `xml:"stride,attr"`
	Source string `xml:"source,attr"`
	Params []struct {
		Name string `xml:"name,attr"`
		Type string `xml:"type,attr"`
	} `xml:"param"`
}

type Input struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
	Set      int    `xml:"set,attr"`
}

type Vertices struct {
	ID     string  `xml:"id,attr"`
	Inputs []Input `xml:"input"`
}

// Primitive is a <triangles> or <polylist> element.
type Primitive struct {
	Name     string  `xml:"name,attr"`
	Count    int     `xml:"count,attr"`
	Material string  `xml:"material,attr"`
	Inputs   []Input `xml:"input"`
	VCount   string  `xml:"vcount"`
	P        string  `xml:"p"`
}

// Polygons holds one <p> per polygon. Holes (<ph>) are not supported.
type Polygons struct {
	Name     string   `xml:"name,attr"`
	Count    int      `xml:"count,attr"`
	Material string   `xml:"material,attr"`
	Inputs   []Input  `xml:"input"`
	P        []string `xml:"p"`
}

type Image struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name,attr"`
	InitFrom struct {
		Text string `xml:",chardata"`
		Ref  string `xml:"ref"` // 1.5
	} `xml:"init_from"`
}

func (img *Image) URI() string {
	if img.InitFrom.Ref != "" {
		return strings.TrimSpace(img.InitFrom.Ref)
	}
	return strings.TrimSpace(img.InitFrom.Text)
}

type Material struct {
	ID             string `xml:"id,attr"`
	Name           string `xml:"name,attr"`
	InstanceEffect struct {
		URL string `xml:"url,attr"`
	} `xml:"instance_effect"`
}

type Effect struct {
	ID      string         `xml:"id,attr"`
	Name    string         `xml:"name,attr"`
	Profile *ProfileCommon `xml:"profile_COMMON"`
}

type ProfileCommon struct {
	NewParams []struct {
		SID     string `xml:"sid,attr"`
		Surface *struct {
			InitFrom string `xml:"init_from"`
		} `xml:"surface"`
		Sampler2D *struct {
			Source string `xml:"source"`
		} `xml:"sampler2D"`
	} `xml:"newparam"`
	Technique struct {
		Phong    *Shading `xml:"phong"`
		Blinn    *Shading `xml:"blinn"`
		Lambert  *Shading `xml:"lambert"`
		Constant *Shading `xml:"constant"`
	} `xml:"technique"`
}

type Shading struct {
	Emission     *ColorOrTexture `xml:"emission"`
	Diffuse      *ColorOrTexture `xml:"diffuse"`
	Transparency *struct {
		Float float32 `xml:"float"`
	} `xml:"transparency"`
}

type ColorOrTexture struct {
	Color   string `xml:"color"`
	Texture *struct {
		Texture  string `xml:"texture,attr"`
		Texcoord string `xml:"texcoord,attr"`
	} `xml:"texture"`
}

type Scene struct {
	ID    string  `xml:"id,attr"`
	Name  string  `xml:"name,attr"`
	Nodes []*Node `xml:"node"`
}

// Node is only walked to collect material bindings.
type Node struct {
	ID               string             `xml:"id,attr"`
	Name             string             `xml:"name,attr"`
	Nodes            []*Node            `xml:"node"`
	InstanceGeometry []InstanceGeometry `xml:"instance_geometry"`
}

type InstanceGeometry struct {
	URL       string `xml:"url,attr"`
	Materials []struct {
		Symbol string `xml:"symbol,attr"`
		Target string `xml:"target,attr"`
	} `xml:"bind_material>technique_common>instance_material"`
}

func refID(url string) string {
	return strings.TrimPrefix(strings.TrimSpace(url), "#")
}

func (m *Mesh) Source(url string) *Source {
	id := refID(url)
	for _, s := range m.Sources {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (d *Document) Effect(url string) *Effect {
	id := refID(url)
	for _, e := range d.Effects {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Vectors returns the accessor elements of the source. The declared
// element count must match the array length.
func (s *Source) Vectors() ([][]float32, error) {
	arr := s.FloatArray
	if arr == nil {
		arr = s.IntArray
	}
	if arr == nil || s.Accessor == nil {
		return nil, fmt.Errorf("source %q: no array or accessor", s.ID)
	}
	if s.Accessor.Count < 0 || s.Accessor.Stride < 0 || s.Accessor.Offset < 0 {
		return nil, fmt.Errorf("source %q: %w: accessor count %d, stride %d, offset %d", s.ID, meshindex.ErrInvalidArgument,
			s.Accessor.Count, s.Accessor.Stride, s.Accessor.Offset)
	}
	stride := s.Accessor.Stride
	if stride == 0 {
		stride = 1
	}
	count := s.Accessor.Count
	if arr.Count != count*stride+s.Accessor.Offset {
		return nil, fmt.Errorf("source %q: %w: accessor %d*%d, array %d", s.ID, meshindex.ErrCountMismatch, count, stride, arr.Count)
	}
	values, err := parseFloats(arr.Text)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", s.ID, err)
	}
	if len(values) != arr.Count {
		return nil, fmt.Errorf("source %q: %w: declared %d, found %d values", s.ID, meshindex.ErrCountMismatch, arr.Count, len(values))
	}
	values = values[s.Accessor.Offset:]
	vectors := make([][]float32, count)
	for i := range vectors {
		vectors[i] = values[i*stride : (i+1)*stride : (i+1)*stride]
	}
	return vectors, nil
}

func parseFloats(s string) ([]float32, error) {
	fields := strings.Fields(s)
	values := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		values[i] = float32(v)
	}
	return values, nil
}

func parseUints(s string) ([]uint32, error) {
	fields := strings.Fields(s)
	values := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, err
		}
		values[i] = uint32(v)
	}
	return values, nil
}

func parseColor(s string) ([4]float32, bool) {
	c := [4]float32{0, 0, 0, 1}
	values, err := parseFloats(s)
	if err != nil || len(values) < 3 {
		return c, false
	}
	copy(c[:], values)
	return c, true
}
