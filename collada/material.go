package collada

import (
	"fmt"
)

type MaterialData struct {
	Name    string
	Shading string // phong, blinn, lambert or constant

	DiffuseColor   [4]float32
	DiffuseTexture int // image id, -1: none
	EmissionColor  [3]float32
	Transparency   float32 // opacity factor, 1 if absent
}

func (imp *Importer) Material(id int) (*MaterialData, error) {
	if id < 0 || id >= imp.MaterialCount() {
		return nil, fmt.Errorf("material %d: no such material", id)
	}
	m := imp.doc.Materials[id]
	mat := &MaterialData{
		Name:           imp.MaterialName(id),
		DiffuseColor:   [4]float32{1, 1, 1, 1},
		DiffuseTexture: -1,
		Transparency:   1,
	}
	effect := imp.doc.Effect(m.InstanceEffect.URL)
	if effect == nil || effect.Profile == nil {
		imp.Logger.Sugar().Warnf("material %q: effect %q not found", mat.Name, m.InstanceEffect.URL)
		return mat, nil
	}

	tech := &effect.Profile.Technique
	shading := tech.Phong
	mat.Shading = "phong"
	if shading == nil && tech.Blinn != nil {
		shading, mat.Shading = tech.Blinn, "blinn"
	}
	if shading == nil && tech.Lambert != nil {
		shading, mat.Shading = tech.Lambert, "lambert"
	}
	if shading == nil && tech.Constant != nil {
		shading, mat.Shading = tech.Constant, "constant"
	}
	if shading == nil {
		mat.Shading = ""
		return mat, nil
	}

	if d := shading.Diffuse; d != nil {
		if c, ok := parseColor(d.Color); ok {
			mat.DiffuseColor = c
		}
		if d.Texture != nil {
			mat.DiffuseTexture = imp.Image2DForName(effect.Profile.resolveImage(d.Texture.Texture))
		}
	}
	if e := shading.Emission; e != nil {
		if c, ok := parseColor(e.Color); ok {
			copy(mat.EmissionColor[:], c[:3])
		}
	}
	if shading.Transparency != nil {
		mat.Transparency = shading.Transparency.Float
	}
	return mat, nil
}

// resolveImage follows sampler2D -> surface -> image. Some exporters
// refer to the image id directly.
func (p *ProfileCommon) resolveImage(sid string) string {
	for depth := 0; depth < 2; depth++ {
		found := false
		for _, np := range p.NewParams {
			if np.SID != sid {
				continue
			}
			if np.Sampler2D != nil {
				sid, found = np.Sampler2D.Source, true
			} else if np.Surface != nil {
				sid, found = np.Surface.InitFrom, true
			}
			break
		}
		if !found {
			break
		}
	}
	return sid
}
