package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Phong evaluates the Phong reflection model at view-space position p with
// unit normal n. The viewer sits at the view-space origin. diffuse replaces
// the material's diffuse color, so callers can feed a texel or vertex color.
func Phong(mat *model.Material, diffuse color.RGB, n, p math.Vec3, lights []Light) color.RGB {
	var out color.RGB
	view := p.Negate().Normalize()

	for _, l := range lights {
		if l.Kind == KindAmbient {
			out = out.Add(mat.Ambient.Mul(l.Color).Scale(l.Intensity))
			continue
		}

		dir, atten := l.Incident(p)
		if atten <= 0 {
			continue
		}
		ndotl := n.Dot(dir)
		if ndotl <= 0 {
			continue
		}
		lc := l.Color.Scale(atten)
		out = out.Add(diffuse.Mul(lc).Scale(ndotl))

		if mat.Shininess > 0 {
			r := dir.Negate().Reflect(n)
			if rdotv := r.Dot(view); rdotv > 0 {
				out = out.Add(mat.Specular.Mul(lc).Scale(math32.Pow(rdotv, mat.Shininess)))
			}
		}
	}
	return out.Clamp()
}

// Lambert returns the diffuse and ambient terms only.
func Lambert(mat *model.Material, diffuse color.RGB, n, p math.Vec3, lights []Light) color.RGB {
	var out color.RGB
	for _, l := range lights {
		if l.Kind == KindAmbient {
			out = out.Add(mat.Ambient.Mul(l.Color).Scale(l.Intensity))
			continue
		}
		dir, atten := l.Incident(p)
		if ndotl := n.Dot(dir); atten > 0 && ndotl > 0 {
			out = out.Add(diffuse.Mul(l.Color).Scale(atten * ndotl))
		}
	}
	return out.Clamp()
}
