package model

// Model3D owns one mesh and one material. Key is assigned by the asset
// subsystem that created it.
type Model3D struct {
	Key      string
	Mesh     *Mesh
	Material *Material
}

// NewModel3D pairs a mesh with a material, falling back to DefaultMaterial.
func NewModel3D(key string, mesh *Mesh, material *Material) *Model3D {
	if material == nil {
		material = DefaultMaterial()
	}
	return &Model3D{Key: key, Mesh: mesh, Material: material}
}
