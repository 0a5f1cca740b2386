package renderer

// Options toggles the stages of the pipeline.
type Options struct {
	ViewTransform       bool `yaml:"view_transform"`
	ModelTransform      bool `yaml:"model_transform"`
	NormalTransform     bool `yaml:"normal_transform"`
	ProjectionTransform bool `yaml:"projection_transform"`

	ScissorTest bool `yaml:"scissor_test"`
	AlphaTest   bool `yaml:"alpha_test"`
	StencilTest bool `yaml:"stencil_test"`
	DepthTest   bool `yaml:"depth_test"`

	FrustumCulling   bool `yaml:"frustum_culling"`
	BackfaceCulling  bool `yaml:"backface_culling"`
	OcclusionCulling bool `yaml:"occlusion_culling"`
	Clipping         bool `yaml:"clipping"`

	Antialiasing bool `yaml:"antialiasing"`
	DebugNormals bool `yaml:"debug_normals"`
}

// DefaultOptions enables every transform, depth testing, culling and
// clipping.
func DefaultOptions() Options {
	return Options{
		ViewTransform:       true,
		ModelTransform:      true,
		NormalTransform:     true,
		ProjectionTransform: true,
		DepthTest:           true,
		FrustumCulling:      true,
		BackfaceCulling:     true,
		Clipping:            true,
	}
}
