package mesh

// Material is an opaque surface material reference. The shape only stores
// the ordered material table and hands references back from queries; what a
// material means is up to the embedding engine.
type Material interface {
	MaterialName() string
}

type defaultMaterial struct{}

func (defaultMaterial) MaterialName() string { return "Default" }

// DefaultMaterial is returned for every triangle of a mesh that was built
// without a material table.
var DefaultMaterial Material = defaultMaterial{}
