package mesh

import "errors"

// Shape construction errors. All of them are reported through the result of
// Settings.Create and leave no usable shape behind.
var (
	// ErrEmptyTriangles means the settings contained no triangles.
	ErrEmptyTriangles = errors.New("need triangles to create a mesh shape")

	// ErrDegenerateTriangle means a triangle uses the same vertex twice.
	ErrDegenerateTriangle = errors.New("degenerate triangle")

	// ErrIndexOutOfRange means a triangle references a vertex beyond the
	// vertex list.
	ErrIndexOutOfRange = errors.New("vertex index out of range")

	// ErrTooManyMaterials means more than FlagsMaterialMask+1 materials
	// were supplied.
	ErrTooManyMaterials = errors.New("too many materials")

	// ErrMaterialOutOfRange means a triangle's material index is beyond the
	// material list.
	ErrMaterialOutOfRange = errors.New("material index out of range")

	// ErrMissingMaterial means no materials were supplied but a triangle
	// uses a material index other than 0.
	ErrMissingMaterial = errors.New("no materials present, all triangles should have material index 0")

	// ErrMeshTooLarge means the tree needs more sub shape ID bits than
	// SubShapeIDMaxBits.
	ErrMeshTooLarge = errors.New("mesh exceeds the amount of available sub shape ID bits")

	// ErrEncodingFailure means the tree could not be encoded into a buffer.
	ErrEncodingFailure = errors.New("failed to encode mesh tree")

	// ErrInvalidFormat means a serialized shape could not be read back.
	ErrInvalidFormat = errors.New("invalid mesh shape data")
)
