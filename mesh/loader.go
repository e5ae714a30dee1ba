package mesh

import "fmt"

// LoadShapeFile loads a serialized shape and its out-of-band material
// table in one call (materials may be nil).
func LoadShapeFile(filename string, materials []Material) (*MeshShape, error) {
	shape, err := LoadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh shape: %v", err)
	}

	if len(materials) > 0 {
		if len(materials) > FlagsMaterialMask+1 {
			return nil, fmt.Errorf("%w: %d materials", ErrTooManyMaterials, len(materials))
		}
		shape.RestoreMaterialState(materials)
	}
	return shape, nil
}
