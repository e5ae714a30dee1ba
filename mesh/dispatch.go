package mesh

import (
	"fmt"

	"github.com/o0olele/trimesh-go/math32"
)

// CollideShapeFunc handles the collision between a pair of shape types.
type CollideShapeFunc func(shape1, shape2 Shape, scale1, scale2 math32.Vector3, comTransform1, comTransform2 math32.Matrix4, creator1, creator2 SubShapeIDCreator, settings *CollideSettings, collector Collector[CollideShapeResult])

var collideDispatch = make(map[[2]ShapeType]CollideShapeFunc)

// RegisterCollideShape installs the handler for an ordered pair of shape
// types. Registration happens at init time; the table is read-only
// afterwards.
func RegisterCollideShape(type1, type2 ShapeType, fn CollideShapeFunc) {
	collideDispatch[[2]ShapeType{type1, type2}] = fn
}

// CollideShapes routes a collision query to the registered handler for the
// two shape types.
func CollideShapes(shape1, shape2 Shape, scale1, scale2 math32.Vector3, comTransform1, comTransform2 math32.Matrix4, creator1, creator2 SubShapeIDCreator, settings *CollideSettings, collector Collector[CollideShapeResult]) error {
	fn, ok := collideDispatch[[2]ShapeType{shape1.Type(), shape2.Type()}]
	if !ok {
		return fmt.Errorf("no collide handler registered for shape types (%d, %d)", shape1.Type(), shape2.Type())
	}
	fn(shape1, shape2, scale1, scale2, comTransform1, comTransform2, creator1, creator2, settings, collector)
	return nil
}

func init() {
	RegisterCollideShape(ShapeTypeConvex, ShapeTypeMesh, CollideConvexVsMesh)
}
