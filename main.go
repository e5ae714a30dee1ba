package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"sync"

	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
	"github.com/o0olele/trimesh-go/mesh"
)

// Demo query server: build a mesh shape from posted triangles, then answer
// spatial queries against it.

var (
	logger      *zap.Logger
	globalShape *mesh.MeshShape
	shapeMutex  sync.RWMutex
)

// InitRequest describes the mesh to build.
type InitRequest struct {
	Triangles []geometry.Triangle `json:"triangles"`
}

// InitResponse reports what was built.
type InitResponse struct {
	Stats  mesh.Stats    `json:"stats"`
	Bounds geometry.AABB `json:"bounds"`
}

// RaycastRequest is a ray in mesh local space.
type RaycastRequest struct {
	Origin    math32.Vector3 `json:"origin"`
	Direction math32.Vector3 `json:"direction"`
	AllHits   bool           `json:"all_hits,omitempty"`
	BackFaces bool           `json:"back_faces,omitempty"`
}

// RaycastHit is one reported hit.
type RaycastHit struct {
	Fraction   float32        `json:"fraction"`
	Point      math32.Vector3 `json:"point"`
	Normal     math32.Vector3 `json:"normal"`
	SubShapeID uint32         `json:"sub_shape_id"`
}

// RaycastResponse lists the hits of one ray.
type RaycastResponse struct {
	Hits  []RaycastHit `json:"hits"`
	Found bool         `json:"found"`
}

// PointRequest asks if a point is inside the mesh.
type PointRequest struct {
	Point math32.Vector3 `json:"point"`
}

// PointResponse answers a point query.
type PointResponse struct {
	Inside bool `json:"inside"`
}

func initMeshHandler(w http.ResponseWriter, r *http.Request) {
	var req InitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	settings := mesh.NewSettingsFromTriangles(req.Triangles, nil)
	shape, err := settings.Create()
	if err != nil {
		logger.Warn("failed to build mesh shape", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	shapeMutex.Lock()
	globalShape = shape
	shapeMutex.Unlock()

	stats := shape.GetStats()
	logger.Info("mesh shape built",
		zap.Int("triangles", stats.NumTriangles),
		zap.Int("tree_bytes", stats.SizeBytes))

	writeJSON(w, InitResponse{Stats: stats, Bounds: shape.LocalBounds()})
}

func raycastHandler(w http.ResponseWriter, r *http.Request) {
	var req RaycastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	shapeMutex.RLock()
	shape := globalShape
	shapeMutex.RUnlock()
	if shape == nil {
		http.Error(w, "Mesh not initialized", http.StatusBadRequest)
		return
	}

	ray := mesh.RayCast{Origin: req.Origin, Direction: req.Direction}
	var resp RaycastResponse

	makeHit := func(fraction float32, id mesh.SubShapeID) RaycastHit {
		point := ray.Origin.Add(ray.Direction.Mul(fraction))
		return RaycastHit{
			Fraction:   fraction,
			Point:      point,
			Normal:     shape.GetSurfaceNormal(id, point),
			SubShapeID: id.Value(),
		}
	}

	if req.AllHits {
		backFaceMode := mesh.IgnoreBackFaces
		if req.BackFaces {
			backFaceMode = mesh.CollideWithBackFaces
		}
		collector := mesh.NewAllHitsCollector[mesh.RayCastResult]()
		shape.CastRayAll(ray, mesh.RayCastSettings{BackFaceMode: backFaceMode}, mesh.SubShapeIDCreator{}, collector)
		for _, hit := range collector.Hits {
			resp.Hits = append(resp.Hits, makeHit(hit.Fraction, hit.SubShapeID2))
		}
		resp.Found = len(collector.Hits) > 0
	} else {
		hit := mesh.NewRayCastResult()
		if shape.CastRay(ray, mesh.SubShapeIDCreator{}, &hit) {
			resp.Hits = append(resp.Hits, makeHit(hit.Fraction, hit.SubShapeID2))
			resp.Found = true
		}
	}

	writeJSON(w, resp)
}

func pointHandler(w http.ResponseWriter, r *http.Request) {
	var req PointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	shapeMutex.RLock()
	shape := globalShape
	shapeMutex.RUnlock()
	if shape == nil {
		http.Error(w, "Mesh not initialized", http.StatusBadRequest)
		return
	}

	var collector mesh.AnyHitCollector[mesh.CollidePointResult]
	shape.CollidePoint(req.Point, mesh.SubShapeIDCreator{}, &collector)
	writeJSON(w, PointResponse{Inside: collector.HasHit})
}

func statsHandler(w http.ResponseWriter, r *http.Request) {
	shapeMutex.RLock()
	shape := globalShape
	shapeMutex.RUnlock()
	if shape == nil {
		http.Error(w, "Mesh not initialized", http.StatusBadRequest)
		return
	}
	writeJSON(w, shape.GetStats())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger, _ = zap.NewProduction()
	defer logger.Sync()

	r := mux.NewRouter()
	r.HandleFunc("/api/mesh/init", initMeshHandler).Methods("POST")
	r.HandleFunc("/api/mesh/raycast", raycastHandler).Methods("POST")
	r.HandleFunc("/api/mesh/point", pointHandler).Methods("POST")
	r.HandleFunc("/api/mesh/stats", statsHandler).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(r)

	logger.Info("mesh query server listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
