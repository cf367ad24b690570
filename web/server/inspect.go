package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// centerSampler puts every camera sample at the middle of its range:
// the pixel center, and the center of the lens
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

func colorHex(c core.Vec3) string {
	rgba := core.ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = colorHex(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = colorHex(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // The shape that was hit
}

// inspectPixel casts the center ray of a pixel and reports the first object it hits
func inspectPixel(shapes *geometry.ShapeList, camera *renderer.Camera, pixelX, pixelY int) InspectResult {
	ray := camera.GetRay(pixelX, pixelY, centerSampler{})
	rayT := core.NewInterval(0.001, math.Inf(1))

	hit, isHit := shapes.Hit(ray, rayT)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The list does not report which shape produced the hit; the first with the same t does
	for _, shape := range shapes.Shapes {
		if shapeHit, ok := shape.Hit(ray, rayT); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, camera, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if pixelX < 0 || pixelX >= camera.Width() || pixelY < 0 || pixelY >= camera.Height() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj.Shapes, camera, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
