package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeIndex   int                    `json:"shapeIndex"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Geometry     map[string]interface{} `json:"geometry"`
	Material     map[string]interface{} `json:"material"`
}

// inspectPixel casts the ray of the pixel center and describes the nearest shape it hits
func inspectPixel(sceneObj *scene.Scene, mode renderer.Mode, width, height, pixelX, pixelY int) (InspectResponse, error) {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(pixelY) + 0.5) / float64(height)

	ray := sceneObj.Camera.PerspectiveRay(u, v)
	if mode.Orthographic() {
		ray = sceneObj.Camera.OrthographicRay(u, v)
	}

	hit, ok := integrator.FindNearestHit(ray, sceneObj.Shapes, nil)
	if !ok {
		return InspectResponse{Hit: false, ShapeIndex: -1}, nil
	}

	shape := sceneObj.Shapes[hit.ShapeIndex]
	point := ray.At(hit.T)
	normal, err := shape.Normal(point)
	if err != nil {
		return InspectResponse{}, err
	}

	geometryType, geometryProps := extractGeometryInfo(shape.Geometry())
	return InspectResponse{
		Hit:          true,
		ShapeIndex:   hit.ShapeIndex,
		GeometryType: geometryType,
		Point:        vec(point),
		Normal:       vec(normal),
		Distance:     hit.T,
		FrontFace:    ray.Direction.Dot(normal) < 0,
		Geometry:     geometryProps,
		Material:     extractMaterialInfo(shape.Material()),
	}, nil
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(g geometry.Geometry) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := g.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius

	case *geometry.Box:
		properties["center"] = vec(geom.Center)
		properties["halfExtents"] = vec(geom.Size)
		properties["rotation"] = vec(geom.Rotation)

	case *geometry.Plane:
		properties["point"] = vec(geom.Point)
		properties["normal"] = vec(geom.Normal)

	case *geometry.Rectangle:
		properties["corner"] = vec(geom.Corner)
		properties["u"] = vec(geom.U.Vector())
		properties["v"] = vec(geom.V.Vector())
		properties["normal"] = vec(geom.Normal)

	case *geometry.Circle:
		properties["center"] = vec(geom.Center)
		properties["normal"] = vec(geom.Normal)
		properties["radius"] = geom.Radius
	}

	return g.Kind().String(), properties
}

// extractMaterialInfo lists the properties a material sets; nil for no material
func extractMaterialInfo(m *material.Material) map[string]interface{} {
	if m == nil {
		return nil
	}

	properties := map[string]interface{}{
		"roughness":         m.Roughness(),
		"metalness":         m.Metalness(),
		"absorption":        m.Absorption(),
		"transmission":      m.Transmission(),
		"refractiveIndex":   m.RefractiveIndex(),
		"emissiveIntensity": m.EmissiveIntensity(),
		"alpha":             m.Alpha(),
		"reflective":        m.IsReflective(),
		"transparent":       m.IsTransparent(),
	}
	if albedo, ok := m.Albedo(); ok {
		properties["albedo"] = hexColor(albedo)
	}
	if specular, ok := m.Specular(); ok {
		properties["specular"] = hexColor(specular)
	}
	if emissive, ok := m.Emissive(); ok {
		properties["emissive"] = hexColor(emissive)
	}
	return properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	sceneObj, err := scene.NewByID(req.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	width, height := req.Width, req.Height
	if width == renderer.SceneDefault {
		width = sceneObj.SamplingConfig.Width
	}
	if height == renderer.SceneDefault {
		height = sceneObj.SamplingConfig.Height
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	response, err := inspectPixel(sceneObj, req.Mode, width, height, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}
