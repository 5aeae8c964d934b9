package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo lists the parameters relevant to the material's kind
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := make(map[string]interface{})
	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecToArray(mat.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecToArray(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
	}
	return properties
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// inspectPixel casts a ray through the centre of pixel (pixelX, pixelY), with
// row 0 at the top, and describes the first object hit. The scene must be preprocessed.
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	width := sceneObj.SamplingConfig.Width
	height := sceneObj.SamplingConfig.Height

	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)

	// Lens samples of 0.5 map to the centre of the aperture
	ray := sceneObj.Camera.GetRay(s, t, core.NewSequenceSampler(0.5))

	hit, index, isHit := sceneObj.HitIndex(ray)
	if !isHit {
		return InspectResponse{Hit: false, ObjectIndex: -1}
	}

	object := sceneObj.Objects[index]
	return InspectResponse{
		Hit:          true,
		ObjectIndex:  index,
		MaterialType: object.Material.Kind.String(),
		Point:        vecToArray(hit.Point),
		Normal:       vecToArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(object.Material),
			"geometry": map[string]interface{}{
				"center": vecToArray(object.Sphere.Center),
				"radius": object.Sphere.Radius,
			},
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneID := query.Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sceneObj, err := s.createScene(sceneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := s.parseRenderRequest(query, sceneObj.SamplingConfig)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	sceneObj.SamplingConfig.Width = req.Width
	sceneObj.SamplingConfig.Height = req.Height

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	if err := sceneObj.Preprocess(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, pixelX, pixelY))
}
