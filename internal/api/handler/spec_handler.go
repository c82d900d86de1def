package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"relay-core/internal/log"
	"relay-core/internal/spec"
	"relay-core/internal/store"
	"relay-core/pkg/utils"
)

const specsPrefix = "/api/v1/specs/"

// CreateSpec validates and registers a pipeline specification document
// @Summary Register a pipeline spec
// @Description Validate a YAML pipeline specification document and store it in the registry. Invalid documents are stored too, with their validation failure recorded.
// @Tags specs
// @Accept text/plain
// @Produce json
// @Param document body string true "Pipeline specification document (YAML)"
// @Success 201 {object} map[string]interface{} "Spec registered"
// @Failure 422 {object} map[string]interface{} "Document failed validation"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /specs [post]
func CreateSpec(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	specID := uuid.New().String()

	p, loadErr := spec.Load(body)
	if loadErr != nil {
		if err := store.SaveSpec(specID, "", body, 0, "invalid"); err != nil {
			log.Error("saving invalid spec", "id", specID, "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to save spec")
			return
		}
		store.SaveSpecError(specID, loadErr)
		log.Info("spec rejected", "id", specID, "err", loadErr)
		utils.RespondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"id":     specID,
			"status": "invalid",
			"error":  loadErr.Error(),
		})
		return
	}

	if err := store.SaveSpec(specID, p.Name, body, len(p.Steps), "valid"); err != nil {
		log.Error("saving spec", "id", specID, "err", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to save spec")
		return
	}

	log.Info("spec registered", "id", specID, "name", p.Name, "steps", len(p.Steps))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        specID,
		"name":      p.Name,
		"stepCount": len(p.Steps),
		"status":    "valid",
		"createdAt": time.Now().UTC(),
	})
}

// ValidateSpec checks a document without storing anything
// @Summary Validate a pipeline spec
// @Description Run spec validation on a YAML document and report the outcome without touching the registry
// @Tags specs
// @Accept text/plain
// @Produce json
// @Param document body string true "Pipeline specification document (YAML)"
// @Success 200 {object} map[string]interface{} "Document is valid"
// @Failure 422 {object} map[string]interface{} "Document failed validation"
// @Router /validate [post]
func ValidateSpec(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	p, loadErr := spec.Load(body)
	if loadErr != nil {
		utils.RespondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"valid": false,
			"error": loadErr.Error(),
		})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"valid":     true,
		"name":      p.Name,
		"stepCount": len(p.Steps),
	})
}

// ListSpecs retrieves all registered specs
// @Summary List specs
// @Description Get all registered pipeline specs with their validation status
// @Tags specs
// @Produce json
// @Success 200 {array} map[string]interface{} "List of specs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /specs [get]
func ListSpecs(w http.ResponseWriter, r *http.Request) {
	specs, err := store.ListSpecs()
	if err != nil {
		log.Error("listing specs", "err", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch specs")
		return
	}
	if specs == nil {
		specs = []map[string]interface{}{}
	}
	utils.RespondJSON(w, http.StatusOK, specs)
}

// GetSpec retrieves one spec including its raw source document
// @Summary Get spec
// @Description Retrieve a registered spec by id, including the raw document
// @Tags specs
// @Produce json
// @Param id path string true "Spec ID"
// @Success 200 {object} map[string]interface{} "Spec details"
// @Failure 404 {object} map[string]interface{} "Spec not found"
// @Router /specs/{id} [get]
func GetSpec(w http.ResponseWriter, r *http.Request) {
	specID, ok := specIDFromPath(w, r.URL.Path, "")
	if !ok {
		return
	}

	record, err := store.GetSpec(specID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "spec not found")
		} else {
			log.Error("fetching spec", "id", specID, "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to fetch spec")
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, record)
}

// GetSpecErrors retrieves the validation failures recorded for a spec
// @Summary Get spec errors
// @Description Retrieve the validation errors recorded for a spec
// @Tags specs
// @Produce json
// @Param id path string true "Spec ID"
// @Success 200 {array} map[string]interface{} "Recorded errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /specs/{id}/errors [get]
func GetSpecErrors(w http.ResponseWriter, r *http.Request) {
	specID, ok := specIDFromPath(w, r.URL.Path, "/errors")
	if !ok {
		return
	}

	specErrors, err := store.GetSpecErrors(specID)
	if err != nil {
		log.Error("fetching spec errors", "id", specID, "err", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch spec errors")
		return
	}
	if specErrors == nil {
		specErrors = []map[string]interface{}{}
	}
	utils.RespondJSON(w, http.StatusOK, specErrors)
}

// DeleteSpec removes a spec from the registry
// @Summary Delete spec
// @Description Remove a spec and its recorded errors from the registry
// @Tags specs
// @Produce json
// @Param id path string true "Spec ID"
// @Success 200 {object} map[string]interface{} "Spec deleted"
// @Failure 404 {object} map[string]interface{} "Spec not found"
// @Router /specs/{id} [delete]
func DeleteSpec(w http.ResponseWriter, r *http.Request) {
	specID, ok := specIDFromPath(w, r.URL.Path, "")
	if !ok {
		return
	}

	if err := store.DeleteSpec(specID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "spec not found")
		} else {
			log.Error("deleting spec", "id", specID, "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to delete spec")
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"id": specID, "deleted": true})
}

// specIDFromPath extracts the spec id between the specs prefix and an
// optional suffix, writing a 400 response itself when the id is missing.
func specIDFromPath(w http.ResponseWriter, path, suffix string) (string, bool) {
	id := strings.TrimPrefix(path, specsPrefix)
	if suffix != "" {
		id = strings.TrimSuffix(id, suffix)
	}
	if id == "" || id == path {
		utils.RespondError(w, http.StatusBadRequest, "spec id is required")
		return "", false
	}
	return id, true
}
