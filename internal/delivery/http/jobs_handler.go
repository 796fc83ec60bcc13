package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/form"
	"github.com/affanabid/Hiro/internal/menu"
	"github.com/affanabid/Hiro/internal/remote"
	"github.com/affanabid/Hiro/internal/view"
)

// alwaysConfirm stands in for the confirmation prompt on the bridge:
// the front end has already asked the user before calling DELETE.
var alwaysConfirm = menu.PrompterFunc(func(string) bool { return true })

// JobsHandler exposes the synchronized job collection to the dashboard
// front end. Reads come from the ViewModel snapshot; mutations go
// through the form controller and action menu so every successful
// change triggers exactly one collection refresh.
type JobsHandler struct {
	vm         *view.ViewModel
	collection remote.Collection
	logger     *zap.Logger
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(vm *view.ViewModel, collection remote.Collection, logger *zap.Logger) *JobsHandler {
	return &JobsHandler{
		vm:         vm,
		collection: collection,
		logger:     logger,
	}
}

// List handles GET /api/v1/jobs
func (h *JobsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.vm.Snapshot())
}

// Create handles POST /api/v1/jobs
func (h *JobsHandler) Create(c *gin.Context) {
	var model form.Model
	if err := c.ShouldBindJSON(&model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ctrl := form.NewCreate(h.collection, h.vm, h.logger)
	ctrl.SetModel(model)
	h.submit(c, ctrl, http.StatusCreated)
}

// Update handles PUT /api/v1/jobs/:id
func (h *JobsHandler) Update(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var model form.Model
	if err := c.ShouldBindJSON(&model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ctrl := form.NewEdit(domain.JobRecord{ID: id}, h.collection, h.vm, h.logger)
	ctrl.SetModel(model)
	h.submit(c, ctrl, http.StatusOK)
}

// Patch handles PATCH /api/v1/jobs/:id, used by quick actions that
// change a single field (e.g. closing a posting) without opening the
// edit dialog.
func (h *JobsHandler) Patch(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var patch domain.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if field, ok := invalidPatchField(patch); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": gin.H{field: field + " is invalid"}})
		return
	}

	job, err := h.collection.Patch(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		h.logger.Error("Failed to patch job", zap.Int64("job_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Jobs API unavailable"})
		return
	}

	h.vm.NotifyChanged(c.Request.Context())
	c.JSON(http.StatusOK, job)
}

func invalidPatchField(patch domain.JobPatch) (string, bool) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return "status", true
	}
	if patch.JobType != nil && !patch.JobType.IsValid() {
		return "jobtype", true
	}
	if patch.JobTime != nil && !patch.JobTime.IsValid() {
		return "jobtime", true
	}
	return "", false
}

// Delete handles DELETE /api/v1/jobs/:id
func (h *JobsHandler) Delete(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	job, err := h.collection.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		h.logger.Error("Failed to fetch job before delete", zap.Int64("job_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Jobs API unavailable"})
		return
	}

	m := menu.New(job, h.collection, h.vm, alwaysConfirm, h.logger)
	m.Open()
	if _, err := m.Select(c.Request.Context(), menu.ActionDelete); err != nil {
		h.logger.Error("Delete selection failed", zap.Int64("job_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// submit runs a prepared form controller and maps its outcome onto the
// HTTP response.
func (h *JobsHandler) submit(c *gin.Context, ctrl *form.Controller, successStatus int) {
	err := ctrl.Submit(c.Request.Context())
	if err == nil {
		c.JSON(successStatus, gin.H{"status": "ok"})
		return
	}

	var verr *form.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
		return
	}

	var terr *domain.TransportError
	if errors.As(err, &terr) {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Jobs API unavailable"})
		return
	}

	h.logger.Error("Form submission failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func jobID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return 0, false
	}
	return id, true
}
