package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/libretto-backend/internal/model"
	"github.com/stemsi/libretto-backend/internal/response"
	"github.com/stemsi/libretto-backend/internal/service"
	"github.com/stemsi/libretto-backend/internal/validator"
)

type TranscriptHandler struct {
	transcriptService *service.TranscriptService
}

func NewTranscriptHandler(transcriptService *service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcriptService: transcriptService}
}

// List godoc
// GET /api/v1/transcript?order=insertion|course|grade&grade=N
func (h *TranscriptHandler) List(c *gin.Context) {
	order := service.Order(c.DefaultQuery("order", string(service.OrderInsertion)))

	grade, ok := gradeQuery(c)
	if !ok {
		return
	}

	var (
		records []*model.GradeRecord
		err     error
	)
	if grade != nil {
		records, err = h.transcriptService.FilterByGrade(*grade, order)
	} else {
		records, err = h.transcriptService.List(order)
	}
	if errors.Is(err, service.ErrUnknownOrder) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidOrder)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": views(records), "count": len(records)})
}

// Render godoc
// GET /api/v1/transcript/text?grade=N
func (h *TranscriptHandler) Render(c *gin.Context) {
	grade, ok := gradeQuery(c)
	if !ok {
		return
	}
	response.Text(c, http.StatusOK, h.transcriptService.Render(grade))
}

// Add godoc
// POST /api/v1/transcript/records
func (h *TranscriptHandler) Add(c *gin.Context) {
	var req model.AddGradeRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"date": err.Error()})
		return
	}

	rec := model.NewGradeRecord(req.Course, *req.Grade, date)
	switch err := h.transcriptService.Add(rec); {
	case errors.Is(err, service.ErrDuplicateRecord):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateRecord)
	case errors.Is(err, service.ErrConflictingRecord):
		response.Fail(c, http.StatusConflict, response.ErrConflictingRecord)
	case err != nil:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	default:
		response.Success(c, http.StatusCreated, gin.H{"record": rec.View()})
	}
}

// Check godoc
// POST /api/v1/transcript/records/check
func (h *TranscriptHandler) Check(c *gin.Context) {
	var req model.CheckGradeRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// Only course and grade take part in the check.
	probe := model.NewGradeRecord(req.Course, *req.Grade, model.Date(1, 1, 1))
	response.Success(c, http.StatusOK, h.transcriptService.Check(probe))
}

// Get godoc
// GET /api/v1/transcript/records?course=...
//
// The course is a query parameter since course names may contain '/'.
func (h *TranscriptHandler) Get(c *gin.Context) {
	var q model.FindGradeRecordQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.transcriptService.Find(q.Course)
	if errors.Is(err, service.ErrRecordNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"record": rec.View()})
}

// Improved godoc
// GET /api/v1/transcript/improved
func (h *TranscriptHandler) Improved(c *gin.Context) {
	records := h.transcriptService.Improved()
	response.Success(c, http.StatusOK, gin.H{"records": views(records), "count": len(records)})
}

// Sort godoc
// POST /api/v1/transcript/sort
func (h *TranscriptHandler) Sort(c *gin.Context) {
	var req model.SortTranscriptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.transcriptService.Sort(service.Order(req.By)); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidOrder)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "transcript sorted by " + req.By})
}

// RemoveLowGrades godoc
// DELETE /api/v1/transcript/low-grades
func (h *TranscriptHandler) RemoveLowGrades(c *gin.Context) {
	removed := h.transcriptService.RemoveLowGrades()
	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}

// gradeQuery parses the optional ?grade= filter. On a malformed value it
// writes the error response and reports false.
func gradeQuery(c *gin.Context) (*int, bool) {
	raw, present := c.GetQuery("grade")
	if !present {
		return nil, true
	}
	g, err := strconv.Atoi(raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidGrade)
		return nil, false
	}
	return &g, true
}

func views(records []*model.GradeRecord) []model.GradeRecordView {
	out := make([]model.GradeRecordView, 0, len(records))
	for _, r := range records {
		out = append(out, r.View())
	}
	return out
}
