package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arkasetya/field-booking-backend/internal/field"
	"github.com/arkasetya/field-booking-backend/internal/pkg/response"
)

type Handler struct {
	service field.Service
}

func NewHandler(service field.Service) *Handler {
	return &Handler{service: service}
}

func fieldID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field id"})
		return 0, false
	}
	return id, true
}

// List is the public field search endpoint; only active fields show up.
func (h *Handler) List(c *gin.Context) {
	var req ListFieldsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := field.Filter{
		SportType: req.SportType,
		Location:  req.Location,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	fields, total, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FieldResponse, len(fields))
	for i, f := range fields {
		items[i] = NewFieldResponse(f)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Featured lists active fields flagged as featured.
func (h *Handler) Featured(c *gin.Context) {
	featured := true
	fields, total, err := h.service.Search(c.Request.Context(), field.Filter{
		Featured: &featured,
		Page:     1,
		PageSize: 20,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FieldResponse, len(fields))
	for i, f := range fields {
		items[i] = NewFieldResponse(f)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, 1, 20, total))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := fieldID(c)
	if !ok {
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewFieldResponse(f))
}

// AdminList shows all fields, inactive ones included.
func (h *Handler) AdminList(c *gin.Context) {
	var req ListFieldsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := field.Filter{
		SportType: req.SportType,
		Location:  req.Location,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	fields, total, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FieldResponse, len(fields))
	for i, f := range fields {
		items[i] = NewFieldResponse(f)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateFieldRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Create(c.Request.Context(), field.CreateRequest{
		Name:            body.Name,
		LocationSummary: body.LocationSummary,
		SportType:       body.SportType,
		PricePerHour:    body.PricePerHour,
		Currency:        body.Currency,
		Capacity:        body.Capacity,
		IsFeatured:      body.IsFeatured,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewFieldResponse(f))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := fieldID(c)
	if !ok {
		return
	}

	var body UpdateFieldRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Update(c.Request.Context(), id, field.UpdateRequest{
		Name:            body.Name,
		LocationSummary: body.LocationSummary,
		SportType:       body.SportType,
		PricePerHour:    body.PricePerHour,
		Currency:        body.Currency,
		Capacity:        body.Capacity,
		IsFeatured:      body.IsFeatured,
		IsActive:        body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewFieldResponse(f))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := fieldID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := fieldID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}

	img, err := h.service.UploadImage(c.Request.Context(), id, header)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewImageResponse(img))
}

func (h *Handler) ListImages(c *gin.Context) {
	id, ok := fieldID(c)
	if !ok {
		return
	}

	images, err := h.service.ListImages(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ImageResponse, len(images))
	for i, img := range images {
		items[i] = NewImageResponse(img)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ServeImage(c *gin.Context) {
	h.serveImage(c, false)
}

func (h *Handler) ServeThumbnail(c *gin.Context) {
	h.serveImage(c, true)
}

func (h *Handler) serveImage(c *gin.Context, thumbnail bool) {
	imageID := c.Param("id")

	stream, img, err := h.service.OpenImage(c.Request.Context(), imageID, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	contentType := img.ContentType
	if thumbnail {
		contentType = "image/jpeg"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}
