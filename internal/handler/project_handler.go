package handler

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/ParthChaturvedi07/InvestorSarthi/internal/errors"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/service"
)

// galleryFormField is the multipart field name gallery uploads arrive under.
const galleryFormField = "images"

// ProjectHandler handles project listing endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Title       string          `json:"title" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=Commercial Residential Plot"`
	Overview    string          `json:"overview"`
	Description string          `json:"description" validate:"required"`
	Area        string          `json:"area"`
	Location    string          `json:"location" validate:"required"`
	PriceList   model.PriceList `json:"priceList"`
	Amenities   []string        `json:"amenities"`
	Nearby      []string        `json:"nearby"`
	Contact     model.Contact   `json:"contact"`
	LocationMap string          `json:"locationMap"`
}

// UpdateProjectRequest represents a partial project update. Only supplied
// fields are validated and applied; the gallery is never touched here.
type UpdateProjectRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1"`
	Type        *string          `json:"type" validate:"omitempty,oneof=Commercial Residential Plot"`
	Overview    *string          `json:"overview"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Area        *string          `json:"area"`
	Location    *string          `json:"location" validate:"omitempty,min=1"`
	PriceList   *model.PriceList `json:"priceList"`
	Amenities   *[]string        `json:"amenities"`
	Nearby      *[]string        `json:"nearby"`
	Contact     *model.Contact   `json:"contact"`
	LocationMap *string          `json:"locationMap"`
}

// fields maps the supplied values onto column names for a field-merge update.
func (r *UpdateProjectRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Type != nil {
		fields["type"] = *r.Type
	}
	if r.Overview != nil {
		fields["overview"] = *r.Overview
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Area != nil {
		fields["area"] = *r.Area
	}
	if r.Location != nil {
		fields["location"] = *r.Location
	}
	if r.PriceList != nil {
		fields["price_list"] = *r.PriceList
	}
	if r.Amenities != nil {
		fields["amenities"] = model.StringList(*r.Amenities)
	}
	if r.Nearby != nil {
		fields["nearby"] = model.StringList(*r.Nearby)
	}
	if r.Contact != nil {
		fields["contact_phone"] = r.Contact.Phone
		fields["contact_email"] = r.Contact.Email
	}
	if r.LocationMap != nil {
		fields["location_map"] = *r.LocationMap
	}
	return fields
}

// RemoveImageRequest identifies the gallery image to remove.
type RemoveImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
}

// GalleryResponse reports the gallery after a mutation.
type GalleryResponse struct {
	Message string   `json:"message"`
	Gallery []string `json:"gallery"`
}

func parseProjectID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid project id",
			Code:    "INVALID_ID",
		})
	}
	return id, nil
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project fields"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/create [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	project := &model.Project{
		Title:       req.Title,
		Type:        req.Type,
		Overview:    req.Overview,
		Description: req.Description,
		Area:        req.Area,
		Location:    req.Location,
		PriceList:   req.PriceList,
		Gallery:     model.StringList{},
		Amenities:   model.StringList(req.Amenities),
		Nearby:      model.StringList(req.Nearby),
		Contact:     req.Contact,
		LocationMap: req.LocationMap,
	}

	created, err := h.projectService.Create(c.Request().Context(), project)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List projects, most recent first
// @Tags projects
// @Produce json
// @Param type query string false "Filter by type (Commercial, Residential, Plot)"
// @Success 200 {array} model.Project
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// Get godoc
// @Summary Fetch one project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}
	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// Update godoc
// @Summary Update project fields
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body UpdateProjectRequest true "Fields to update"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	project, err := h.projectService.Update(c.Request().Context(), id, req.fields())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}
	if err := h.projectService.Delete(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "project deleted successfully",
	})
}

// UploadGallery godoc
// @Summary Upload gallery images (multipart, field `images`, max 4 per request)
// @Tags projects
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} GalleryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id}/gallery [post]
func (h *ProjectHandler) UploadGallery(c echo.Context) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return domainError(apperrors.ErrNoFilesUploaded)
	}
	headers := form.File[galleryFormField]
	if len(headers) == 0 {
		return domainError(apperrors.ErrNoFilesUploaded)
	}
	if len(headers) > model.GalleryLimit {
		return domainError(apperrors.ErrGalleryFull)
	}

	files := make([][]byte, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Message: "unreadable upload: " + header.Filename,
				Code:    "BAD_UPLOAD",
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Message: "unreadable upload: " + header.Filename,
				Code:    "BAD_UPLOAD",
			})
		}
		files = append(files, data)
	}

	project, err := h.projectService.AddGalleryImages(c.Request().Context(), id, files)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, GalleryResponse{
		Message: "images uploaded successfully",
		Gallery: project.Gallery,
	})
}

// RemoveGalleryImage godoc
// @Summary Remove one gallery image
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body RemoveImageRequest true "Image URL to remove"
// @Success 200 {object} GalleryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /projects/{id}/gallery [delete]
func (h *ProjectHandler) RemoveGalleryImage(c echo.Context) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	var req RemoveImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	project, err := h.projectService.RemoveGalleryImage(c.Request().Context(), id, req.ImageURL)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, GalleryResponse{
		Message: "image removed successfully",
		Gallery: project.Gallery,
	})
}
