package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/ParthChaturvedi07/InvestorSarthi/internal/errors"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
)

// MockProjectService is a mock implementation of service.ProjectService.
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, typeFilter string) ([]model.Project, error) {
	args := m.Called(ctx, typeFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectService) AddGalleryImages(ctx context.Context, id uuid.UUID, files [][]byte) (*model.Project, error) {
	args := m.Called(ctx, id, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) RemoveGalleryImage(ctx context.Context, id uuid.UUID, imageURL string) (*model.Project, error) {
	args := m.Called(ctx, id, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

type echoValidator struct {
	validator *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(method, target, contentType string, body *bytes.Buffer) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &echoValidator{validator: validator.New()}
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateReportsEveryFailingField(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	body := bytes.NewBufferString(`{"type":"Invalid"}`)
	c, _ := newTestContext(http.MethodPost, "/api/projects/create", echo.MIMEApplicationJSON, body)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	resp, ok := he.Message.(apperrors.ValidationErrorResponse)
	assert.True(t, ok)

	failing := map[string]string{}
	for _, fe := range resp.Errors {
		failing[fe.Field] = fe.Message
	}
	assert.Contains(t, failing, "title")
	assert.Contains(t, failing, "type")
	assert.Contains(t, failing, "description")
	assert.Contains(t, failing, "location")
	assert.Contains(t, failing["type"], "Commercial")

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSuccess(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	stored := &model.Project{
		ID:          uuid.New(),
		Title:       "T",
		Type:        model.TypePlot,
		Description: "D",
		Location:    "L",
		Gallery:     model.StringList{},
	}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
		return p.Title == "T" && p.Type == model.TypePlot && len(p.Gallery) == 0
	})).Return(stored, nil)

	body := bytes.NewBufferString(`{"title":"T","type":"Plot","description":"D","location":"L"}`)
	c, rec := newTestContext(http.MethodPost, "/api/projects/create", echo.MIMEApplicationJSON, body)

	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), stored.ID.String())
	svc.AssertExpectations(t)
}

func TestUpdateValidatesOnlySuppliedFields(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	id := uuid.New()
	stored := &model.Project{ID: id, Title: "New"}
	svc.On("Update", mock.Anything, id, map[string]interface{}{"title": "New"}).Return(stored, nil)

	body := bytes.NewBufferString(`{"title":"New"}`)
	c, rec := newTestContext(http.MethodPut, "/api/projects/"+id.String(), echo.MIMEApplicationJSON, body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateRejectsBadType(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	id := uuid.New()
	body := bytes.NewBufferString(`{"type":"Castle"}`)
	c, _ := newTestContext(http.MethodPut, "/api/projects/"+id.String(), echo.MIMEApplicationJSON, body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.Update(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetInvalidID(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/api/projects/not-a-uuid", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func multipartBody(t *testing.T, field string, fileCount int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for i := 0; i < fileCount; i++ {
		part, err := writer.CreateFormFile(field, "img.jpg")
		assert.NoError(t, err)
		_, err = part.Write([]byte{byte(i + 1)})
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadGalleryTooManyFiles(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	id := uuid.New()
	body, contentType := multipartBody(t, galleryFormField, 5)
	c, _ := newTestContext(http.MethodPost, "/api/projects/"+id.String()+"/gallery", contentType, body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.UploadGallery(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	svc.AssertNotCalled(t, "AddGalleryImages", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadGalleryNoFiles(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	id := uuid.New()
	body, contentType := multipartBody(t, "other-field", 1)
	c, _ := newTestContext(http.MethodPost, "/api/projects/"+id.String()+"/gallery", contentType, body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.UploadGallery(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUploadGallerySuccess(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	id := uuid.New()
	updated := &model.Project{ID: id, Gallery: model.StringList{"url-1", "url-2"}}
	svc.On("AddGalleryImages", mock.Anything, id, [][]byte{{1}, {2}}).Return(updated, nil)

	body, contentType := multipartBody(t, galleryFormField, 2)
	c, rec := newTestContext(http.MethodPost, "/api/projects/"+id.String()+"/gallery", contentType, body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	assert.NoError(t, h.UploadGallery(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "url-1")
	svc.AssertExpectations(t)
}

func TestRemoveGalleryImageRequiresURL(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	id := uuid.New()
	body := bytes.NewBufferString(`{}`)
	c, _ := newTestContext(http.MethodDelete, "/api/projects/"+id.String()+"/gallery", echo.MIMEApplicationJSON, body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.RemoveGalleryImage(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	resp, ok := he.Message.(apperrors.ValidationErrorResponse)
	assert.True(t, ok)
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "imageURL", resp.Errors[0].Field)
}

func TestListPassesFilterThrough(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	svc.On("List", mock.Anything, "Plot").Return([]model.Project{}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/projects?type=Plot", "", nil)
	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDomainErrorMapping(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc)

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, apperrors.ErrProjectNotFound)

	c, _ := newTestContext(http.MethodGet, "/api/projects/"+id.String(), "", nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)

	resp, ok := he.Message.(apperrors.ErrorResponse)
	assert.True(t, ok)
	assert.True(t, strings.Contains(resp.Message, "not found"))
}
