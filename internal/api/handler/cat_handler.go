package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/api/metrics"
	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

const imageField = "catImage"

// CatHandler serves listing CRUD.
type CatHandler struct {
	cats           ports.CatService
	maxUploadBytes int64
	log            zerolog.Logger
}

func NewCatHandler(cats ports.CatService, maxUploadBytes int64, log zerolog.Logger) *CatHandler {
	return &CatHandler{cats: cats, maxUploadBytes: maxUploadBytes, log: log}
}

// List returns listings, optionally only those of one owner.
//
// @Summary      List cats
// @Tags         cats
// @Produce      json
// @Param        userUid  query     string  false  "Owner filter"
// @Success      200      {array}   domain.Cat
// @Failure      500      {object}  errorResponse
// @Router       /cats [get]
func (h *CatHandler) List(c echo.Context) error {
	return h.list(c, c.QueryParam("userUid"))
}

// ListAll returns every listing.
//
// @Summary      List all cats
// @Tags         cats
// @Produce      json
// @Success      200  {array}   domain.Cat
// @Failure      500  {object}  errorResponse
// @Router       /AllCats [get]
func (h *CatHandler) ListAll(c echo.Context) error {
	return h.list(c, "")
}

func (h *CatHandler) list(c echo.Context, userUID string) error {
	cats, err := h.cats.List(c.Request().Context(), userUID)
	if err != nil {
		h.log.Error().Err(err).Str("user_uid", userUID).Msg("list cats failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching cats: " + err.Error()})
	}
	if cats == nil {
		cats = []*domain.Cat{}
	}
	return c.JSON(http.StatusOK, cats)
}

// Get returns one listing.
//
// @Summary      Get a cat
// @Tags         cats
// @Produce      json
// @Param        catId  path      string  true  "Cat id"
// @Success      200    {object}  domain.Cat
// @Failure      404    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /cats/{catId} [get]
func (h *CatHandler) Get(c echo.Context) error {
	cat, err := h.cats.Get(c.Request().Context(), c.Param("catId"))
	if err != nil {
		if errors.Is(err, domain.ErrCatNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Cat not found"})
		}
		h.log.Error().Err(err).Str("cat_id", c.Param("catId")).Msg("get cat failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching cat: " + err.Error()})
	}
	return c.JSON(http.StatusOK, cat)
}

// Create stores a listing and uploads its image. The owner is the caller.
//
// @Summary      Add a cat
// @Tags         cats
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        breed        formData  string  false  "Breed"
// @Param        name         formData  string  false  "Name"
// @Param        description  formData  string  false  "Description"
// @Param        location     formData  string  false  "Location"
// @Param        catImage     formData  file    true   "Listing image"
// @Success      200          {object}  createCatResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      413          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /add-cat [post]
func (h *CatHandler) Create(c echo.Context, id Identity) error {
	fh, err := c.FormFile(imageField)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No image file uploaded"})
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("Image exceeds %d bytes", h.maxUploadBytes),
		})
	}

	file, err := fh.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("open uploaded image failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error reading image: " + err.Error()})
	}
	defer file.Close()

	cat, err := h.cats.Create(c.Request().Context(), ports.CreateCatInput{
		Breed:       c.FormValue("breed"),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
		UserUID:     id.UID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Image:       file,
	})
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrUploadFailed) {
			result = "upload_failed"
		}
		metrics.CatsCreatedTotal.WithLabelValues(result).Inc()
		h.log.Error().Err(err).Str("uid", id.UID).Msg("add cat failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error adding cat: " + err.Error()})
	}

	metrics.CatsCreatedTotal.WithLabelValues("ok").Inc()
	metrics.ImageUploadBytes.Observe(float64(fh.Size))
	return c.JSON(http.StatusOK, createCatResponse{Message: "Cat added successfully", ID: cat.ID})
}

// Update changes the mutable fields of a listing.
//
// @Summary      Update a cat
// @Tags         cats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        catId  path      string            true  "Cat id"
// @Param        body   body      updateCatRequest  true  "Fields to change"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /cats/{catId} [put]
func (h *CatHandler) Update(c echo.Context, id Identity) error {
	var req updateCatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	catID := c.Param("catId")
	err := h.cats.Update(c.Request().Context(), catID, domain.CatUpdate{
		Breed:       req.Breed,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNothingToSave):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCatNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Cat not found"})
	default:
		h.log.Error().Err(err).Str("cat_id", catID).Str("uid", id.UID).Msg("update cat failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error updating cat: " + err.Error()})
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Cat updated successfully"})
}

// Delete removes a listing.
//
// @Summary      Delete a cat
// @Tags         cats
// @Produce      json
// @Security     BearerAuth
// @Param        catId  path      string  true  "Cat id"
// @Success      200    {object}  messageResponse
// @Failure      401    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /cats/{catId} [delete]
func (h *CatHandler) Delete(c echo.Context, id Identity) error {
	catID := c.Param("catId")
	if err := h.cats.Delete(c.Request().Context(), catID); err != nil {
		h.log.Error().Err(err).Str("cat_id", catID).Str("uid", id.UID).Msg("delete cat failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error deleting cat: " + err.Error()})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cat deleted successfully"})
}
