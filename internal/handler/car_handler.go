package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/SafatUddin/CAR-Hub/internal/config"
	"github.com/SafatUddin/CAR-Hub/internal/infra/storage"
	"github.com/SafatUddin/CAR-Hub/internal/middleware"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

const maxListingImages = 5

type CarHandler struct {
	uc       *usecase.CarUsecase
	uploader storage.Uploader
}

func NewCarHandler(uc *usecase.CarUsecase, uploader storage.Uploader) *CarHandler {
	return &CarHandler{uc: uc, uploader: uploader}
}

func (h *CarHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/cars", h.browse, middleware.OptionalAuthJWT(cfg))
	e.GET("/cars/:id", h.detail, middleware.OptionalAuthJWT(cfg))

	g := e.Group("/cars")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/follow", h.follow)

	mine := e.Group("/my/cars")
	mine.Use(middleware.AuthJWT(cfg))
	mine.GET("", h.myCars)
}

func (h *CarHandler) browse(c echo.Context) error {
	out, err := h.uc.Browse(c.Request().Context(), usecase.SearchInput{
		SearchType: c.QueryParam("search_type"),
		Query:      c.QueryParam("q"),
		MinPrice:   c.QueryParam("min_price"),
		MaxPrice:   c.QueryParam("max_price"),
		MinMileage: c.QueryParam("min_mileage"),
		MaxMileage: c.QueryParam("max_mileage"),
		MinYear:    c.QueryParam("min_year"),
		MaxYear:    c.QueryParam("max_year"),
		Currency:   c.QueryParam("currency"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CarHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var addOns []string
	if raw := c.QueryParam("addons"); raw != "" {
		addOns = strings.Split(raw, ",")
	}

	out, err := h.uc.Detail(c.Request().Context(), actorFromContext(c), id, addOns, c.QueryParam("currency"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

/// create consumes multipart/form-data: listing fields, 1-5 images and one
// registration document (PDF). Files are uploaded before the usecase runs;
// only their URLs cross the boundary.
func (h *CarHandler) create(c echo.Context) error {
	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "file storage is not configured"})
	}

	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid year"})
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}
	mileage, err := strconv.Atoi(c.FormValue("mileage"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid mileage"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
	}

	images := form.File["images"]
	if len(images) < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "you must upload at least 1 image"})
	}
	if len(images) > maxListingImages {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "you can upload a maximum of 5 images"})
	}

	docs := form.File["registration_doc"]
	if len(docs) != 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "registration document (PDF) required"})
	}
	if !isPDF(docs[0]) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "registration document must be a PDF"})
	}

	imageURLs := make([]string, 0, len(images))
	for _, fh := range images {
		url, err := h.uploadFile(c, fh, h.uploader.UploadImage)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "image upload failed"})
		}
		imageURLs = append(imageURLs, url)
	}
	docURL, err := h.uploadFile(c, docs[0], h.uploader.UploadDocument)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "document upload failed"})
	}

	out, err := h.uc.Create(c.Request().Context(), actorFromContext(c), usecase.CreateCarInput{
		Make:               c.FormValue("make"),
		Model:              c.FormValue("model"),
		Year:               year,
		Price:              price,
		Currency:           c.FormValue("currency"),
		Mileage:            mileage,
		CarType:            c.FormValue("car_type"),
		Description:        c.FormValue("description"),
		ContactEmail:       c.FormValue("contact_email"),
		ContactWhatsApp:    c.FormValue("contact_whatsapp"),
		ImageURLs:          imageURLs,
		RegistrationDocURL: docURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type UpdateCarRequest struct {
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	Mileage         int     `json:"mileage"`
	CarType         string  `json:"car_type"`
	Description     string  `json:"description"`
	ContactEmail    string  `json:"contact_email"`
	ContactWhatsApp string  `json:"contact_whatsapp"`
}

func (h *CarHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err = h.uc.Update(c.Request().Context(), actorFromContext(c), id, usecase.UpdateCarInput{
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Price:           req.Price,
		Currency:        req.Currency,
		Mileage:         req.Mileage,
		CarType:         req.CarType,
		Description:     req.Description,
		ContactEmail:    req.ContactEmail,
		ContactWhatsApp: req.ContactWhatsApp,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "listing updated"})
}

func (h *CarHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), actorFromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "listing deleted"})
}

type FollowResponse struct {
	Following bool `json:"following"`
}

func (h *CarHandler) follow(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	following, err := h.uc.Follow(c.Request().Context(), actorFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, FollowResponse{Following: following})
}

func (h *CarHandler) myCars(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.MyCars(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CarHandler) uploadFile(c echo.Context, fh *multipart.FileHeader, upload func(ctx context.Context, file io.Reader, filename string) (string, error)) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return upload(c.Request().Context(), f, fh.Filename)
}

func isPDF(fh *multipart.FileHeader) bool {
	if strings.EqualFold(fh.Header.Get("Content-Type"), "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf")
}
