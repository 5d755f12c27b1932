package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/dto"
	"catalog-service/internal/middleware"
	"catalog-service/internal/model"
	"catalog-service/internal/sheet"
	"catalog-service/internal/store"
	"catalog-service/internal/upload"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	maxImageSize       = 5 * 1024 * 1024
	maxSpreadsheetSize = 10 * 1024 * 1024
)

// ProductHandler serves the product CRUD, image and import/export routes
type ProductHandler struct {
	products *store.ProductStore
	uploads  *upload.Storage
}

// NewProductHandler creates the product handler
func NewProductHandler(products *store.ProductStore, uploads *upload.Storage) *ProductHandler {
	return &ProductHandler{products: products, uploads: uploads}
}

// List handles retrieving all products owned by the caller
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	products, err := h.products.List(uid)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product, err := h.products.Get(id, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Product not found", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	var in dto.ProductInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product data"})
	}

	if errs := in.Validate(); len(errs) > 0 {
		log.Warn("Product validation failed", zap.String("details", errs.Error()))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product data", "details": errs})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	product := in.Model(uid)
	if err := h.products.Create(&product); err != nil {
		if store.IsConflict(err) {
			log.Warn("Product conflict", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to create product", zap.String("name", in.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// Update handles a partial update of an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	var u dto.ProductUpdate
	if err := c.Bind(&u); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product data"})
	}

	if errs := u.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product data", "details": errs})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	product, err := h.products.Update(id, uid, u.Updates())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Warn("Product not found for update", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		case store.IsConflict(err):
			log.Warn("Product conflict", zap.Uint("product_id", id), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
		}
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, product)
}

// Delete handles removing a product. The stored image file is removed
// explicitly: record deletion never cascades to disk on its own.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product, err := h.products.Get(id, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to load product for deletion", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	if product.ImageURL != nil {
		if err := h.uploads.Remove(*product.ImageURL); err != nil {
			log.Warn("Failed to remove product image file",
				zap.Uint("product_id", id),
				zap.String("image_url", *product.ImageURL),
				zap.Error(err))
		}
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.products.Delete(id, uid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.NoContent(http.StatusNoContent)
}

// UploadImage handles attaching an image to a product
func (h *ProductHandler) UploadImage(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	if _, err := h.products.Get(id, uid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to load product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload image"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No image file provided"})
	}
	if fh.Size > maxImageSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Image is too large (max 5MB)"})
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not an image! Please upload only images."})
	}

	imageURL, err := h.uploads.Save(fh)
	if err != nil {
		log.Error("Failed to store image", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload image"})
	}

	if _, err := h.products.Update(id, uid, map[string]interface{}{"image_url": imageURL}); err != nil {
		log.Error("Failed to attach image to product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload image"})
	}

	log.Info("Image uploaded successfully",
		zap.Uint("product_id", id),
		zap.String("image_url", imageURL))
	return c.JSON(http.StatusOK, echo.Map{"imageUrl": imageURL, "message": "Image uploaded successfully"})
}

// DeleteImage handles detaching a product image. File removal and the record
// update are independent best-effort operations; a file that is already gone
// does not fail the request.
func (h *ProductHandler) DeleteImage(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product, err := h.products.Get(id, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to load product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete image"})
	}

	if product.ImageURL != nil {
		if err := h.uploads.Remove(*product.ImageURL); err != nil {
			log.Warn("Failed to remove image file",
				zap.Uint("product_id", id),
				zap.String("image_url", *product.ImageURL),
				zap.Error(err))
		}
	}

	if _, err := h.products.Update(id, uid, map[string]interface{}{"image_url": nil}); err != nil {
		log.Error("Failed to clear product image", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete image"})
	}

	log.Info("Image deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted successfully"})
}

// Export streams the caller's products as an xlsx attachment
func (h *ProductHandler) Export(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	products, err := h.products.List(uid)
	if err != nil {
		log.Error("Failed to list products for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export products"})
	}

	rows := make([][]interface{}, len(products))
	for i, p := range products {
		rows[i] = sheet.ProductCells(p)
	}

	buf, err := sheet.Workbook("Products", sheet.ProductHeaders(), rows)
	if err != nil {
		log.Error("Failed to build products workbook", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export products"})
	}

	prometheus.RecordExport("product")
	log.Info("Products exported", zap.Int("count", len(products)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Blob(http.StatusOK, sheet.ContentType, buf.Bytes())
}

// Import accepts a spreadsheet and creates one product per valid row. Bad
// rows are collected into the errors list and never abort the batch.
func (h *ProductHandler) Import(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	rows, errResp := readSpreadsheet(c)
	if errResp != nil {
		return errResp(c)
	}

	imported := []model.Product{}
	rowErrors := []string{}
	for i, row := range rows {
		rowNum := i + sheet.HeaderRows + 1

		in := sheet.ProductInput(row)
		if errs := in.Validate(); len(errs) > 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", rowNum, errs.Error()))
			prometheus.RecordImportRow("product", "invalid")
			continue
		}

		product := in.Model(uid)
		if err := h.products.Create(&product); err != nil {
			if store.IsConflict(err) {
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
				prometheus.RecordImportRow("product", "conflict")
				continue
			}
			log.Error("Failed to persist imported product",
				zap.Int("row", rowNum),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to import products"})
		}

		prometheus.RecordImportRow("product", "imported")
		imported = append(imported, product)
	}

	log.Info("Products imported",
		zap.Int("imported", len(imported)),
		zap.Int("rejected", len(rowErrors)))
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"imported": len(imported),
		"errors":   rowErrors,
		"records":  imported,
	})
}

// readSpreadsheet pulls the uploaded file out of the request and decodes it.
// The second return value is a ready error responder when the upload is
// rejected.
func readSpreadsheet(c echo.Context) ([]sheet.Row, func(echo.Context) error) {
	log := logger.FromContext(c)

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file provided"})
		}
	}
	if fh.Size > maxSpreadsheetSize {
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "File is too large (max 10MB)"})
		}
	}
	if !sheet.Accepted(fh.Filename, fh.Header.Get("Content-Type")) {
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not an Excel file! Please upload only Excel or CSV files."})
		}
	}

	src, err := fh.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read uploaded file"})
		}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error("Failed to read uploaded file", zap.Error(err))
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read uploaded file"})
		}
	}

	rows, err := sheet.Decode(fh.Filename, data)
	if err != nil {
		log.Error("Failed to parse uploaded spreadsheet",
			zap.String("filename", fh.Filename),
			zap.Error(err))
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to parse file"})
		}
	}
	return rows, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
