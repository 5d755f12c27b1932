package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"catalog-service/internal/dto"
	"catalog-service/internal/middleware"
	"catalog-service/internal/model"
	"catalog-service/internal/sheet"
	"catalog-service/internal/store"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// IngredientHandler serves the ingredient CRUD and import/export routes
type IngredientHandler struct {
	ingredients *store.IngredientStore
}

// NewIngredientHandler creates the ingredient handler
func NewIngredientHandler(ingredients *store.IngredientStore) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

// List handles retrieving all ingredients owned by the caller
func (h *IngredientHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	ingredients, err := h.ingredients.List(uid)
	if err != nil {
		log.Error("Failed to list ingredients", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve ingredients"})
	}

	log.Info("Ingredients retrieved successfully", zap.Int("count", len(ingredients)))
	return c.JSON(http.StatusOK, ingredients)
}

// Get handles retrieving a single ingredient by ID
func (h *IngredientHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Ingredient not found"})
	}

	ingredient, err := h.ingredients.Get(id, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Ingredient not found", zap.Uint("ingredient_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ingredient not found"})
		}
		log.Error("Failed to get ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve ingredient"})
	}

	return c.JSON(http.StatusOK, ingredient)
}

// Create handles creating a new ingredient
func (h *IngredientHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	var in dto.IngredientInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ingredient data"})
	}

	if errs := in.Validate(); len(errs) > 0 {
		log.Warn("Ingredient validation failed", zap.String("details", errs.Error()))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ingredient data", "details": errs})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	ingredient := in.Model(uid)
	if err := h.ingredients.Create(&ingredient); err != nil {
		log.Error("Failed to create ingredient", zap.String("name", in.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create ingredient"})
	}

	prometheus.RecordIngredientOperation("create")
	log.Info("Ingredient created successfully",
		zap.Uint("ingredient_id", ingredient.ID),
		zap.String("name", ingredient.Name))
	return c.JSON(http.StatusCreated, ingredient)
}

// Update handles a partial update of an existing ingredient
func (h *IngredientHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Ingredient not found"})
	}

	var u dto.IngredientUpdate
	if err := c.Bind(&u); err != nil {
		log.Error("Invalid request data", zap.Uint("ingredient_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ingredient data"})
	}

	if errs := u.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ingredient data", "details": errs})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	ingredient, err := h.ingredients.Update(id, uid, u.Updates())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Ingredient not found for update", zap.Uint("ingredient_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ingredient not found"})
		}
		log.Error("Failed to update ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update ingredient"})
	}

	prometheus.RecordIngredientOperation("update")
	log.Info("Ingredient updated successfully", zap.Uint("ingredient_id", id))
	return c.JSON(http.StatusOK, ingredient)
}

// Delete handles removing an ingredient
func (h *IngredientHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Ingredient not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.ingredients.Delete(id, uid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Ingredient not found for deletion", zap.Uint("ingredient_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ingredient not found"})
		}
		log.Error("Failed to delete ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete ingredient"})
	}

	prometheus.RecordIngredientOperation("delete")
	log.Info("Ingredient deleted successfully", zap.Uint("ingredient_id", id))
	return c.NoContent(http.StatusNoContent)
}

// Export streams the caller's ingredients as an xlsx attachment
func (h *IngredientHandler) Export(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	ingredients, err := h.ingredients.List(uid)
	if err != nil {
		log.Error("Failed to list ingredients for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export ingredients"})
	}

	rows := make([][]interface{}, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = sheet.IngredientCells(ing)
	}

	buf, err := sheet.Workbook("Ingredients", sheet.IngredientHeaders(), rows)
	if err != nil {
		log.Error("Failed to build ingredients workbook", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export ingredients"})
	}

	prometheus.RecordExport("ingredient")
	log.Info("Ingredients exported", zap.Int("count", len(ingredients)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="ingredients.xlsx"`)
	return c.Blob(http.StatusOK, sheet.ContentType, buf.Bytes())
}

// Import accepts a spreadsheet and creates one ingredient per valid row
func (h *IngredientHandler) Import(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	rows, errResp := readSpreadsheet(c)
	if errResp != nil {
		return errResp(c)
	}

	imported := []model.Ingredient{}
	rowErrors := []string{}
	for i, row := range rows {
		rowNum := i + sheet.HeaderRows + 1

		in := sheet.IngredientInput(row)
		if errs := in.Validate(); len(errs) > 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", rowNum, errs.Error()))
			prometheus.RecordImportRow("ingredient", "invalid")
			continue
		}

		ingredient := in.Model(uid)
		if err := h.ingredients.Create(&ingredient); err != nil {
			log.Error("Failed to persist imported ingredient",
				zap.Int("row", rowNum),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to import ingredients"})
		}

		prometheus.RecordImportRow("ingredient", "imported")
		imported = append(imported, ingredient)
	}

	log.Info("Ingredients imported",
		zap.Int("imported", len(imported)),
		zap.Int("rejected", len(rowErrors)))
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"imported": len(imported),
		"errors":   rowErrors,
		"records":  imported,
	})
}
