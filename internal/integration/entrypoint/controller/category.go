// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controle-financeiro/api/internal/application/usecase/category"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	getUseCase    *category.GetCategoryUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	getUseCase *category.GetCategoryUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /api/categorias requests.
func (c *CategoryController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// ListByKind handles GET /api/categorias/tipo/:tipo requests.
func (c *CategoryController) ListByKind(ctx *gin.Context) {
	kind, err := pathKind(ctx, "tipo")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{Kind: &kind})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Get handles GET /api/categorias/:id requests.
func (c *CategoryController) Get(ctx *gin.Context) {
	categoryID, err := pathID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{CategoryID: categoryID})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Create handles POST /api/categorias requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	// Parse request body
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(middleware.BindError(err))
		return
	}

	input := category.CreateCategoryInput{
		Name:        req.Name,
		Description: optionalText(req.Description),
		Kind:        req.Kind,
		Color:       optionalText(req.Color),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Update handles PUT /api/categorias/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	categoryID, err := pathID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	// Parse request body
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(middleware.BindError(err))
		return
	}

	input := category.UpdateCategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: optionalText(req.Description),
		Kind:        req.Kind,
		Color:       optionalText(req.Color),
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /api/categorias/:id requests.
// Transactions of the category are deleted with it.
func (c *CategoryController) Delete(ctx *gin.Context) {
	categoryID, err := pathID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{CategoryID: categoryID}); err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
