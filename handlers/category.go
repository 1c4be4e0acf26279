package handlers

import (
	"net/http"

	"splitshare-backend/database"
	"splitshare-backend/models"
	"splitshare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/categories
func GetCategories(c *gin.Context) {
	var categories []models.Category
	query := database.DB.Order("name ASC")
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}
	query.Find(&categories)

	utils.SuccessResponse(c, http.StatusOK, "", categories)
}

// POST /api/categories
func CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var existing models.Category
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Category already exists")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		utils.InternalError(c, "Failed to create category")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Category created", category)
}

// PUT /api/categories/:id
func UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	database.DB.Model(&category).Updates(updates)
	database.DB.First(&category, categoryID)

	utils.SuccessResponse(c, http.StatusOK, "Category updated", category)
}

// DELETE /api/categories/:id — soft deactivate, old expenses keep the link
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	database.DB.Model(&category).Update("is_active", false)

	utils.SuccessResponse(c, http.StatusOK, "Category deactivated", nil)
}
