package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"github.com/foodcanteen/foodmenu/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateFoodRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price json.RawMessage `json:"price" validate:"required"`
	Image string          `json:"image" validate:"required"`
}

type UpdateFoodRequest struct {
	Name  *string         `json:"name"`
	Price json.RawMessage `json:"price"`
	Image *string         `json:"image"`
}

// numberString normalizes a price that arrives either as a JSON number or a
// quoted string.
func numberString(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

// createFoodHandler godoc
//
//	@Summary		Add a food item
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/food [post]
func (app *application) createFoodHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateFoodRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	food, err := app.foodService.AddFood(r.Context(), req.Name, numberString(req.Price), req.Image)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"message": "Food added successfully!",
		"food":    food,
	}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listFoodsHandler godoc
//
//	@Summary		List all food items
//	@Tags			foods
//	@Produce		json
//	@Success		200	{array}	domain.Food
//	@Failure		500	{object}	map[string]string
//	@Router			/food [get]
func (app *application) listFoodsHandler(w http.ResponseWriter, r *http.Request) {
	foods, err := app.foodService.ListFoods(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, foods); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateFoodHandler godoc
//
//	@Summary		Update a food item
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			food_id	path		string	true	"Food ID"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/food/{food_id} [put]
func (app *application) updateFoodHandler(w http.ResponseWriter, r *http.Request) {
	foodID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "food_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateFoodRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	patch := service.FoodPatch{Name: req.Name, Image: req.Image}
	if len(req.Price) > 0 {
		price := numberString(req.Price)
		patch.Price = &price
	}

	if err := app.foodService.UpdateFood(r.Context(), foodID, patch); err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	response := map[string]string{"message": "Food updated successfully!"}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteFoodHandler godoc
//
//	@Summary		Delete a food item
//	@Description	Deletes the food and prunes it from the current menu
//	@Tags			foods
//	@Produce		json
//	@Param			food_id	path		string	true	"Food ID"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/food/{food_id} [delete]
func (app *application) deleteFoodHandler(w http.ResponseWriter, r *http.Request) {
	foodID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "food_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	message := "Food deleted successfully!"

	if err := app.foodService.DeleteFood(r.Context(), foodID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			app.notFoundError(w, r, err)
			return
		case errors.Is(err, service.ErrMenuPrune):
			// the delete committed; only the menu cleanup failed
			message = "Food deleted, but the menu could not be updated"
		default:
			app.internalServerError(w, r, err)
			return
		}
	}

	response := map[string]string{"message": message}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
