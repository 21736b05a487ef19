package main

import (
	"errors"
	"net/http"

	"github.com/foodcanteen/foodmenu/internal/domain"
)

type SetMenuRequest struct {
	Menu []string `json:"menu" validate:"required"`
}

// setMenuHandler godoc
//
//	@Summary		Save today's menu
//	@Description	Replaces the current menu with the given food selection
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/menu [put]
func (app *application) setMenuHandler(w http.ResponseWriter, r *http.Request) {
	var req SetMenuRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.menuService.SetMenu(r.Context(), req.Menu); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{"message": "Today's menu saved successfully!"}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMenuHandler godoc
//
//	@Summary		Get today's menu
//	@Tags			menu
//	@Produce		json
//	@Success		200	{object}	map[string][]domain.Food
//	@Failure		500	{object}	map[string]string
//	@Router			/menu [get]
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	menu, err := app.menuService.CurrentMenu(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]interface{}{"menu": menu}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
