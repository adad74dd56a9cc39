package devserver

import "github.com/dmitrijs2005/locator/internal/client/models"

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type addressRequest struct {
	Street     string   `json:"street" validate:"required"`
	City       string   `json:"city" validate:"required"`
	PostalCode string   `json:"postal_code" validate:"required"`
	Country    string   `json:"country" validate:"required"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (a addressRequest) toModel() models.Address {
	return models.Address{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
	}
}

type homeRequest struct {
	Name    string         `json:"name" validate:"required"`
	Address addressRequest `json:"address"`
}

func (h homeRequest) toModel() models.HomeCreate {
	return models.HomeCreate{Name: h.Name, Address: h.Address.toModel()}
}

type locationRequest struct {
	Name             string         `json:"name" validate:"required"`
	Summary          string         `json:"summary"`
	Description      string         `json:"description"`
	PriceEstimateMin float64        `json:"price_estimate_min" validate:"gte=0"`
	PriceEstimateMax float64        `json:"price_estimate_max" validate:"gtefield=PriceEstimateMin"`
	Address          addressRequest `json:"address"`
}

func (l locationRequest) toModel() models.LocationCreate {
	return models.LocationCreate{
		Name:             l.Name,
		Summary:          l.Summary,
		Description:      l.Description,
		PriceEstimateMin: l.PriceEstimateMin,
		PriceEstimateMax: l.PriceEstimateMax,
		Address:          l.Address.toModel(),
	}
}

type userUpdateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=user admin"`
}

type pageParams struct {
	Skip  int
	Limit int
}
