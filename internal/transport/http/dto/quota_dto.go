package dto

type QuotaResponse struct {
	Remaining int `json:"remaining"`
	Capacity  int `json:"capacity"`
}
