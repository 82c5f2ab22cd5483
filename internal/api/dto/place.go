package dto

type PlaceResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
