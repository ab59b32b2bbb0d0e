package models

import vendorModels "github.com/m04kA/WeddingMarketService/internal/service/vendors/models"

// WishlistResponse избранные вендоры пользователя
type WishlistResponse struct {
	Vendors []vendorModels.VendorResponse `json:"vendors"`
}

// ContainsResponse признак наличия вендора в избранном
type ContainsResponse struct {
	VendorID   int64 `json:"vendorId"`
	InWishlist bool  `json:"inWishlist"`
}
