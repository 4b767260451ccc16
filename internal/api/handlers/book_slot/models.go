package book_slot

import "github.com/m04kA/SMC-AvailabilityService/internal/service/slots/models"

// BookSlotRequest HTTP request model
// Вызывается сервисом бронирования при резервации слота клиентом
type BookSlotRequest struct {
	CustomerID int64 `json:"customerId"`
}

// BookSlotResponse HTTP response model
type BookSlotResponse struct {
	Slot *models.SlotResponse `json:"slot"`
}
