package controllers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"hotelbooking/config"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

func convertToHotelResponse(hotel *models.Hotel, withRooms bool) dto.HotelResponse {
	hotelResponse := dto.HotelResponse{
		ID:          hotel.ID,
		Name:        hotel.Name,
		Description: hotel.Description,
		Address:     hotel.Address,
		Amenities:   []string(hotel.Amenities),
		Rating:      hotel.Rating,
	}
	if hotel.Location != nil {
		hotelResponse.Country = hotel.Location.Country
		hotelResponse.City = hotel.Location.City
	}
	if withRooms {
		for _, room := range hotel.Rooms {
			hotelResponse.Rooms = append(hotelResponse.Rooms, dto.RoomResponse{
				ID:     room.RoomID,
				Number: room.Number,
				Type:   room.Type,
				Price:  room.Price,
				People: room.People,
			})
		}
	}
	return hotelResponse
}

// GetAllHotels trả danh sách khách sạn cho khách duyệt, không cần auth
func GetAllHotels(c *gin.Context) {
	nameFilter := c.Query("name")
	cityFilter := c.Query("city")

	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	cacheKey := "hotels:all"

	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var hotels []models.Hotel
	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &hotels); err != nil || len(hotels) == 0 {
		if err := config.DB.Preload("Location").Order("rating DESC").Find(&hotels).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, hotels, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách khách sạn vào Redis: %v", err)
		}
	}

	filtered := make([]models.Hotel, 0, len(hotels))
	for _, hotel := range hotels {
		if nameFilter != "" && !strings.Contains(strings.ToLower(hotel.Name), strings.ToLower(nameFilter)) {
			continue
		}
		if cityFilter != "" {
			if hotel.Location == nil || !strings.EqualFold(hotel.Location.City, cityFilter) {
				continue
			}
		}
		filtered = append(filtered, hotel)
	}

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start >= total {
		filtered = []models.Hotel{}
	} else {
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	hotelResponses := make([]dto.HotelResponse, 0, len(filtered))
	for i := range filtered {
		hotelResponses = append(hotelResponses, convertToHotelResponse(&filtered[i], false))
	}

	response.SuccessWithPagination(c, hotelResponses, page, limit, total)
}

// GetHotelDetail trả chi tiết khách sạn kèm danh sách phòng
func GetHotelDetail(c *gin.Context) {
	id := c.Param("id")

	var hotel models.Hotel
	if err := config.DB.Preload("Location").Preload("Rooms").First(&hotel, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToHotelResponse(&hotel, true))
}
