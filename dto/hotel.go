package dto

// HotelShortResponse là DTO rút gọn cho khách sạn
type HotelShortResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// HotelResponse là DTO cho response danh sách/chi tiết khách sạn
type HotelResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	Country     string         `json:"country,omitempty"`
	City        string         `json:"city,omitempty"`
	Amenities   []string       `json:"amenities"`
	Rating      float64        `json:"rating"`
	Rooms       []RoomResponse `json:"rooms,omitempty"`
}

// RoomResponse là DTO cho phòng trong chi tiết khách sạn
type RoomResponse struct {
	ID     uint   `json:"id"`
	Number string `json:"number"`
	Type   string `json:"type"`
	Price  int    `json:"price"`
	People int    `json:"people"`
}
