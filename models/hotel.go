package models

import (
	"time"

	"github.com/lib/pq"
)

// Hotel thuộc catalog, phía core chỉ đọc trừ trường Rating.
// Rating là giá trị dẫn xuất: trung bình cộng rating của các review,
// làm tròn 2 chữ số, luôn được tính lại toàn bộ chứ không cộng dồn.
type Hotel struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OwnerID     uint           `json:"ownerId"`
	Owner       *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string         `gorm:"unique;size:255" json:"name"`
	Description string         `json:"description"`
	Address     string         `gorm:"size:255" json:"address"`
	LocationID  *uint          `json:"locationId"`
	Location    *Location      `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Amenities   pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Rooms       []Room         `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}
