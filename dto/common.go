package dto

// UserInfo là DTO rút gọn cho thông tin user trong các response
type UserInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ActorResponse là DTO cho thông tin người thao tác
type ActorResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}
