package services

import (
	"database/sql"
	stderrors "errors"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isSerializationFailure nhận diện lỗi SQLSTATE 40001 của Postgres:
// hai transaction serializable đụng nhau thì bên thua bị rollback với mã này
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == "40001"
}

// BookingService xử lý logic đặt phòng: kiểm tra khoảng ngày,
// phát hiện trùng lịch và chuyển trạng thái booking
type BookingService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewBookingService(db *gorm.DB, l logger.Logger) *BookingService {
	return &BookingService{
		db:     db,
		logger: l,
	}
}

// countOverlapping đếm số booking chưa hủy của phòng đè lên [checkIn, checkOut).
// Hai khoảng đè nhau khi check_in_date < checkOut và check_out_date > checkIn.
// excludeID loại chính booking đang sửa ra khỏi phép đếm.
func (s *BookingService) countOverlapping(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error) {
	var count int64
	query := tx.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ? AND check_in_date < ? AND check_out_date > ?",
			roomID, models.BookingStatusCancelled, checkOut, checkIn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create kiểm tra và tạo booking mới ở trạng thái chờ.
// Việc kiểm tra trùng lịch và ghi booking nằm trong cùng một transaction
// serializable: hai request đè lịch chạy song song thì tối đa một cái thành công.
func (s *BookingService) Create(userID, roomID uint, checkIn, checkOut time.Time) (*models.Booking, error) {
	if !checkIn.Before(checkOut) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Preload("Hotel").First(&room, "room_id = ?", roomID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewAppError(errors.ErrCodeRoomNotFound, "Không tìm thấy phòng", err)
			}
			return err
		}

		count, err := s.countOverlapping(tx, roomID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return errors.NewAppError(errors.ErrCodeRoomUnavailable, "Phòng đã được đặt trong khoảng thời gian này", nil)
		}

		booking = models.Booking{
			UserID:       userID,
			RoomID:       roomID,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			Status:       models.BookingStatusPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		booking.Room = room
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		// Hai request đè lịch chạy song song: bên thua nhận 40001 thay vì
		// thấy count > 0, với caller đó vẫn là phòng đã có người giữ
		if isSerializationFailure(err) {
			return nil, errors.NewAppError(errors.ErrCodeRoomUnavailable, "Phòng đã được đặt trong khoảng thời gian này", err)
		}
		return nil, err
	}

	s.logger.Info("Đã tạo booking %d cho phòng %d từ %s đến %s",
		booking.ID, roomID, checkIn.Format("02/01/2006"), checkOut.Format("02/01/2006"))
	return &booking, nil
}

// Update đổi ngày của booking, dùng lại đúng phép kiểm tra trùng lịch
// nhưng loại bản ghi của chính nó: tự đè lên mình là hợp lệ
func (s *BookingService) Update(bookingID uint, newCheckIn, newCheckOut *time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room.Hotel").First(&booking, bookingID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewAppError(errors.ErrCodeBookingNotFound, "Không tìm thấy booking", err)
			}
			return err
		}

		checkIn := booking.CheckInDate
		checkOut := booking.CheckOutDate
		if newCheckIn != nil {
			checkIn = *newCheckIn
		}
		if newCheckOut != nil {
			checkOut = *newCheckOut
		}

		if !checkIn.Before(checkOut) {
			return errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
		}

		count, err := s.countOverlapping(tx, booking.RoomID, checkIn, checkOut, booking.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return errors.NewAppError(errors.ErrCodeRoomUnavailable, "Phòng đã được đặt trong khoảng thời gian này", nil)
		}

		booking.CheckInDate = checkIn
		booking.CheckOutDate = checkOut
		return tx.Save(&booking).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if isSerializationFailure(err) {
			return nil, errors.NewAppError(errors.ErrCodeRoomUnavailable, "Phòng đã được đặt trong khoảng thời gian này", err)
		}
		return nil, err
	}
	return &booking, nil
}

// Cancel hủy booking, phòng được giải phóng cho các lần kiểm tra trùng lịch sau.
// Payment của booking không bị đụng tới, ledger tự xử lý phần đó.
func (s *BookingService) Cancel(booking *models.Booking) error {
	state := models.GetBookingState(booking.Status)
	if err := state.Cancel(booking); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Không thể hủy booking ở trạng thái hiện tại", err)
	}
	return s.db.Save(booking).Error
}

// GetByID lấy booking theo ID kèm phòng và khách sạn
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Room.Hotel").Preload("User").First(&booking, bookingID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeBookingNotFound, "Không tìm thấy booking", err)
		}
		return nil, err
	}
	return &booking, nil
}
