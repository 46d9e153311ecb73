package repository

import (
	"agendamento/cmd/internal/domain/entity"
	"context"
	"errors"

	"gorm.io/gorm"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(ctx context.Context, id int) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.WithContext(ctx).First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *DefaultAppointmentRepository) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.WithContext(ctx).
		Order("date asc").
		Order("time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByUserID(ctx context.Context, userID int) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc").
		Order("time asc").
		Find(&appts).Error
	return appts, err
}

// FindBookedTimes returns the times already taken on date.
func (a *DefaultAppointmentRepository) FindBookedTimes(ctx context.Context, date string) ([]string, error) {
	var times []string
	err := a.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("date = ?", date).
		Order("time asc").
		Pluck("time", &times).Error
	return times, err
}

// Book inserts appt in a single transaction after checking the slot is free.
// The check only gives a friendlier path; the unique index on (date, time)
// is what actually rejects a concurrent double booking, and both outcomes
// surface as ErrSlotTaken.
func (a *DefaultAppointmentRepository) Book(ctx context.Context, appt *entity.Appointment) error {
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&entity.Appointment{}).
			Where("date = ? AND time = ?", appt.Date, appt.Time).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return tx.Create(appt).Error
	})

	if err = translate(err); errors.Is(err, ErrDuplicateKey) {
		return errors.Join(ErrSlotTaken, err)
	}
	return err
}

func (a *DefaultAppointmentRepository) Delete(ctx context.Context, appt *entity.Appointment) error {
	return a.db.WithContext(ctx).Delete(appt).Error
}
