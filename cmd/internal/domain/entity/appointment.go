package entity

// Appointment books one slot. Date is "YYYY-MM-DD" and Time is "HH:MM:SS",
// both fixed width so ordering them as text is chronological.
type Appointment struct {
	ID        int    `gorm:"primaryKey"`
	UserID    int    `gorm:"not null;index"` // References: users(id)
	Date      string `gorm:"type:varchar(10);not null;uniqueIndex:idx_agendamentos_slot,priority:1"`
	Time      string `gorm:"type:varchar(8);not null;uniqueIndex:idx_agendamentos_slot,priority:2"`
	CreatedAt int64  `gorm:"not null"`

	// Relations
	Owner *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Appointment) TableName() string {
	return "agendamentos"
}
