package model

import "time"

// Task is a single to-do item persisted in the tasks table.
type Task struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Label       string    `gorm:"size:255;not null" json:"label"`
	Description string    `gorm:"type:text" json:"description"`
	Priority    int       `gorm:"not null;default:0" json:"priority"`
	Status      string    `gorm:"size:255;not null" json:"status"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
