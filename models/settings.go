package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminSetting is a keyed blob of back-office configuration.
type AdminSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingWhatsApp = "whatsapp"

// WhatsAppSettings controls the owner order notification over WhatsApp.
type WhatsAppSettings struct {
	Enabled   bool   `json:"enabled"`
	Recipient string `json:"recipient"` // E.164 destination number
}

func GetWhatsAppSettings(db *gorm.DB) (WhatsAppSettings, error) {
	var row AdminSetting
	err := db.Where("key = ?", SettingWhatsApp).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return WhatsAppSettings{}, nil
	}
	if err != nil {
		return WhatsAppSettings{}, err
	}
	var s WhatsAppSettings
	if err := json.Unmarshal([]byte(row.Value), &s); err != nil {
		return WhatsAppSettings{}, err
	}
	return s, nil
}

func SaveWhatsAppSettings(db *gorm.DB, s WhatsAppSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	row := AdminSetting{Key: SettingWhatsApp, Value: string(raw)}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
