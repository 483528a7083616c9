package models

import "time"

type Defect struct {
	ID         string    `json:"id"`
	DefectName string    `json:"defect_name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
