package models

// RiskAssessment is a scored outcome bracket. A nil CancerType marks a
// generic bracket that applies to any cancer type. The list columns hold
// JSON-encoded string arrays.
type RiskAssessment struct {
	ID           int     `gorm:"primary_key;autoIncrement" json:"id"`
	RiskLevel    string  `gorm:"size:50;not null" json:"risk_level"`
	Advice       string  `gorm:"type:text" json:"advice"`
	MinScore     int     `gorm:"not null" json:"min_score"`
	MaxScore     int     `gorm:"not null" json:"max_score"`
	FoodsToEat   string  `gorm:"type:text" json:"foods_to_eat"`
	FoodsToAvoid string  `gorm:"type:text" json:"foods_to_avoid"`
	Precautions  string  `gorm:"type:text" json:"precautions"`
	CancerType   *string `gorm:"size:50;index" json:"cancer_type"`
}
