package model

type School struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	City     string `gorm:"size:100" json:"city"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (School) TableName() string {
	return "schools"
}
