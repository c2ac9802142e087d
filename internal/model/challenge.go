package model

// Challenge is the container a Question belongs to. It shares the
// question lifecycle: activate/deactivate is reversible, deletion is
// soft when recorded answers reference it and cascading otherwise.
type Challenge struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SchoolID    uint   `gorm:"index" json:"schoolId"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Challenge) TableName() string {
	return "challenges"
}
