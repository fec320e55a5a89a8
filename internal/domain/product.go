package domain

import "time"

// Product represents one sellable catalog item. At most one of
// ImageURL/ImageFile is meant to be the active image source at render
// time; the admin form controller maintains that exclusion.
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Title       string    `gorm:"size:200;index" json:"title" form:"title"`
	Description string    `gorm:"type:text" json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	ImageURL    string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	ImageFile   string    `gorm:"size:1024" json:"image_file" form:"image_file"`
	CategoryID  int64     `gorm:"index" json:"category_id,string" form:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsStaffPick bool      `json:"is_staff_pick" form:"is_staff_pick"`
	IsActive    bool      `json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// Category is a read-mostly grouping label referenced by products.
type Category struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string    `gorm:"size:100;index" json:"name" form:"name"`
	Description string    `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}
