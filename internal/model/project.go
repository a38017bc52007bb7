package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project types accepted by the listing platform.
const (
	TypeCommercial  = "Commercial"
	TypeResidential = "Residential"
	TypePlot        = "Plot"
)

// GalleryLimit is the maximum number of images a project gallery may hold.
const GalleryLimit = 4

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// PriceEntry is one row of a project's price list.
type PriceEntry struct {
	UnitType string `json:"unitType"`
	Price    string `json:"price"`
}

// PriceList stores an ordered list of price entries as a JSON column.
type PriceList []PriceEntry

// Value implements driver.Valuer.
func (l PriceList) Value() (driver.Value, error) {
	if l == nil {
		l = PriceList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *PriceList) Scan(value interface{}) error {
	if value == nil {
		*l = PriceList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for PriceList", value)
	}
}

// Contact holds the optional enquiry contact for a project.
type Contact struct {
	Phone string `json:"phone,omitempty" gorm:"size:50"`
	Email string `json:"email,omitempty" gorm:"size:255"`
}

// Project represents a real-estate listing.
//
// Version guards gallery writes: every gallery mutation checks-and-increments
// it so two racing appends cannot jointly exceed GalleryLimit.
type Project struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Type        string     `json:"type" gorm:"size:50;not null;index"`
	Overview    string     `json:"overview,omitempty" gorm:"type:text"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Area        string     `json:"area,omitempty" gorm:"size:100"`
	Location    string     `json:"location" gorm:"size:255;not null"`
	PriceList   PriceList  `json:"priceList" gorm:"type:json"`
	Gallery     StringList `json:"gallery" gorm:"type:json"`
	Amenities   StringList `json:"amenities" gorm:"type:json"`
	Nearby      StringList `json:"nearby" gorm:"type:json"`
	Contact     Contact    `json:"contact" gorm:"embedded;embeddedPrefix:contact_"`
	LocationMap string     `json:"locationMap,omitempty" gorm:"size:512"`
	Version     int64      `json:"-" gorm:"not null;default:0"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave enforces the gallery cap at the persistence boundary, mirroring
// the schema-level rule of the document store this data originated in.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if len(p.Gallery) > GalleryLimit {
		return fmt.Errorf("gallery cannot contain more than %d images", GalleryLimit)
	}
	return nil
}
