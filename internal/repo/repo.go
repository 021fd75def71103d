package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced entity is absent. Any other
// error from this package means the storage layer itself failed.
var ErrNotFound = errors.New("not found")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
