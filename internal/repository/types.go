package repository

import (
	"errors"

	"gorm.io/gorm"

	pkgErrors "pcs-crm/pkg/errors"
)

type QueryOption func(*gorm.DB) *gorm.DB

func WithPreload(association string, conds ...interface{}) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association, conds...)
	}
}

func applyOptions(db *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// translate 将 gorm 错误转换为业务错误
func translate(err error, notFound *pkgErrors.AppError, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkgErrors.ErrRecordExists
	default:
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, msg, err)
	}
}
