package config

import (
	"log"

	"agroapi/internal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectionDb(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt: false,
		// TranslateError maps driver duplicate-key failures onto
		// gorm.ErrDuplicatedKey, which the services branch on.
		TranslateError: true,
	})
	if err != nil {
		log.Printf("error connect to database %s", err)
	}
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Usuario{},
		&entity.Propriedade{},
		&entity.Talhao{},
		&entity.RegistroAuditoria{},
	)
}
