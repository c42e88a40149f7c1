package mariadb

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/clinicore/patientflow-backend/config"
)

// Connect opens and verifies a connection to the clinic's MariaDB
// instance holding the patient and doctor master records.
func Connect(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %v", err)
	}
	return db, nil
}
