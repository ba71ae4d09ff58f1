package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	installConstraints(db)
	installNotifyTriggers(db)

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.ScheduleBlock{},
		&models.AuditLog{},
	)
}

// installConstraints cria a exclusion constraint que é a autoridade final
// contra double-booking: o pré-check é só fast-path de UX, a corrida
// check-then-insert é fechada pelo banco.
func installConstraints(db *gorm.DB) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tsrange(
                start_time,
                start_time + (duration_min * interval '1 minute')
            ) WITH &&
        )
        WHERE (status = 'scheduled' AND allow_overlap = false)
    `)
}

// installNotifyTriggers publica insert/update/delete das tabelas
// observadas pela camada de sincronização via LISTEN/NOTIFY.
func installNotifyTriggers(db *gorm.DB) {
	// Payload "OP:barbershop_id"; tabela sem a coluna publica 0 e o
	// coordenador recarrega todas as consultas rastreadas.
	db.Exec(`
        CREATE OR REPLACE FUNCTION notify_table_change() RETURNS trigger AS $$
        DECLARE
            row_data jsonb;
        BEGIN
            IF TG_OP = 'DELETE' THEN
                row_data := to_jsonb(OLD);
            ELSE
                row_data := to_jsonb(NEW);
            END IF;

            PERFORM pg_notify(
                TG_ARGV[0],
                TG_OP || ':' || COALESCE(row_data->>'barbershop_id', '0')
            );
            RETURN NULL;
        END;
        $$ LANGUAGE plpgsql
    `)

	watched := map[string]string{
		"appointments":         "appointments_changed",
		"appointment_services": "appointment_services_changed",
		"schedule_blocks":      "schedule_blocks_changed",
	}

	for table, channel := range watched {
		db.Exec(`DROP TRIGGER IF EXISTS ` + table + `_notify ON ` + table)
		db.Exec(`
            CREATE TRIGGER ` + table + `_notify
            AFTER INSERT OR UPDATE OR DELETE ON ` + table + `
            FOR EACH ROW EXECUTE FUNCTION notify_table_change('` + channel + `')
        `)
	}
}
