package di

import (
	"fmt"

	"gorm.io/gorm"

	jobentity "jobnaut/internal/feature/job/domain/entity"
	savedjobentity "jobnaut/internal/feature/savedjob/domain/entity"
	userentity "jobnaut/internal/feature/user/domain/entity"
)

// Migrate creates or updates the users, jobs and saved_jobs tables.
// saved_jobs references the other two, so it goes last.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userentity.UserRecord{},
		&jobentity.JobRecord{},
		&savedjobentity.SavedJobRecord{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
